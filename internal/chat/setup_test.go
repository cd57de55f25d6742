//go:build integration
// +build integration

// Integration test fixtures for the chat agent. These assemble the real
// stack — pgvector container, Genkit with live providers, quarantine
// tools over the manual store — so the tests exercise the same paths
// production takes.
package chat_test

import (
	"context"
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/postgresql"
	"github.com/google/uuid"

	"github.com/gatehouse0/gatehouse/internal/chat"
	"github.com/gatehouse0/gatehouse/internal/index"
	"github.com/gatehouse0/gatehouse/internal/manual"
	"github.com/gatehouse0/gatehouse/internal/session"
	"github.com/gatehouse0/gatehouse/internal/testutil"
	"github.com/gatehouse0/gatehouse/internal/tools"
)

// TestFramework is the assembled test environment for chat agent
// integration tests. Cleanup is automatic via t.Cleanup.
type TestFramework struct {
	Agent        *chat.Agent
	Flow         *chat.Flow
	DocStore     *postgresql.DocStore
	Retriever    ai.Retriever
	SessionStore *session.Store
	Manual       *manual.Store

	DBContainer *testutil.TestDBContainer
	Genkit      *genkit.Genkit
	Embedder    ai.Embedder

	// Fresh session per framework instance.
	SessionID uuid.UUID
}

// SetupTest builds the full chat test environment. Skips unless both
// GEMINI_API_KEY and OPENAI_API_KEY are set and Docker is available.
func SetupTest(t *testing.T) *TestFramework {
	t.Helper()

	ctx := context.Background()

	dbContainer := testutil.SetupTestDB(t)
	ragSetup := testutil.SetupRAG(t, dbContainer.Pool)

	sessionStore, err := session.NewStore(dbContainer.Pool, testutil.DiscardLogger())
	if err != nil {
		t.Fatalf("creating session store: %v", err)
	}

	manualStore, err := manual.Load()
	if err != nil {
		t.Fatalf("loading manual: %v", err)
	}

	quarantine, err := tools.NewQuarantine(manualStore, ragSetup.Retriever, testutil.DiscardLogger())
	if err != nil {
		t.Fatalf("creating quarantine tools: %v", err)
	}
	quarantineTools, err := tools.RegisterQuarantine(ragSetup.Genkit, quarantine)
	if err != nil {
		t.Fatalf("registering quarantine tools: %v", err)
	}

	agent, err := chat.New(chat.Config{
		Genkit:       ragSetup.Genkit,
		SessionStore: sessionStore,
		Logger:       testutil.DiscardLogger(),
		Tools:        quarantineTools,
		MaxTurns:     10,
	})
	if err != nil {
		t.Fatalf("creating chat agent: %v", err)
	}

	chat.ResetFlowForTesting()
	flow := chat.NewFlow(ragSetup.Genkit, agent)

	testSession, err := sessionStore.Create(ctx, "chat integration test")
	if err != nil {
		t.Fatalf("creating test session: %v", err)
	}

	return &TestFramework{
		Agent:        agent,
		Flow:         flow,
		DocStore:     ragSetup.DocStore,
		Retriever:    ragSetup.Retriever,
		SessionStore: sessionStore,
		Manual:       manualStore,
		DBContainer:  dbContainer,
		Genkit:       ragSetup.Genkit,
		Embedder:     ragSetup.Embedder,
		SessionID:    testSession.ID,
	}
}

// CreateTestSession creates an isolated session for tests that need
// independent histories.
func (f *TestFramework) CreateTestSession(t *testing.T, name string) uuid.UUID {
	t.Helper()
	sess, err := f.SessionStore.Create(context.Background(), name)
	if err != nil {
		t.Fatalf("creating test session: %v", err)
	}
	return sess.ID
}

// IndexDocument adds a manual chunk to the vector store so manual_search
// has something to find.
func (f *TestFramework) IndexDocument(t *testing.T, content string, metadata map[string]any) {
	t.Helper()

	if metadata == nil {
		metadata = make(map[string]any)
	}
	if _, ok := metadata["source_type"]; !ok {
		metadata["source_type"] = index.SourceTypeManual
	}

	doc := ai.DocumentFromText(content, metadata)
	if err := f.DocStore.Index(context.Background(), []*ai.Document{doc}); err != nil {
		t.Fatalf("indexing document: %v", err)
	}
}
