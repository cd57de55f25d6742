package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/postgresql"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatehouse0/gatehouse/internal/config"
	"github.com/gatehouse0/gatehouse/internal/index"
)

// RAGSetup bundles the Genkit instance and retrieval components used by
// integration tests that exercise real embeddings against the test
// database. Generation uses Google AI, embeddings use OpenAI — the same
// split as production.
type RAGSetup struct {
	Genkit    *genkit.Genkit
	Embedder  ai.Embedder
	DocStore  *postgresql.DocStore
	Retriever ai.Retriever
}

// SetupRAG initializes Genkit with the Google AI, OpenAI and PostgreSQL
// plugins against the supplied test pool, and defines the document store
// and retriever over it.
//
// Skips the test unless both GEMINI_API_KEY and OPENAI_API_KEY are set:
// generation and embeddings come from different providers, and a partial
// setup would only fail later with a confusing error.
func SetupRAG(tb testing.TB, pool *pgxpool.Pool) *RAGSetup {
	tb.Helper()

	if os.Getenv("GEMINI_API_KEY") == "" {
		tb.Skip("GEMINI_API_KEY not set - skipping test requiring generation model")
	}
	if os.Getenv("OPENAI_API_KEY") == "" {
		tb.Skip("OPENAI_API_KEY not set - skipping test requiring embedder")
	}

	ctx := context.Background()

	pEngine, err := postgresql.NewPostgresEngine(ctx,
		postgresql.WithPool(pool),
		postgresql.WithDatabase("gatehouse_test"),
	)
	if err != nil {
		tb.Fatalf("creating postgres engine: %v", err)
	}
	pg := &postgresql.Postgres{Engine: pEngine}

	projectRoot, err := FindProjectRoot()
	if err != nil {
		tb.Fatalf("finding project root: %v", err)
	}

	g := genkit.Init(ctx,
		genkit.WithPlugins(&googlegenai.GoogleAI{}, &openai.OpenAI{}, pg),
		genkit.WithPromptDir(filepath.Join(projectRoot, "prompts")),
	)
	if g == nil {
		tb.Fatal("genkit.Init returned nil")
	}

	embedder := genkit.LookupEmbedder(g, api.NewName("openai", config.DefaultEmbedderModel))
	if embedder == nil {
		tb.Fatalf("embedder %q not registered", config.DefaultEmbedderModel)
	}

	docStore, retriever, err := postgresql.DefineRetriever(ctx, g, pg, index.NewDocStoreConfig(embedder))
	if err != nil {
		tb.Fatalf("defining retriever: %v", err)
	}

	return &RAGSetup{
		Genkit:    g,
		Embedder:  embedder,
		DocStore:  docStore,
		Retriever: retriever,
	}
}
