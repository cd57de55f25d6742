package testutil

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"strings"
	"sync"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// MockLLM is a deterministic Genkit model for tests that must not hit a
// real provider. Responses are chosen by substring match against the
// last user message; the first registered rule that matches wins, and
// the fallback answers everything else. Safe for concurrent use.
type MockLLM struct {
	mu       sync.Mutex
	rules    []mockRule
	fallback string
	calls    []MockCall
}

type mockRule struct {
	pattern  string // lowercased substring of the user message
	response string
	tools    []*ai.ToolRequest // tool calls emitted before the text, if any
}

// MockCall records one invocation of the mock model.
type MockCall struct {
	UserMessage string
	Response    string
}

// NewMockLLM creates a mock model that answers with fallback when no
// registered pattern matches.
func NewMockLLM(fallback string) *MockLLM {
	return &MockLLM{fallback: fallback}
}

// AddResponse registers a case-insensitive pattern and the text returned
// when a user message contains it.
func (m *MockLLM) AddResponse(pattern, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, mockRule{
		pattern:  strings.ToLower(pattern),
		response: response,
	})
}

// AddToolResponse registers a pattern whose match emits tool requests
// alongside the text response, exercising the agent's tool loop.
func (m *MockLLM) AddToolResponse(pattern string, tools []*ai.ToolRequest, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, mockRule{
		pattern:  strings.ToLower(pattern),
		response: response,
		tools:    tools,
	})
}

// Calls returns a copy of every recorded call.
func (m *MockLLM) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// Reset clears recorded calls but keeps registered rules.
func (m *MockLLM) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// RegisterModel registers the mock with Genkit as "mock/test-model".
func (m *MockLLM) RegisterModel(g *genkit.Genkit) ai.Model {
	return genkit.DefineModel(g, "mock/test-model", &ai.ModelOptions{
		Label: "Mock Test Model",
		Supports: &ai.ModelSupports{
			Multiturn:  true,
			Tools:      true,
			SystemRole: true,
		},
	}, m.generate)
}

func (m *MockLLM) generate(ctx context.Context, req *ai.ModelRequest, cb ai.ModelStreamCallback) (*ai.ModelResponse, error) {
	userText := lastUserText(req.Messages)
	rule, text := m.match(userText)

	if cb != nil {
		_ = cb(ctx, &ai.ModelResponseChunk{
			Content: []*ai.Part{ai.NewTextPart(text)},
		})
	}

	var parts []*ai.Part
	if rule != nil {
		for _, tr := range rule.tools {
			parts = append(parts, &ai.Part{Kind: ai.PartToolRequest, ToolRequest: tr})
		}
	}
	parts = append(parts, ai.NewTextPart(text))

	return &ai.ModelResponse{
		Request: req,
		Message: &ai.Message{Role: ai.RoleModel, Content: parts},
	}, nil
}

// match picks the first rule whose pattern the message contains and
// records the call.
func (m *MockLLM) match(userText string) (*mockRule, string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rule *mockRule
	lower := strings.ToLower(userText)
	for i := range m.rules {
		if strings.Contains(lower, m.rules[i].pattern) {
			rule = &m.rules[i]
			break
		}
	}

	text := m.fallback
	if rule != nil {
		text = rule.response
	}
	m.calls = append(m.calls, MockCall{UserMessage: userText, Response: text})
	return rule, text
}

func lastUserText(messages []*ai.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == ai.RoleUser {
			return messages[i].Text()
		}
	}
	return ""
}

// MockEmbedder is a deterministic Genkit embedder. Unmapped content
// embeds to a hash-derived unit vector, so identical text always lands
// on the identical point; SetVector pins exact vectors when a test needs
// controlled cosine similarity. Safe for concurrent use.
type MockEmbedder struct {
	mu     sync.Mutex
	pinned map[string][]float32
	dim    int
}

// NewMockEmbedder creates a mock embedder producing dim-sized vectors.
func NewMockEmbedder(dim int) *MockEmbedder {
	return &MockEmbedder{pinned: make(map[string][]float32), dim: dim}
}

// SetVector pins the vector returned for exactly this content.
func (e *MockEmbedder) SetVector(content string, vec []float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pinned[content] = vec
}

// RegisterEmbedder registers the mock with Genkit as "mock/test-embedder".
func (e *MockEmbedder) RegisterEmbedder(g *genkit.Genkit) ai.Embedder {
	return genkit.DefineEmbedder(g, "mock/test-embedder", &ai.EmbedderOptions{
		Label:      "Mock Test Embedder",
		Dimensions: e.dim,
	}, e.embed)
}

func (e *MockEmbedder) embed(_ context.Context, req *ai.EmbedRequest) (*ai.EmbedResponse, error) {
	embeddings := make([]*ai.Embedding, len(req.Input))
	for i, doc := range req.Input {
		embeddings[i] = &ai.Embedding{Embedding: e.vectorFor(documentText(doc))}
	}
	return &ai.EmbedResponse{Embeddings: embeddings}, nil
}

func (e *MockEmbedder) vectorFor(content string) []float32 {
	e.mu.Lock()
	v, ok := e.pinned[content]
	e.mu.Unlock()
	if ok {
		return v
	}
	return hashVector(content, e.dim)
}

func documentText(doc *ai.Document) string {
	var sb strings.Builder
	for _, p := range doc.Content {
		if p.Kind == ai.PartText {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

// hashVector derives a unit vector from the SHA-256 of content. Digest
// bytes are read as little-endian uint32 windows (wrapping past the
// end), mapped into [-1, 1], then the whole vector is normalized.
func hashVector(content string, dim int) []float32 {
	digest := sha256.Sum256([]byte(content))
	vec := make([]float32, dim)
	for i := range vec {
		var window [4]byte
		for j := range window {
			window[j] = digest[(i*4+j)%len(digest)]
		}
		bits := binary.LittleEndian.Uint32(window[:])
		vec[i] = (float32(bits)/float32(math.MaxUint32))*2 - 1
	}
	return normalize(vec)
}

func normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if norm := float32(math.Sqrt(sum)); norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
