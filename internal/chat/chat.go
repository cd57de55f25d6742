// Package chat implements the conversational agent over the quarantine
// lookup tools: prompt execution with history replay, retry, rate
// limiting and a provider breaker, plus the streaming flow the TUI and
// HTTP API share.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/gatehouse0/gatehouse/internal/session"
)

const (
	// Name is the unique identifier for the chat agent.
	Name = "chat"

	// Description describes the chat agent's capabilities.
	Description = "A biosecurity import assistant that answers Tasmanian plant quarantine questions using verified lookup tools over the Plant Quarantine Manual."

	// promptName is the Dotprompt the agent executes; the model and the
	// system instructions live in prompts/gatehouse.prompt.
	promptName = "gatehouse"

	// emptyResponseFallback is returned when the model produces neither
	// text nor tool requests.
	emptyResponseFallback = "I apologize, but I couldn't generate a response. Please try rephrasing your question."

	defaultMaxTurns = 5
)

// Sentinel errors for agent operations.
var (
	// ErrInvalidSession indicates the session ID is invalid or malformed.
	ErrInvalidSession = errors.New("invalid session")

	// ErrExecutionFailed indicates agent execution failed.
	ErrExecutionFailed = errors.New("execution failed")
)

// Response is the complete result of one agent turn.
type Response struct {
	FinalText    string            // Model's final text output
	ToolRequests []*ai.ToolRequest // Tool requests made during execution
}

// StreamCallback receives each chunk of a streaming response as it is
// generated. Returning an error aborts the stream.
type StreamCallback func(ctx context.Context, chunk *ai.ModelResponseChunk) error

// Config carries everything the agent needs. Genkit, SessionStore,
// Logger and Tools are required; the rest falls back to defaults.
type Config struct {
	Genkit       *genkit.Genkit
	SessionStore *session.Store
	Logger       *slog.Logger
	Tools        []ai.Tool // Pre-registered tools from RegisterQuarantine()

	ModelName   string  // Provider-qualified model name (e.g. "googleai/gemini-2.5-flash")
	MaxTurns    int     // Maximum agentic loop turns
	Temperature float32 // Sampling temperature; quarantine answers default to 0 (deterministic)

	RetryConfig   RetryConfig   // LLM retry settings (zero-value uses defaults)
	BreakerConfig BreakerConfig // Model breaker settings (zero-value uses defaults)
	RateLimiter   *rate.Limiter // Proactive rate limiting (nil = use default)

	TokenBudget TokenBudget // History token budget (zero-value uses defaults)
}

func (cfg Config) validate() error {
	if cfg.Genkit == nil {
		return errors.New("genkit instance is required")
	}
	if cfg.SessionStore == nil {
		return errors.New("session store is required")
	}
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if len(cfg.Tools) == 0 {
		return errors.New("at least one tool is required")
	}
	return nil
}

// Agent is the conversational front end over the quarantine lookup
// tools. The Dotprompt instructs the model to answer import questions
// exclusively through tool calls and to relay the rendered tool response
// without paraphrasing, so citations and the insufficient-information
// markers survive verbatim.
//
// All configuration is captured immutably at construction; an Agent is
// safe for concurrent use.
type Agent struct {
	modelName   string
	maxTurns    int
	temperature float32

	retryConfig RetryConfig
	breaker     *Breaker
	rateLimiter *rate.Limiter
	tokenBudget TokenBudget

	g         *genkit.Genkit
	sessions  *session.Store
	logger    *slog.Logger
	tools     []ai.Tool
	toolRefs  []ai.ToolRef // cached: ai.Tool implements ai.ToolRef
	toolNames string       // cached comma-separated list for logging
	prompt    ai.Prompt
}

// New builds the agent. The quarantine tools (import_lookup, pest_status,
// manual_search) supply all manual context; the model itself is chosen by
// the Dotprompt unless Config.ModelName overrides it.
func New(cfg Config) (*Agent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	prompt := genkit.LookupPrompt(cfg.Genkit, promptName)
	if prompt == nil {
		return nil, fmt.Errorf("dotprompt %q not found: ensure the prompts directory is configured", promptName)
	}

	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}
	retryConfig := cfg.RetryConfig
	if retryConfig.MaxRetries == 0 {
		retryConfig = DefaultRetryConfig()
	}
	breakerConfig := cfg.BreakerConfig
	if breakerConfig.TripAfter == 0 {
		breakerConfig = DefaultBreakerConfig()
	}
	budget := cfg.TokenBudget
	if budget.MaxHistoryTokens == 0 {
		budget = DefaultTokenBudget()
	}
	limiter := cfg.RateLimiter
	if limiter == nil {
		// 10 req/s sustained with burst of 30 suits Gemini free-tier quotas.
		limiter = rate.NewLimiter(10, 30)
	}

	refs := make([]ai.ToolRef, len(cfg.Tools))
	names := make([]string, len(cfg.Tools))
	for i, tool := range cfg.Tools {
		refs[i] = tool
		names[i] = tool.Name()
	}

	a := &Agent{
		modelName:   cfg.ModelName,
		maxTurns:    maxTurns,
		temperature: cfg.Temperature,
		retryConfig: retryConfig,
		breaker:     NewBreaker(breakerConfig),
		rateLimiter: limiter,
		tokenBudget: budget,
		g:           cfg.Genkit,
		sessions:    cfg.SessionStore,
		logger:      cfg.Logger,
		tools:       cfg.Tools,
		toolRefs:    refs,
		toolNames:   strings.Join(names, ", "),
		prompt:      prompt,
	}

	a.logger.Info("chat agent initialized",
		"tools", a.toolNames,
		"maxTurns", a.maxTurns,
	)
	return a, nil
}

// Execute runs one non-streaming agent turn.
func (a *Agent) Execute(ctx context.Context, sessionID uuid.UUID, input string) (*Response, error) {
	return a.ExecuteStream(ctx, sessionID, input, nil)
}

// ExecuteStream runs one agent turn, streaming chunks through callback
// when it is non-nil. The full response is returned either way, and the
// user/model message pair is appended to the session best-effort.
func (a *Agent) ExecuteStream(ctx context.Context, sessionID uuid.UUID, input string, callback StreamCallback) (*Response, error) {
	a.logger.Debug("executing chat agent",
		"session_id", sessionID,
		"streaming", callback != nil)

	history, err := a.sessions.History(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("getting history: %w", err)
	}

	resp, err := a.generate(ctx, input, history, callback)
	if err != nil {
		return nil, err
	}

	answer := resp.Text()
	// Empty text alongside tool requests is normal agentic behavior; only
	// a fully empty response gets the fallback.
	if strings.TrimSpace(answer) == "" && len(resp.ToolRequests()) == 0 {
		a.logger.Warn("model returned empty response with no tool requests",
			"session_id", sessionID)
		answer = emptyResponseFallback
	}

	turn := []*ai.Message{
		ai.NewUserMessage(ai.NewTextPart(input)),
		ai.NewModelMessage(ai.NewTextPart(answer)),
	}
	if err := a.sessions.AppendMessages(ctx, sessionID, turn); err != nil {
		a.logger.Warn("appending messages to history", "error", err)
	}

	return &Response{
		FinalText:    answer,
		ToolRequests: resp.ToolRequests(),
	}, nil
}

// generate executes the prompt behind the breaker and retry layers.
func (a *Agent) generate(ctx context.Context, input string, history []*ai.Message, callback StreamCallback) (*ai.ModelResponse, error) {
	// Genkit's renderMessages mutates msg.Content in place, so shared
	// history objects race under concurrent turns. Clone before use.
	// Verified against github.com/firebase/genkit/go v1.4.0.
	messages := cloneHistory(history)
	messages = a.truncateHistory(messages, a.tokenBudget.MaxHistoryTokens)
	messages = append(messages, ai.NewUserMessage(ai.NewTextPart(input)))

	a.logger.Debug("executing prompt",
		"tools", a.toolNames,
		"maxTurns", a.maxTurns,
		"queryLength", len(input),
	)

	if err := a.breaker.Allow(); err != nil {
		a.logger.Warn("model breaker rejecting request", "state", a.breaker.State())
		return nil, fmt.Errorf("service unavailable: %w", err)
	}

	resp, err := a.executeWithRetry(ctx, a.promptOptions(messages, callback))
	if err != nil {
		a.breaker.RecordFailure()
		return nil, err
	}
	a.breaker.RecordSuccess()
	return resp, nil
}

// promptOptions assembles the execute options for one turn.
func (a *Agent) promptOptions(messages []*ai.Message, callback StreamCallback) []ai.PromptExecuteOption {
	opts := []ai.PromptExecuteOption{
		ai.WithInput(map[string]any{
			"current_date": time.Now().Format("2006-01-02"),
		}),
		ai.WithMessagesFn(func(_ context.Context, _ any) ([]*ai.Message, error) {
			return messages, nil
		}),
		ai.WithTools(a.toolRefs...),
		ai.WithMaxTurns(a.maxTurns),
		// Pin the sampling temperature. Regulatory answers must not vary
		// between identical queries, so the default config is 0.
		ai.WithConfig(&genai.GenerateContentConfig{
			Temperature: genai.Ptr(a.temperature),
		}),
	}
	if a.modelName != "" {
		opts = append(opts, ai.WithModelName(a.modelName))
	}
	if callback != nil {
		opts = append(opts, ai.WithStreaming(callback))
	}
	return opts
}

// cloneHistory copies messages deeply enough that Genkit's in-place
// content mutation cannot touch the session store's objects. Tool
// request/response payloads are `any` and stay shared: renderMessages
// only rewrites the Content slice, never tool data.
func cloneHistory(msgs []*ai.Message) []*ai.Message {
	if msgs == nil {
		return nil
	}
	out := make([]*ai.Message, len(msgs))
	for i, msg := range msgs {
		parts := make([]*ai.Part, len(msg.Content))
		for j, part := range msg.Content {
			parts[j] = clonePart(part)
		}
		out[i] = &ai.Message{
			Role:     msg.Role,
			Content:  parts,
			Metadata: maps.Clone(msg.Metadata),
		}
	}
	return out
}

func clonePart(p *ai.Part) *ai.Part {
	if p == nil {
		return nil
	}
	cp := &ai.Part{
		Kind:        p.Kind,
		ContentType: p.ContentType,
		Text:        p.Text,
		Custom:      maps.Clone(p.Custom),
		Metadata:    maps.Clone(p.Metadata),
	}
	if req := p.ToolRequest; req != nil {
		cp.ToolRequest = &ai.ToolRequest{Name: req.Name, Ref: req.Ref, Input: req.Input}
	}
	if res := p.ToolResponse; res != nil {
		cp.ToolResponse = &ai.ToolResponse{Name: res.Name, Ref: res.Ref, Output: res.Output}
	}
	if p.Resource != nil {
		cp.Resource = &ai.ResourcePart{Uri: p.Resource.Uri}
	}
	return cp
}

// Title generation.
const (
	titleTimeout       = 5 * time.Second
	titleInputMaxRunes = 500
)

var titlePrompt = fmt.Sprintf(
	`Generate a concise title (max %d characters) for a chat session based on this first message.
The title should capture the main topic or intent.
Return ONLY the title text, no quotes, no explanations, no punctuation at the end.

Message: %%s

Title:`, session.TitleMaxLength)

// GenerateTitle produces a short session title from the user's first
// message. Best-effort: any failure returns "".
func (a *Agent) GenerateTitle(ctx context.Context, userMessage string) string {
	ctx, cancel := context.WithTimeout(ctx, titleTimeout)
	defer cancel()

	opts := []ai.GenerateOption{
		ai.WithPrompt(titlePrompt, clipRunes(userMessage, titleInputMaxRunes)),
	}
	if a.modelName != "" {
		opts = append(opts, ai.WithModelName(a.modelName))
	}

	resp, err := genkit.Generate(ctx, a.g, opts...)
	if err != nil {
		a.logger.Debug("AI title generation failed", "error", err)
		return ""
	}

	title := strings.TrimSpace(resp.Text())
	if len([]rune(title)) > session.TitleMaxLength {
		title = clipRunes(title, session.TitleMaxLength-3)
	}
	return title
}

// clipRunes truncates s to at most n runes, appending "..." when it cut
// anything.
func clipRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
