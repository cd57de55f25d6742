package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gatehouse0/gatehouse/internal/chat"
	"github.com/gatehouse0/gatehouse/internal/config"
)

// Runtime is a fully initialized application plus the chat agent and flow.
// It backs every conversational entry point (CLI, ask, serve, TUI).
type Runtime struct {
	App   *App
	Agent *chat.Agent
	Flow  *chat.Flow

	// Shutdown releases all App resources. Callers defer it immediately
	// after a successful NewRuntime.
	Shutdown func() error
}

// NewRuntime initializes the application and wires the chat agent on top.
//
//	rt, err := app.NewRuntime(ctx, cfg)
//	if err != nil { ... }
//	defer rt.Shutdown()
func NewRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	application, err := Setup(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing application: %w", err)
	}

	agent, err := chat.New(chat.Config{
		Genkit:       application.Genkit,
		SessionStore: application.Sessions,
		Logger:       slog.Default(),
		Tools:        application.Tools,
		ModelName:    cfg.FullModelName(),
		MaxTurns:     cfg.MaxTurns,
		Temperature:  cfg.Temperature,
	})
	if err != nil {
		if closeErr := application.Close(); closeErr != nil {
			slog.Warn("cleanup after agent creation failure", "error", closeErr)
		}
		return nil, fmt.Errorf("creating chat agent: %w", err)
	}

	return &Runtime{
		App:      application,
		Agent:    agent,
		Flow:     chat.NewFlow(application.Genkit, agent),
		Shutdown: application.Close,
	}, nil
}
