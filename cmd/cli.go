package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/gatehouse0/gatehouse/internal/app"
	"github.com/gatehouse0/gatehouse/internal/config"
	"github.com/gatehouse0/gatehouse/internal/session"
	"github.com/gatehouse0/gatehouse/internal/tui"
)

// runCLI initializes and starts the interactive chat TUI.
func runCLI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rt, err := app.NewRuntime(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing runtime: %w", err)
	}
	defer func() {
		if closeErr := rt.Shutdown(); closeErr != nil {
			slog.Warn("runtime shutdown error", "error", closeErr)
		}
	}()

	sessionID, err := resolveSessionID(ctx, rt.App.Sessions)
	if err != nil {
		return fmt.Errorf("resolving session: %w", err)
	}

	model, err := tui.New(ctx, rt.Flow, sessionID)
	if err != nil {
		return fmt.Errorf("creating TUI: %w", err)
	}
	program := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err = program.Run(); err != nil {
		return fmt.Errorf("TUI exited: %w", err)
	}
	return nil
}

// resolveSessionID resumes the session recorded in the state file when it
// still exists, otherwise creates a fresh one and records it.
func resolveSessionID(ctx context.Context, store *session.Store) (uuid.UUID, error) {
	currentID, err := session.LoadCurrentSessionID()
	if err != nil {
		return uuid.Nil, fmt.Errorf("loading session state: %w", err)
	}

	if currentID != nil {
		if _, err = store.Session(ctx, *currentID); err == nil {
			return *currentID, nil
		}
		if !errors.Is(err, session.ErrSessionNotFound) {
			return uuid.Nil, fmt.Errorf("validating session: %w", err)
		}
	}

	newSess, err := store.Create(ctx, "New conversation")
	if err != nil {
		return uuid.Nil, fmt.Errorf("creating session: %w", err)
	}
	if err := session.SaveCurrentSessionID(newSess.ID); err != nil {
		slog.Warn("saving session state", "error", err)
	}
	return newSess.ID, nil
}
