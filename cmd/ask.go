package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gatehouse0/gatehouse/internal/app"
	"github.com/gatehouse0/gatehouse/internal/chat"
	"github.com/gatehouse0/gatehouse/internal/config"
)

// runAsk answers a single question and exits. The answer streams to
// stdout as it is generated; everything else goes to stderr.
func runAsk() error {
	query := strings.TrimSpace(strings.Join(os.Args[2:], " "))
	if query == "" {
		return fmt.Errorf("usage: gatehouse ask <question>")
	}

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

	// One-shot questions get a throwaway session; it still persists the
	// exchange so `gatehouse serve` clients can list it later.
	sess, err := rt.App.Sessions.Create(ctx, rt.Agent.GenerateTitle(ctx, query))
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	var streamed bool
	for sv, err := range rt.Flow.Stream(ctx, chat.Input{Query: query, SessionID: sess.ID.String()}) {
		if err != nil {
			return fmt.Errorf("answering question: %w", err)
		}
		if sv.Done {
			// A model that streamed nothing still produces a final
			// output; print it once rather than staying silent.
			if !streamed {
				fmt.Println(sv.Output.Response)
			}
			break
		}
		if sv.Stream.Text != "" {
			streamed = true
			fmt.Print(sv.Stream.Text)
		}
	}
	if streamed {
		fmt.Println()
	}
	return nil
}
