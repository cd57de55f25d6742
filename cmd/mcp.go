package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	mcpSdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gatehouse0/gatehouse/internal/app"
	"github.com/gatehouse0/gatehouse/internal/config"
	"github.com/gatehouse0/gatehouse/internal/mcp"
)

// runMCP exposes the quarantine tools over stdio so external MCP hosts
// (editors, other agents) can query the manual without the chat layer.
func runMCP() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	gh, err := app.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := gh.Close(); closeErr != nil {
			slog.Warn("shutdown error", "error", closeErr)
		}
	}()

	srv, err := mcp.NewServer(mcp.Config{
		Name:       "gatehouse",
		Version:    Version,
		Logger:     slog.Default(),
		Quarantine: gh.Quarantine,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	// Logs go to stderr; stdout belongs to the protocol.
	slog.Info("MCP server listening on stdio", "name", "gatehouse", "version", Version)

	if err := srv.Run(ctx, &mcpSdk.StdioTransport{}); err != nil {
		return fmt.Errorf("MCP server: %w", err)
	}
	return nil
}
