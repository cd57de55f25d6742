// Package app assembles the application: configuration, tracing, the
// PostgreSQL pool, Genkit with its model and vector-store plugins, the
// quarantine manual tables, session persistence, and the lookup tools.
//
// Setup returns an App with embedded cleanup; entry points that also need
// the chat agent and flow should use NewRuntime instead.
package app

import (
	"log/slog"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/postgresql"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatehouse0/gatehouse/internal/config"
	"github.com/gatehouse0/gatehouse/internal/manual"
	"github.com/gatehouse0/gatehouse/internal/session"
	"github.com/gatehouse0/gatehouse/internal/tools"
)

// App is the application container. All fields are initialized by Setup
// and read-only afterwards.
type App struct {
	Config *config.Config

	// Core services
	Genkit    *genkit.Genkit
	Embedder  ai.Embedder
	DBPool    *pgxpool.Pool
	DocStore  *postgresql.DocStore
	Retriever ai.Retriever

	// Domain services
	Manual     *manual.Store
	Sessions   *session.Store
	Quarantine *tools.Quarantine
	Tools      []ai.Tool // Genkit-registered quarantine tools

	// Lifecycle
	otelCleanup func()
	dbCleanup   func()
}

// Close releases all resources in reverse initialization order.
// Safe to call on a partially initialized App (Setup calls it on failure).
func (a *App) Close() error {
	slog.Info("shutting down application")

	if a.dbCleanup != nil {
		a.dbCleanup()
		slog.Debug("database pool closed")
	}

	// Flush pending spans last so teardown itself is still traced.
	if a.otelCleanup != nil {
		a.otelCleanup()
	}

	return nil
}
