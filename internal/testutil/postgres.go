// Package testutil provides shared test infrastructure for gatehouse:
// a pgvector-enabled PostgreSQL container, Genkit retrieval wiring, mock
// model and embedder implementations, and SSE stream parsing helpers.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDBContainer bundles a pgvector PostgreSQL container with a ready
// connection pool. The schema matches production: migrations from
// db/migrations run during setup.
type TestDBContainer struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB starts a pgvector PostgreSQL container, runs the schema
// migrations, and returns a connected pool. Cleanup is registered with
// tb.Cleanup, so callers never terminate the container themselves.
//
// Requires a running Docker daemon; tests fail fast when the container
// cannot start.
func SetupTestDB(tb testing.TB) *TestDBContainer {
	tb.Helper()

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"pgvector/pgvector:pg16",
		postgres.WithDatabase("gatehouse_test"),
		postgres.WithUsername("gatehouse_test"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		tb.Fatalf("starting PostgreSQL container: %v", err)
	}
	tb.Cleanup(func() {
		_ = pgContainer.Terminate(context.Background())
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		tb.Fatalf("getting connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		tb.Fatalf("creating connection pool: %v", err)
	}
	tb.Cleanup(pool.Close)

	if err := pool.Ping(ctx); err != nil {
		tb.Fatalf("pinging database: %v", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		tb.Fatalf("running migrations: %v", err)
	}

	return &TestDBContainer{
		Container: pgContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// CleanTables truncates all application tables for test isolation.
func CleanTables(tb testing.TB, pool *pgxpool.Pool) {
	tb.Helper()
	_, err := pool.Exec(context.Background(),
		`TRUNCATE documents, session_messages, sessions CASCADE`)
	if err != nil {
		tb.Fatalf("truncating tables: %v", err)
	}
}

// FindProjectRoot walks up from this source file until it finds go.mod.
// Tests use it to locate migrations and prompt files regardless of the
// package they run from.
func FindProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("getting caller file path")
	}

	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// migrationFiles lists the up migrations applied to test databases,
// in order. Production uses golang-migrate (db.Migrate); tests apply
// the same SQL directly to keep the container setup dependency-light.
var migrationFiles = []string{
	"db/migrations/000001_init_schema.up.sql",
	"db/migrations/000002_create_sessions.up.sql",
}

// runMigrations applies the schema migrations, each in its own
// transaction so a failure leaves no partial migration behind.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		return fmt.Errorf("finding project root: %w", err)
	}

	for _, rel := range migrationFiles {
		path := filepath.Join(projectRoot, rel)
		sql, err := os.ReadFile(path) // #nosec G304 -- paths are package constants
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", rel, err)
		}
		if len(sql) == 0 {
			continue
		}
		if err := applyMigration(ctx, pool, rel, string(sql)); err != nil {
			return err
		}
	}
	return nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, name, sql string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction for %s: %w", name, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, sql); err != nil {
		return fmt.Errorf("executing migration %s: %w", name, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing migration %s: %w", name, err)
	}
	return nil
}
