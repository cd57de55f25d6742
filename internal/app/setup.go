package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/firebase/genkit/go/core/api"
	"github.com/firebase/genkit/go/core/tracing"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/postgresql"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/gatehouse0/gatehouse/db"
	"github.com/gatehouse0/gatehouse/internal/config"
	"github.com/gatehouse0/gatehouse/internal/index"
	"github.com/gatehouse0/gatehouse/internal/manual"
	"github.com/gatehouse0/gatehouse/internal/session"
	"github.com/gatehouse0/gatehouse/internal/tools"
)

// Pool sizing for a single-instance deployment. The HTTP server, the
// indexer, and the session store all share one pool.
const (
	poolMaxConns     = 10
	poolMinConns     = 2
	poolConnLifetime = 30 * time.Minute
	poolConnIdleTime = 5 * time.Minute
	poolHealthPeriod = time.Minute
)

// Setup brings up every shared component in dependency order: tracing,
// database (with migrations), Genkit and its model plugins, the pgvector
// retriever, the lookup tables, the session store, and the toolset.
// The returned App owns the teardown; callers must Close it.
func Setup(ctx context.Context, cfg *config.Config) (_ *App, retErr error) {
	a := &App{Config: cfg}

	// Partial failures tear down whatever already came up.
	defer func() {
		if retErr != nil {
			if err := a.Close(); err != nil {
				slog.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	a.otelCleanup = initTracing(ctx, cfg.Datadog)

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.DBPool = pool
	a.dbCleanup = pool.Close

	engine, err := postgresql.NewPostgresEngine(ctx,
		postgresql.WithPool(pool),
		postgresql.WithDatabase(cfg.PostgresDBName),
	)
	if err != nil {
		return nil, fmt.Errorf("creating postgres engine: %w", err)
	}
	pgPlugin := &postgresql.Postgres{Engine: engine}

	// Gemini generates, OpenAI embeds. Tracing must already be registered
	// because Init captures the TracerProvider.
	promptDir := cfg.PromptDir
	if promptDir == "" {
		promptDir = "prompts"
	}
	g := genkit.Init(ctx,
		genkit.WithPlugins(&googlegenai.GoogleAI{}, &openai.OpenAI{}, pgPlugin),
		genkit.WithPromptDir(promptDir),
	)
	if g == nil {
		return nil, errors.New("initializing genkit")
	}
	a.Genkit = g
	slog.Info("initialized genkit",
		"model", cfg.ModelName,
		"embedder", cfg.EmbedderModel,
		"promptDir", promptDir,
	)

	embedder := genkit.LookupEmbedder(g, api.NewName("openai", cfg.EmbedderModel))
	if embedder == nil {
		return nil, fmt.Errorf("embedder %q not registered by openai plugin", cfg.EmbedderModel)
	}
	a.Embedder = embedder

	// DocStore writes manual chunks at index time; the retriever serves
	// the semantic-search fallback at question time.
	docStore, retriever, err := postgresql.DefineRetriever(ctx, g, pgPlugin, index.NewDocStoreConfig(embedder))
	if err != nil {
		return nil, fmt.Errorf("defining retriever: %w", err)
	}
	a.DocStore = docStore
	a.Retriever = retriever

	manualStore, err := loadManual(cfg)
	if err != nil {
		return nil, fmt.Errorf("loading manual tables: %w", err)
	}
	a.Manual = manualStore

	sessions, err := session.NewStore(pool, slog.Default())
	if err != nil {
		return nil, err
	}
	a.Sessions = sessions

	q, err := tools.NewQuarantine(a.Manual, a.Retriever, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("creating quarantine tools: %w", err)
	}
	a.Quarantine = q

	registered, err := tools.RegisterQuarantine(g, q)
	if err != nil {
		return nil, fmt.Errorf("registering quarantine tools: %w", err)
	}
	a.Tools = registered
	slog.Info("tools registered at construction", "count", len(registered))

	return a, nil
}

// initTracing wires an OTLP HTTP exporter into Genkit's TracerProvider.
// Spans go to a local Datadog Agent, which owns auth and forwarding; a
// missing agent downgrades to no tracing rather than failing startup.
// The returned func flushes and stops the provider.
func initTracing(ctx context.Context, dd config.DatadogConfig) func() {
	endpoint := dd.AgentHost
	if endpoint == "" {
		endpoint = "localhost:4318"
	}

	// Genkit reads these when it builds the TracerProvider. Setenv is
	// safe here: Setup runs once, before any goroutine starts.
	if dd.ServiceName != "" {
		_ = os.Setenv("OTEL_SERVICE_NAME", dd.ServiceName)
	}
	if dd.Environment != "" {
		_ = os.Setenv("OTEL_RESOURCE_ATTRIBUTES", "deployment.environment="+dd.Environment)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(), // local agent, no TLS
	)
	if err != nil {
		slog.Warn("creating datadog exporter, tracing disabled", "error", err)
		return func() {}
	}

	tracing.TracerProvider().RegisterSpanProcessor(sdktrace.NewBatchSpanProcessor(exporter))
	slog.Debug("datadog tracing enabled",
		"agent", endpoint,
		"service", dd.ServiceName,
		"environment", dd.Environment,
	)

	stop := tracing.TracerProvider().Shutdown

	//nolint:contextcheck // teardown runs after the parent context is canceled
	return func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := stop(flushCtx); err != nil {
			slog.Warn("shutting down tracer provider", "error", err)
		}
	}
}

// loadManual builds the reference tables, merging a scraped table extract
// over the built-in host register when tables_path names one. This is the
// refresh path for a new manual revision: fetch writes the extract, the
// next start picks it up here.
func loadManual(cfg *config.Config) (*manual.Store, error) {
	if cfg.TablesPath == "" {
		return manual.Load()
	}

	extra, skipped, err := manual.LoadCommodityFile(cfg.TablesPath)
	if err != nil {
		return nil, fmt.Errorf("reading table extract: %w", err)
	}
	store, err := manual.LoadWithCommodities(extra)
	if err != nil {
		return nil, err
	}
	slog.Info("host register refreshed from table extract",
		"path", cfg.TablesPath,
		"commodities", len(extra),
		"skipped_rows", skipped,
	)
	return store, nil
}

// openPool applies pending migrations, then builds and pings the shared
// pgx pool.
func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if err := db.Migrate(cfg.PostgresURL()); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parsing connection config: %w", err)
	}
	poolCfg.MaxConns = poolMaxConns
	poolCfg.MinConns = poolMinConns
	poolCfg.MaxConnLifetime = poolConnLifetime
	poolCfg.MaxConnIdleTime = poolConnIdleTime
	poolCfg.HealthCheckPeriod = poolHealthPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}
