package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gatehouse0/gatehouse/internal/app"
	"github.com/gatehouse0/gatehouse/internal/config"
	"github.com/gatehouse0/gatehouse/internal/index"
)

// runIndex rebuilds the semantic index over the manual corpus.
//
//	gatehouse index                      rebuild from the built-in corpus
//	gatehouse index --corpus pages.json  rebuild from a fetched corpus file
//	gatehouse index --tables raw.json    refresh the host register alongside
//	gatehouse index --verify             probe the index after rebuilding
func runIndex() error {
	indexFlags := flag.NewFlagSet("index", flag.ContinueOnError)
	indexFlags.SetOutput(os.Stderr)
	corpusPath := indexFlags.String("corpus", "", "Path to a corpus JSON file (default: built-in corpus)")
	tablesPath := indexFlags.String("tables", "", "Path to a raw table extract for the host register (default: built-in tables)")
	verify := indexFlags.Bool("verify", false, "Run a retrieval probe after rebuilding")
	if err := indexFlags.Parse(os.Args[2:]); err != nil {
		return fmt.Errorf("parsing index flags: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *tablesPath != "" {
		cfg.TablesPath = *tablesPath
	}

	pages := index.Pages()
	if *corpusPath != "" {
		pages, err = index.LoadPages(*corpusPath)
		if err != nil {
			return fmt.Errorf("loading corpus: %w", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := slog.Default()

	a, err := app.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	if cfg.TablesPath != "" {
		fmt.Printf("Host register: %d commodities (extract: %s)\n",
			len(a.Manual.Commodities()), cfg.TablesPath)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting user home directory: %w", err)
	}

	indexer, err := index.New(index.Config{
		Store:    a.DocStore,
		Pool:     a.DBPool,
		LockPath: filepath.Join(home, ".gatehouse", "index.lock"),
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("creating indexer: %w", err)
	}

	result, err := indexer.Rebuild(ctx, pages)
	if err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}
	fmt.Printf("Indexed %d pages as %d chunks (replaced %d) in %s\n",
		result.Pages, result.Chunks, result.Deleted, result.Duration.Round(time.Millisecond))

	if *verify {
		if err := indexer.Verify(ctx, a.Embedder); err != nil {
			return fmt.Errorf("verifying index: %w", err)
		}
		fmt.Println("Verification probe succeeded")
	}
	return nil
}
