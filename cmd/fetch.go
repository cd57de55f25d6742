package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gatehouse0/gatehouse/internal/config"
	"github.com/gatehouse0/gatehouse/internal/scrape"
)

// defaultManualURL is the published home of the Plant Quarantine Manual.
const defaultManualURL = "https://nre.tas.gov.au/biosecurity-tasmania/plant-biosecurity/plant-quarantine-manual"

// runFetch crawls the published manual and writes the corpus files the
// index and manual packages consume.
//
//	gatehouse fetch                          crawl the published manual
//	gatehouse fetch --url http://... \
//	  --pages corpus.json --tables raw.json  custom source and outputs
func runFetch() error {
	fetchFlags := flag.NewFlagSet("fetch", flag.ContinueOnError)
	fetchFlags.SetOutput(os.Stderr)
	baseURL := fetchFlags.String("url", defaultManualURL, "Manual base URL to crawl")
	pagesOut := fetchFlags.String("pages", "corpus.json", "Output path for the page corpus")
	tablesOut := fetchFlags.String("tables", "tables.json", "Output path for raw table extracts")
	maxPages := fetchFlags.Int("max-pages", 0, "Page limit for the crawl (0 = default)")
	if err := fetchFlags.Parse(os.Args[2:]); err != nil {
		return fmt.Errorf("parsing fetch flags: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fetcher, err := scrape.New(scrape.Config{
		BaseURL:     *baseURL,
		Parallelism: cfg.Scraper.Parallelism,
		Delay:       time.Duration(cfg.Scraper.DelayMs) * time.Millisecond,
		Timeout:     time.Duration(cfg.Scraper.TimeoutMs) * time.Millisecond,
		MaxPages:    *maxPages,
	})
	if err != nil {
		return fmt.Errorf("creating fetcher: %w", err)
	}

	corpus, err := fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetching manual: %w", err)
	}

	if err := corpus.WritePages(*pagesOut); err != nil {
		return fmt.Errorf("writing page corpus: %w", err)
	}
	if err := corpus.WriteTables(*tablesOut); err != nil {
		return fmt.Errorf("writing table extracts: %w", err)
	}

	fmt.Printf("Fetched %d pages and %d tables\n", len(corpus.Pages), len(corpus.Tables))
	fmt.Printf("  pages:  %s\n", *pagesOut)
	fmt.Printf("  tables: %s\n", *tablesOut)
	return nil
}
