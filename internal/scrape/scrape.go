// Package scrape fetches the published quarantine manual pages from the
// web and converts them into the corpus files the index and manual
// packages consume: a JSON page list for semantic indexing and raw table
// grids for the structured host register.
package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/gocolly/colly/v2"
	"golang.org/x/net/html"

	"github.com/gatehouse0/gatehouse/internal/index"
	"github.com/gatehouse0/gatehouse/internal/manual"
)

// Defaults applied when Config leaves the corresponding field zero.
const (
	DefaultParallelism = 2
	DefaultDelay       = time.Second
	DefaultTimeout     = 30 * time.Second
	DefaultMaxPages    = 200
	defaultUserAgent   = "gatehouse-fetch/1.0 (+quarantine manual corpus builder)"
)

// Config controls a fetch run.
type Config struct {
	// BaseURL is the page the crawl starts from. Only links under its
	// host and path prefix are followed.
	BaseURL string

	// Parallelism caps concurrent requests per domain.
	Parallelism int
	// Delay is the politeness delay between requests to the same domain.
	Delay time.Duration
	// Timeout bounds each request.
	Timeout time.Duration
	// MaxPages stops the crawl after this many pages were stored.
	MaxPages int

	UserAgent string
	Logger    *slog.Logger
}

// Corpus is the result of a fetch: readable page text in crawl order and
// every table grid found along the way.
type Corpus struct {
	Pages  []index.Page
	Tables []manual.RawPage
}

// Fetcher crawls the manual site.
type Fetcher struct {
	cfg    Config
	logger *slog.Logger
}

// New validates the configuration and returns a Fetcher.
func New(cfg Config) (*Fetcher, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = DefaultParallelism
	}
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{cfg: cfg, logger: logger}, nil
}

// fetchedPage pairs extracted content with its crawl order so the corpus
// is deterministic regardless of response arrival order.
type fetchedPage struct {
	order  int
	url    string
	text   string
	tables [][][]string
}

// Fetch crawls from BaseURL and returns the assembled corpus. The crawl
// stays within the base URL's host and path prefix, respects robots.txt
// denials silently, and stops at MaxPages.
func (f *Fetcher) Fetch(ctx context.Context) (*Corpus, error) {
	base, err := url.Parse(f.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}

	collector := colly.NewCollector(
		colly.AllowedDomains(base.Hostname()),
		colly.UserAgent(f.cfg.UserAgent),
		colly.Async(true),
		colly.MaxDepth(4),
	)
	collector.SetRequestTimeout(f.cfg.Timeout)
	if err := collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: f.cfg.Parallelism,
		Delay:       f.cfg.Delay,
	}); err != nil {
		return nil, fmt.Errorf("configuring crawl limits: %w", err)
	}

	var (
		mu      sync.Mutex
		pages   []fetchedPage
		visited int
	)

	pathPrefix := base.Path

	collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		select {
		case <-ctx.Done():
			return
		default:
		}

		link := e.Request.AbsoluteURL(e.Attr("href"))
		if link == "" {
			return
		}
		u, err := url.Parse(link)
		if err != nil {
			return
		}
		if u.Hostname() != base.Hostname() || !strings.HasPrefix(u.Path, pathPrefix) {
			return
		}

		mu.Lock()
		full := visited >= f.cfg.MaxPages
		mu.Unlock()
		if full {
			return
		}

		// Visit errors (already seen, disallowed, depth) are expected.
		_ = e.Request.Visit(link)
	})

	collector.OnResponse(func(r *colly.Response) {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !strings.Contains(r.Headers.Get("Content-Type"), "text/html") {
			return
		}

		mu.Lock()
		if visited >= f.cfg.MaxPages {
			mu.Unlock()
			return
		}
		visited++
		order := visited
		mu.Unlock()

		page := fetchedPage{
			order: order,
			url:   r.Request.URL.String(),
			text:  extractText(r.Body, r.Request.URL),
		}
		page.tables = extractTables(r.Body)

		mu.Lock()
		pages = append(pages, page)
		mu.Unlock()

		f.logger.Debug("fetched page",
			"url", page.url,
			"order", order,
			"tables", len(page.tables),
		)
	})

	collector.OnError(func(r *colly.Response, err error) {
		f.logger.Warn("fetch error", "url", r.Request.URL.String(), "error", err)
	})

	if err := collector.Visit(f.cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("starting crawl at %s: %w", f.cfg.BaseURL, err)
	}
	collector.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("crawl canceled: %w", err)
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].order < pages[j].order })

	corpus := &Corpus{}
	for _, p := range pages {
		if strings.TrimSpace(p.text) != "" {
			corpus.Pages = append(corpus.Pages, index.Page{
				Number: len(corpus.Pages) + 1,
				Text:   p.text,
			})
		}
		for _, grid := range p.tables {
			corpus.Tables = append(corpus.Tables, manual.RawPage{
				Page: p.order,
				Rows: grid,
			})
		}
	}

	if len(corpus.Pages) == 0 {
		return nil, fmt.Errorf("crawl of %s produced no usable pages", f.cfg.BaseURL)
	}

	f.logger.Info("fetch complete",
		"pages", len(corpus.Pages),
		"tables", len(corpus.Tables),
	)
	return corpus, nil
}

// WritePages writes the page corpus as JSON consumable by index.LoadPages.
func (c *Corpus) WritePages(path string) error {
	return writeJSONFile(path, c.Pages)
}

// WriteTables writes the raw table extracts consumable by manual.CleanTables.
func (c *Corpus) WriteTables(path string) error {
	return writeJSONFile(path, c.Tables)
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// extractText pulls the readable article text out of an HTML page,
// falling back to a plain node walk when readability rejects the page
// (navigation-heavy index pages, mostly).
func extractText(body []byte, pageURL *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return manual.CleanText(article.TextContent)
	}

	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	var sb strings.Builder
	collectText(root, &sb)
	return manual.CleanText(sb.String())
}

// collectText walks the node tree accumulating visible text, skipping
// elements that never carry prose.
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "nav", "header", "footer":
			return
		}
	}
	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" {
			sb.WriteString(text)
			sb.WriteByte(' ')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// extractTables converts every <table> on the page into a cell grid.
func extractTables(body []byte) [][][]string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var grids [][][]string
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		var grid [][]string
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var row []string
			tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
				row = append(row, manual.CleanText(cell.Text()))
			})
			if len(row) > 0 {
				grid = append(grid, row)
			}
		})
		if len(grid) > 0 {
			grids = append(grids, grid)
		}
	})
	return grids
}
