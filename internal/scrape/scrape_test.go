package scrape

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gatehouse0/gatehouse/internal/index"
	"github.com/gatehouse0/gatehouse/internal/log"
	"github.com/gatehouse0/gatehouse/internal/manual"
)

const indexHTML = `<!DOCTYPE html>
<html><head><title>Plant Quarantine Manual</title></head><body>
<nav><a href="/manual/ignored-nav">nav</a></nav>
<h1>Plant Quarantine Manual Tasmania</h1>
<p>The manual sets out import requirements for plants and plant products
entering Tasmania from other Australian states and territories.</p>
<a href="/manual/hosts">Host register</a>
<a href="https://elsewhere.example.com/offsite">Offsite</a>
</body></html>`

const hostsHTML = `<!DOCTYPE html>
<html><head><title>Host register</title></head><body>
<h1>Fruit fly host produce</h1>
<p>Apples, apricots and cherries are category one fruit fly hosts and
must satisfy Import Requirement 1 before entry into Tasmania.</p>
<table>
<tr><th>Fruit Fly Host Produce</th><th>Import Requirement</th></tr>
<tr><td>Apple</td><td>IR 1</td></tr>
<tr><td>Cherry</td><td>IR 1</td></tr>
</table>
</body></html>`

func newManualSite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/manual/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		switch r.URL.Path {
		case "/manual/":
			_, _ = w.Write([]byte(indexHTML))
		case "/manual/hosts":
			_, _ = w.Write([]byte(hostsHTML))
		default:
			http.NotFound(w, r)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestFetcher(t *testing.T, baseURL string, maxPages int) *Fetcher {
	t.Helper()

	f, err := New(Config{
		BaseURL:     baseURL,
		Parallelism: 2,
		Delay:       time.Millisecond,
		Timeout:     5 * time.Second,
		MaxPages:    maxPages,
		Logger:      log.NewNop(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for missing base url")
	}
	if _, err := New(Config{BaseURL: "not a url"}); err == nil {
		t.Fatal("expected error for malformed base url")
	}

	f, err := New(Config{BaseURL: "https://nre.tas.gov.au/biosecurity-tasmania"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if f.cfg.Parallelism != DefaultParallelism {
		t.Errorf("Parallelism = %d, want default %d", f.cfg.Parallelism, DefaultParallelism)
	}
	if f.cfg.MaxPages != DefaultMaxPages {
		t.Errorf("MaxPages = %d, want default %d", f.cfg.MaxPages, DefaultMaxPages)
	}
}

func TestFetch_CrawlsSite(t *testing.T) {
	srv := newManualSite(t)
	f := newTestFetcher(t, srv.URL+"/manual/", 10)

	corpus, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(corpus.Pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(corpus.Pages))
	}
	for i, p := range corpus.Pages {
		if p.Number != i+1 {
			t.Errorf("page %d has number %d", i, p.Number)
		}
	}
	if !strings.Contains(strings.ToLower(corpus.Pages[0].Text), "import requirements") {
		t.Errorf("index page text missing expected content: %q", corpus.Pages[0].Text)
	}

	if len(corpus.Tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(corpus.Tables))
	}
	grid := corpus.Tables[0].Rows
	if len(grid) != 3 {
		t.Fatalf("got %d table rows, want 3", len(grid))
	}
	if grid[1][0] != "Apple" || grid[1][1] != "IR 1" {
		t.Errorf("unexpected first data row: %v", grid[1])
	}
}

func TestFetch_StaysOnSite(t *testing.T) {
	srv := newManualSite(t)
	f := newTestFetcher(t, srv.URL+"/manual/", 10)

	corpus, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	// The offsite link would have produced a third page if followed.
	if len(corpus.Pages) > 2 {
		t.Errorf("crawl left the site: %d pages", len(corpus.Pages))
	}
}

func TestFetch_RespectsMaxPages(t *testing.T) {
	srv := newManualSite(t)
	f := newTestFetcher(t, srv.URL+"/manual/", 1)

	corpus, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(corpus.Pages) != 1 {
		t.Errorf("got %d pages, want 1", len(corpus.Pages))
	}
}

func TestCorpus_RoundTrip(t *testing.T) {
	srv := newManualSite(t)
	f := newTestFetcher(t, srv.URL+"/manual/", 10)

	corpus, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	dir := t.TempDir()
	pagesPath := filepath.Join(dir, "corpus.json")
	tablesPath := filepath.Join(dir, "tables.json")

	if err := corpus.WritePages(pagesPath); err != nil {
		t.Fatalf("WritePages: %v", err)
	}
	if err := corpus.WriteTables(tablesPath); err != nil {
		t.Fatalf("WriteTables: %v", err)
	}

	pages, err := index.LoadPages(pagesPath)
	if err != nil {
		t.Fatalf("LoadPages: %v", err)
	}
	if len(pages) != len(corpus.Pages) {
		t.Errorf("loaded %d pages, want %d", len(pages), len(corpus.Pages))
	}

	data, err := os.ReadFile(tablesPath)
	if err != nil {
		t.Fatalf("reading tables: %v", err)
	}
	var raw []manual.RawPage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("decoding tables: %v", err)
	}
	cleaned := manual.CleanTables("Fruit fly host produce", raw)
	if len(cleaned.Rows) != 2 {
		t.Errorf("cleaned table has %d rows, want 2", len(cleaned.Rows))
	}
}

func TestExtractTables_SkipsEmpty(t *testing.T) {
	grids := extractTables([]byte(`<html><body><table></table><p>no cells</p></body></html>`))
	if len(grids) != 0 {
		t.Errorf("got %d grids from empty table, want 0", len(grids))
	}
}
