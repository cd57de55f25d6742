package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/plugins/postgresql"
	"github.com/gofrs/flock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/gatehouse0/gatehouse/internal/manual"
)

// ErrLocked reports that another rebuild already holds the index lock.
var ErrLocked = errors.New("index rebuild already in progress")

// indexBatchSize bounds documents per DocStore.Index call so a single
// embedding request stays within provider payload limits.
const indexBatchSize = 50

// VerifyProbe is the query embedded during post-rebuild verification.
// Fruit fly host conditions appear throughout section 3, so the nearest
// chunk always exists in a healthy index.
const VerifyProbe = "fruit fly host produce import conditions"

// Indexer rebuilds the semantic index over the manual corpus.
type Indexer struct {
	store    *postgresql.DocStore
	pool     *pgxpool.Pool
	chunker  *Chunker
	logger   *slog.Logger
	lockPath string
}

// Config collects Indexer dependencies.
type Config struct {
	Store *postgresql.DocStore
	Pool  *pgxpool.Pool
	// LockPath is the lock file guarding rebuilds, usually under the
	// application home directory.
	LockPath string
	// ChunkTokens overrides the chunk token budget. Zero selects
	// DefaultChunkTokens.
	ChunkTokens int
	Logger      *slog.Logger
}

// New creates an Indexer.
func New(cfg Config) (*Indexer, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if cfg.LockPath == "" {
		return nil, fmt.Errorf("lock path is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{
		store:    cfg.Store,
		pool:     cfg.Pool,
		chunker:  NewChunker(cfg.ChunkTokens),
		logger:   logger,
		lockPath: cfg.LockPath,
	}, nil
}

// Result reports what a rebuild did.
type Result struct {
	Pages    int
	Chunks   int
	Deleted  int64
	Duration time.Duration
}

// Rebuild replaces the manual portion of the documents table with chunks
// from the given pages. The whole corpus is re-chunked and re-embedded;
// there is no incremental path.
//
// A file lock serializes rebuilds. A held lock returns ErrLocked
// immediately rather than queueing, so an operator retry cannot stack
// behind a slow embedding run.
//
// The DocStore only inserts, so replacement is delete-then-insert. A
// crash between the two leaves the index empty until the next rebuild;
// Verify catches that case.
func (ix *Indexer) Rebuild(ctx context.Context, pages []Page) (*Result, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to index")
	}

	lock := flock.New(ix.lockPath)
	held, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring index lock: %w", err)
	}
	if !held {
		return nil, ErrLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			ix.logger.Warn("releasing index lock", "error", err)
		}
	}()

	start := time.Now()
	chunks := ix.chunker.Split(pages)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("chunking produced no chunks")
	}

	deleted, err := ix.deleteManualChunks(ctx)
	if err != nil {
		return nil, err
	}

	docs := toDocuments(chunks)
	for batchStart := 0; batchStart < len(docs); batchStart += indexBatchSize {
		batch := docs[batchStart:min(batchStart+indexBatchSize, len(docs))]
		if err := ix.store.Index(ctx, batch); err != nil {
			return nil, fmt.Errorf("indexing batch at %d: %w", batchStart, err)
		}
	}

	res := &Result{
		Pages:    len(pages),
		Chunks:   len(chunks),
		Deleted:  deleted,
		Duration: time.Since(start),
	}
	ix.logger.Info("index rebuilt",
		"pages", res.Pages,
		"chunks", res.Chunks,
		"deleted", res.Deleted,
		"duration", res.Duration,
	)
	return res, nil
}

// deleteManualChunks removes every manual chunk. Rows with other source
// types are left alone.
func (ix *Indexer) deleteManualChunks(ctx context.Context) (int64, error) {
	tag, err := ix.pool.Exec(ctx,
		`DELETE FROM documents WHERE source_type = $1`, SourceTypeManual)
	if err != nil {
		return 0, fmt.Errorf("deleting manual chunks: %w", err)
	}
	return tag.RowsAffected(), nil
}

// toDocuments converts chunks to Genkit documents. Metadata mirrors chunk
// provenance so retrieval results can cite page and section.
func toDocuments(chunks []Chunk) []*ai.Document {
	docs := make([]*ai.Document, 0, len(chunks))
	for _, ch := range chunks {
		docs = append(docs, ai.DocumentFromText(ch.Text, map[string]any{
			"id":          ch.ID,
			"source_type": SourceTypeManual,
			"source":      manual.ManualSource,
			"page":        ch.Page,
			"section":     ch.Section,
		}))
	}
	return docs
}

// Verify embeds a fixed probe and looks up the nearest stored chunk
// directly through pgx. It exercises the same embedding dimension and
// distance operator the retriever uses, so a dimension mismatch or an
// empty table surfaces here instead of at query time.
func (ix *Indexer) Verify(ctx context.Context, embedder ai.Embedder) error {
	if embedder == nil {
		return fmt.Errorf("embedder is required")
	}

	resp, err := embedder.Embed(ctx, &ai.EmbedRequest{
		Input: []*ai.Document{ai.DocumentFromText(VerifyProbe, nil)},
	})
	if err != nil {
		return fmt.Errorf("embedding probe: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Embedding) == 0 {
		return fmt.Errorf("empty embedding response")
	}
	vec := pgvector.NewVector(resp.Embeddings[0].Embedding)

	var (
		id   string
		page int
	)
	queryErr := ix.pool.QueryRow(ctx,
		`SELECT id, (metadata->>'page')::int
		 FROM documents
		 WHERE source_type = $2
		 ORDER BY embedding <=> $1
		 LIMIT 1`,
		vec, SourceTypeManual,
	).Scan(&id, &page)
	switch {
	case errors.Is(queryErr, pgx.ErrNoRows):
		return fmt.Errorf("index is empty, run a rebuild first")
	case queryErr != nil:
		return fmt.Errorf("probing nearest chunk: %w", queryErr)
	}

	ix.logger.Info("index verified", "nearest", id, "page", page)
	return nil
}
