// Package index builds and maintains the semantic index over the
// Tasmanian Plant Quarantine Manual text.
//
// The package owns the full pipeline from raw manual pages to stored
// vectors. It uses Firebase Genkit's PostgreSQL plugin for vector storage
// and retrieval.
//
// # Pipeline
//
//	Manual pages (built-in corpus or fetched JSON)
//	     |
//	     +-- Chunker: token-budget splitting, page provenance
//	     |
//	     v
//	Genkit PostgreSQL DocStore
//	     |
//	     +-- Vector embedding (via AI Embedder)
//	     +-- Vector storage (PostgreSQL + pgvector)
//	     |
//	     v
//	Genkit Retriever (ai.Retriever interface)
//
// # Key Components
//
// Chunker: splits pages into chunks bounded by a token budget. Chunks
// never span pages, so every chunk carries a single page citation.
//
// Indexer: wholesale rebuild of the manual portion of the documents
// table. Rebuilds are serialized through a file lock and replace all
// existing manual chunks via delete-then-insert, because the Genkit
// DocStore only inserts.
//
// NewDocStoreConfig: creates the configuration for the Genkit PostgreSQL
// DocStore shared by production wiring and integration tests.
//
// # Provenance
//
// Every chunk's metadata records the manual page it came from, the
// section heading in effect on that page, and the manual edition. The
// retrieval layer surfaces these as citations, so indexing a chunk
// without provenance would produce uncitable answers; the Chunker
// guarantees the fields are always populated.
package index
