package index

import (
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/plugins/postgresql"
)

// SourceTypeManual marks documents chunked from the quarantine manual.
// It is the only source type the rebuild touches, so rows written by
// other tooling survive a rebuild untouched.
const SourceTypeManual = "manual"

// Table schema constants for the Genkit PostgreSQL plugin.
// These match the documents table in db/migrations.
const (
	DocumentsTableName    = "documents"
	DocumentsSchemaName   = "public"
	DocumentsIDColumn     = "id"
	DocumentsContentCol   = "content"
	DocumentsEmbeddingCol = "embedding"
	DocumentsMetadataCol  = "metadata"
)

// NewDocStoreConfig creates a postgresql.Config for the documents table.
// This factory ensures consistent configuration across production and tests.
func NewDocStoreConfig(embedder ai.Embedder) *postgresql.Config {
	return &postgresql.Config{
		TableName:          DocumentsTableName,
		SchemaName:         DocumentsSchemaName,
		IDColumn:           DocumentsIDColumn,
		ContentColumn:      DocumentsContentCol,
		EmbeddingColumn:    DocumentsEmbeddingCol,
		MetadataJSONColumn: DocumentsMetadataCol,
		MetadataColumns:    []string{"source_type"}, // For filtering by type
		Embedder:           embedder,
	}
}
