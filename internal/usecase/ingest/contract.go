package ingest

import (
	"context"

	"github.com/kailas-cloud/docqa/internal/domain"
)

// Repository defines the vector store contract for ingestion.
type Repository interface {
	Upsert(ctx context.Context, records []domain.IndexRecord) (int, error)
	DeleteByFilename(ctx context.Context, filename string) (int, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
