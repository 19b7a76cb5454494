package retrieve

import (
	"context"

	"github.com/kailas-cloud/docqa/internal/domain"
)

// Repository defines the vector store contract for retrieval.
type Repository interface {
	Query(ctx context.Context, vector []float32, topK int) ([]domain.Match, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
