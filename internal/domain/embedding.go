package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
// The vector dimensionality is fixed by the deployed embedding model and
// must be identical for every call; vectors of different dimensionality
// must never be mixed in the same index.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and token usage through the
// decorator chain. A cache hit reports zero tokens.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}
