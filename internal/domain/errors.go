package domain

import "errors"

var (
	// ErrInvalidDocument signals a document that cannot be indexed (e.g. empty filename).
	ErrInvalidDocument = errors.New("invalid document")
	// ErrInvalidQuestion signals an empty or malformed question.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrVectorStore signals a vector index read or write failure.
	ErrVectorStore = errors.New("vector store error")
	// ErrCompletionProviderError signals a chat completion provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
)
