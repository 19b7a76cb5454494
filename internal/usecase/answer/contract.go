package answer

import (
	"context"

	"github.com/kailas-cloud/docqa/internal/domain"
)

// Retriever fetches the sources most relevant to a question.
type Retriever interface {
	Retrieve(ctx context.Context, question string) ([]domain.Source, error)
}

// Completer generates a chat completion from a system and user prompt.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (domain.CompletionResult, error)
}
