package domain

import "context"

// Completer is the chat completion contract. One call sends exactly one
// system message and one user message and requests a single non-streaming
// completion.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (CompletionResult, error)
}

// CompletionResult carries the generated answer text and token usage.
type CompletionResult struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
