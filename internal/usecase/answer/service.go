// Package answer orchestrates the question answering flow: retrieval,
// prompt assembly, and completion.
package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docqa/internal/domain"
	"github.com/kailas-cloud/docqa/internal/prompt"
)

// User-facing texts for degraded answers. Provider and index failures never
// surface raw errors to the caller.
const (
	msgEmbedFailed    = "Failed to embed the question."
	msgRetrieveFailed = "Failed to search the document index."
	msgCompleteFailed = "Failed to generate an answer."
)

// Service handles question answering.
type Service struct {
	retriever Retriever
	completer Completer
	logger    *zap.Logger
}

// New creates an answering service.
func New(retriever Retriever, completer Completer, logger *zap.Logger) *Service {
	return &Service{retriever: retriever, completer: completer, logger: logger}
}

// Answer retrieves relevant sources, assembles the prompt, and generates a
// grounded answer. Downstream failures degrade to an unavailable answer with
// a user-facing message instead of an error. Only an invalid question is
// returned as an error.
func (s *Service) Answer(ctx context.Context, question, chatHistory string) (domain.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return domain.Answer{}, fmt.Errorf("question is required: %w", domain.ErrInvalidQuestion)
	}

	sources, err := s.retriever.Retrieve(ctx, question)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuestion) {
			return domain.Answer{}, err
		}
		s.logger.Warn("Retrieval failed, degrading answer", zap.Error(err))
		return degraded(err), nil
	}

	userPrompt := prompt.Assemble(sources, chatHistory, question)

	completion, err := s.completer.Complete(ctx, prompt.SystemInstruction, userPrompt)
	if err != nil {
		s.logger.Warn("Completion failed, degrading answer", zap.Error(err))
		return domain.Answer{Unavailable: true, Text: msgCompleteFailed}, nil
	}

	return domain.Answer{
		Text:    completion.Text,
		Sources: sources,
	}, nil
}

// degraded maps a retrieval failure to its user-facing message.
func degraded(err error) domain.Answer {
	msg := msgRetrieveFailed
	if errors.Is(err, domain.ErrEmbeddingProviderError) {
		msg = msgEmbedFailed
	}
	return domain.Answer{Unavailable: true, Text: msg}
}
