// Package retrieve finds the chunks most similar to a question.
package retrieve

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/docqa/internal/domain"
)

// Service handles similarity retrieval.
type Service struct {
	repo  Repository
	embed Embedder
	topK  int
}

// New creates a retrieval service.
func New(repo Repository, embed Embedder, topK int) *Service {
	return &Service{repo: repo, embed: embed, topK: topK}
}

// Retrieve embeds the question and returns the most similar chunks as
// sources, ordered by similarity.
func (s *Service) Retrieve(ctx context.Context, question string) ([]domain.Source, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question is required: %w", domain.ErrInvalidQuestion)
	}

	embResult, err := s.embed.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("vectorize question: %w", err)
	}

	matches, err := s.repo.Query(ctx, embResult.Embedding, s.topK)
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}

	sources := make([]domain.Source, 0, len(matches))
	for _, m := range matches {
		sources = append(sources, domain.Source{
			Content:  m.Content,
			Filename: m.Filename,
		})
	}
	return sources, nil
}
