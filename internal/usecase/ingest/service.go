// Package ingest splits documents into chunks, embeds them, and indexes the result.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kailas-cloud/docqa/internal/chunker"
	"github.com/kailas-cloud/docqa/internal/domain"
)

// Service handles document ingestion.
type Service struct {
	repo     Repository
	embed    Embedder
	splitter *chunker.Splitter
}

// New creates an ingestion service.
func New(repo Repository, embed Embedder, splitter *chunker.Splitter) *Service {
	return &Service{repo: repo, embed: embed, splitter: splitter}
}

// Ingest chunks the document text, embeds every chunk, and writes all records
// in a single batch. Re-ingesting a filename replaces its previous chunks:
// the old records are deleted only after every new chunk embedded, so an
// embedding failure leaves the existing document intact. Returns the number
// of indexed chunks. Empty text is a no-op and deletes nothing.
func (s *Service) Ingest(ctx context.Context, filename, text string) (int, error) {
	if strings.TrimSpace(filename) == "" {
		return 0, fmt.Errorf("filename is required: %w", domain.ErrInvalidDocument)
	}

	var records []domain.IndexRecord
	i := 0
	for chunk := range s.splitter.Split(text) {
		result, err := s.embed.Embed(ctx, chunk)
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d of %s: %w", i, filename, err)
		}
		records = append(records, domain.IndexRecord{
			ID:       uuid.NewString(),
			Vector:   result.Embedding,
			Content:  chunk,
			Filename: filename,
		})
		i++
	}

	if len(records) == 0 {
		return 0, nil
	}

	if _, err := s.repo.DeleteByFilename(ctx, filename); err != nil {
		return 0, fmt.Errorf("replace %s: %w", filename, err)
	}

	n, err := s.repo.Upsert(ctx, records)
	if err != nil {
		return 0, fmt.Errorf("index %s: %w", filename, err)
	}
	return n, nil
}
