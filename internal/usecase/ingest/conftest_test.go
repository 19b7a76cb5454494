package ingest

import (
	"context"
	"testing"

	"github.com/kailas-cloud/docqa/internal/chunker"
	"github.com/kailas-cloud/docqa/internal/domain"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	upsertFn    func(ctx context.Context, records []domain.IndexRecord) (int, error)
	deleteFn    func(ctx context.Context, filename string) (int, error)
	calls       int
	deleteCalls int
}

func (m *mockRepo) Upsert(ctx context.Context, records []domain.IndexRecord) (int, error) {
	m.calls++
	if m.upsertFn != nil {
		return m.upsertFn(ctx, records)
	}
	return len(records), nil
}

func (m *mockRepo) DeleteByFilename(ctx context.Context, filename string) (int, error) {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, filename)
	}
	return 0, nil
}

// mockEmbedder implements Embedder for tests.
type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
	calls   int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}

func newTestService(t *testing.T, maxChars, overlap int) (*Service, *mockRepo, *mockEmbedder) {
	t.Helper()
	splitter, err := chunker.New(chunker.Policy{MaxChars: maxChars, Overlap: overlap})
	if err != nil {
		t.Fatalf("chunker.New: %v", err)
	}
	mr := &mockRepo{}
	me := &mockEmbedder{}
	return New(mr, me, splitter), mr, me
}
