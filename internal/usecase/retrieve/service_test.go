package retrieve

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/docqa/internal/domain"
)

type mockRepo struct {
	queryFn func(ctx context.Context, vector []float32, topK int) ([]domain.Match, error)
}

func (m *mockRepo) Query(ctx context.Context, vector []float32, topK int) ([]domain.Match, error) {
	if m.queryFn != nil {
		return m.queryFn(ctx, vector, topK)
	}
	return nil, nil
}

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return m.result, m.err
}

func TestRetrieve_HappyPath(t *testing.T) {
	mr := &mockRepo{}
	me := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}}
	svc := New(mr, me, 16)

	mr.queryFn = func(_ context.Context, vector []float32, topK int) ([]domain.Match, error) {
		if len(vector) != 2 {
			t.Errorf("unexpected vector: %v", vector)
		}
		if topK != 16 {
			t.Errorf("topK = %d, expected 16", topK)
		}
		return []domain.Match{
			{Content: "alpha", Filename: "a.pdf", Score: 0.9},
			{Content: "beta", Filename: "b.pdf", Score: 0.7},
		}, nil
	}

	sources, err := svc.Retrieve(context.Background(), "what is alpha?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if sources[0].Filename != "a.pdf" || sources[0].Content != "alpha" {
		t.Errorf("unexpected first source: %+v", sources[0])
	}
}

func TestRetrieve_EmptyQuestion(t *testing.T) {
	svc := New(&mockRepo{}, &mockEmbedder{}, 16)

	_, err := svc.Retrieve(context.Background(), "   ")
	if !errors.Is(err, domain.ErrInvalidQuestion) {
		t.Errorf("expected ErrInvalidQuestion, got %v", err)
	}
}

func TestRetrieve_EmbedError(t *testing.T) {
	me := &mockEmbedder{err: domain.ErrEmbeddingProviderError}
	svc := New(&mockRepo{}, me, 16)

	_, err := svc.Retrieve(context.Background(), "question")
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Errorf("expected ErrEmbeddingProviderError, got %v", err)
	}
}

func TestRetrieve_QueryError(t *testing.T) {
	mr := &mockRepo{queryFn: func(context.Context, []float32, int) ([]domain.Match, error) {
		return nil, domain.ErrVectorStore
	}}
	me := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	svc := New(mr, me, 16)

	_, err := svc.Retrieve(context.Background(), "question")
	if !errors.Is(err, domain.ErrVectorStore) {
		t.Errorf("expected ErrVectorStore, got %v", err)
	}
}

func TestRetrieve_NoMatches(t *testing.T) {
	me := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	svc := New(&mockRepo{}, me, 16)

	sources, err := svc.Retrieve(context.Background(), "question")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sources) != 0 {
		t.Errorf("expected no sources, got %v", sources)
	}
}
