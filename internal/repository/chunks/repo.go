// Package chunks persists document chunks and their vectors in the search index.
package chunks

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/docqa/internal/db"
	"github.com/kailas-cloud/docqa/internal/domain"
)

// store is the consumer interface for chunk storage (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	Del(ctx context.Context, key string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	SearchKeys(ctx context.Context, index, query string, limit int) ([]string, error)
}

// Repo implements the vector store port for ingestion and retrieval.
type Repo struct {
	store store
}

// New creates a chunk repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// IndexSettings holds the parameters of the chunk vector index.
type IndexSettings struct {
	Dimensions      int
	HNSWM           int
	HNSWEFConstruct int
}

const (
	indexName = domain.KeyPrefix + "chunks:idx"
	keyPrefix = domain.KeyPrefix + "chunks:"
	fieldText = "__content"
	fieldVec  = "__vector"
	fieldFile = "filename"
	// vecAlias is the queryable attribute name of the vector field
	// ("@vector" in KNN queries). The distance field FT.SEARCH returns is
	// derived from it: "__" + vecAlias + "_score".
	vecAlias   = "vector"
	fieldScore = "__" + vecAlias + "_score"
)

// maxDocChunks bounds the key listing when a document is replaced.
const maxDocChunks = 10000

// EnsureIndex creates the chunk index if it does not exist yet.
// Idempotent: safe to call on every startup.
func (r *Repo) EnsureIndex(ctx context.Context, s IndexSettings) error {
	exists, err := r.store.IndexExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index %s: %w: %w", indexName, domain.ErrVectorStore, err)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(indexName).
		Prefix(keyPrefix).
		Tag(fieldFile).
		VectorHNSW(fieldVec, s.Dimensions, db.DistanceCosine, s.HNSWM, s.HNSWEFConstruct).
		As(vecAlias).
		Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		// Lost the race against another instance, the index is there.
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w: %w", indexName, domain.ErrVectorStore, err)
	}
	return nil
}

// Upsert writes all records in one pipelined round-trip and returns the count.
func (r *Repo) Upsert(ctx context.Context, records []domain.IndexRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	items := make([]db.HashSetItem, len(records))
	for i, rec := range records {
		items[i] = db.HashSetItem{
			Key: keyPrefix + rec.ID,
			Fields: map[string]string{
				fieldText: rec.Content,
				fieldFile: rec.Filename,
				fieldVec:  vectorToBytes(rec.Vector),
			},
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return 0, fmt.Errorf("upsert %d chunks: %w: %w", len(records), domain.ErrVectorStore, err)
	}
	return len(records), nil
}

// Query runs a KNN search and returns matches ordered by similarity.
// Entries missing content or filename metadata are dropped: a source
// without attribution must never reach the prompt.
func (r *Repo) Query(ctx context.Context, vector []float32, topK int) ([]domain.Match, error) {
	q := &db.KNNQuery{
		IndexName:    indexName,
		Vector:       vector,
		K:            topK,
		ReturnFields: []string{fieldText, fieldFile, fieldScore},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w: %w", domain.ErrVectorStore, err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	matches := make([]domain.Match, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		content := entry.Fields[fieldText]
		filename := entry.Fields[fieldFile]
		if content == "" || filename == "" {
			continue
		}
		matches = append(matches, domain.Match{
			Content:  content,
			Filename: filename,
			Score:    entry.Score,
		})
	}
	return matches, nil
}

// DeleteByFilename removes every chunk of a document and returns the
// number of deleted records. Missing documents delete zero records, nil
// error.
func (r *Repo) DeleteByFilename(ctx context.Context, filename string) (int, error) {
	query := "@" + fieldFile + ":{" + tagEscaper.Replace(filename) + "}"

	keys, err := r.store.SearchKeys(ctx, indexName, query, maxDocChunks)
	if err != nil {
		return 0, fmt.Errorf("find chunks of %s: %w: %w", filename, domain.ErrVectorStore, err)
	}

	for _, key := range keys {
		if err := r.store.Del(ctx, key); err != nil {
			return 0, fmt.Errorf("delete chunk %s: %w: %w", key, domain.ErrVectorStore, err)
		}
	}
	return len(keys), nil
}

// tagEscaper escapes TAG query syntax characters in a tag value.
var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)

// Count returns the number of indexed chunks.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, indexName, "*")
	if err != nil {
		return 0, fmt.Errorf("count chunks: %w: %w", domain.ErrVectorStore, err)
	}
	return n, nil
}

// vectorToBytes serializes []float32 to the binary form the index expects.
func vectorToBytes(v []float32) string {
	b := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(f))
	}
	return string(b)
}
