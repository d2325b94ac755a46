package driven

import "context"

// EmbeddingStore caches article embeddings keyed by article ID.
// An entry, once written, is never recomputed for the same ID.
type EmbeddingStore interface {
	// PutEmbedding stores the embedding for an article.
	PutEmbedding(ctx context.Context, articleID string, embedding []float32) error

	// GetEmbedding retrieves the cached embedding for an article.
	// Returns domain.ErrNotFound when no entry exists.
	GetEmbedding(ctx context.Context, articleID string) ([]float32, error)

	// HasEmbedding reports whether an entry exists for the article.
	HasEmbedding(ctx context.Context, articleID string) (bool, error)
}
