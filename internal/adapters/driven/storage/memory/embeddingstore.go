package memory

import (
	"context"
	"sync"

	"github.com/quill-labs/quill-cli/internal/core/domain"
	"github.com/quill-labs/quill-cli/internal/core/ports/driven"
)

// Ensure EmbeddingStore implements the interface.
var _ driven.EmbeddingStore = (*EmbeddingStore)(nil)

// EmbeddingStore is an in-memory implementation of driven.EmbeddingStore.
type EmbeddingStore struct {
	mu      sync.RWMutex
	vectors map[string][]float32
}

// NewEmbeddingStore creates a new in-memory embedding store.
func NewEmbeddingStore() *EmbeddingStore {
	return &EmbeddingStore{
		vectors: make(map[string][]float32),
	}
}

// PutEmbedding stores the embedding for an article.
func (s *EmbeddingStore) PutEmbedding(_ context.Context, articleID string, embedding []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	vec := make([]float32, len(embedding))
	copy(vec, embedding)
	s.vectors[articleID] = vec
	return nil
}

// GetEmbedding retrieves the cached embedding for an article.
func (s *EmbeddingStore) GetEmbedding(_ context.Context, articleID string) ([]float32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vec, ok := s.vectors[articleID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return vec, nil
}

// HasEmbedding reports whether an entry exists for the article.
func (s *EmbeddingStore) HasEmbedding(_ context.Context, articleID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.vectors[articleID]
	return ok, nil
}
