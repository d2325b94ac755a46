// Package lazy defers construction of an embedding service until first use.
// Building a provider can involve network probes or credential lookups, so
// commands that never embed anything should not pay that cost.
package lazy

import (
	"context"
	"fmt"
	"sync"

	"github.com/quill-labs/quill-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Builder constructs the underlying embedding service. It is called at
// most once; its result (or error) is sticky for the lifetime of the
// wrapper.
type Builder func() (driven.EmbeddingService, error)

// EmbeddingService wraps another EmbeddingService, constructing it on
// first use.
type EmbeddingService struct {
	build Builder

	once    sync.Once
	service driven.EmbeddingService
	err     error

	// FallbackDimensions is reported by Dimensions before the
	// underlying service is built.
	FallbackDimensions int

	// FallbackModelName is reported by ModelName before the underlying
	// service is built.
	FallbackModelName string
}

// NewEmbeddingService creates a lazily-initialized embedding service.
func NewEmbeddingService(build Builder) *EmbeddingService {
	return &EmbeddingService{build: build}
}

// get initializes the underlying service on first call.
func (s *EmbeddingService) get() (driven.EmbeddingService, error) {
	s.once.Do(func() {
		s.service, s.err = s.build()
		if s.err == nil && s.service == nil {
			s.err = fmt.Errorf("embedding builder returned nil service")
		}
	})
	return s.service, s.err
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	svc, err := s.get()
	if err != nil {
		return nil, err
	}
	return svc.Embed(ctx, text)
}

// EmbedBatch generates embeddings for multiple texts.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	svc, err := s.get()
	if err != nil {
		return nil, err
	}
	return svc.EmbedBatch(ctx, texts)
}

// Dimensions returns the embedding vector size. Before initialization
// it returns FallbackDimensions.
func (s *EmbeddingService) Dimensions() int {
	if s.service != nil {
		return s.service.Dimensions()
	}
	return s.FallbackDimensions
}

// ModelName returns the name of the embedding model being used. Before
// initialization it returns FallbackModelName.
func (s *EmbeddingService) ModelName() string {
	if s.service != nil {
		return s.service.ModelName()
	}
	return s.FallbackModelName
}

// Ping initializes the underlying service and checks its reachability.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	svc, err := s.get()
	if err != nil {
		return err
	}
	return svc.Ping(ctx)
}

// Close releases the underlying service if it was ever built.
func (s *EmbeddingService) Close() error {
	if s.service != nil {
		return s.service.Close()
	}
	return nil
}
