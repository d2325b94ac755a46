package services

import (
	"context"
	"sync"

	"github.com/quill-labs/quill-cli/internal/core/domain"
	"github.com/quill-labs/quill-cli/internal/core/ports/driven"
)

// mockFetcher serves canned articles for one platform and counts calls.
type mockFetcher struct {
	platform domain.Platform

	mu       sync.Mutex
	calls    int
	articles map[string][]domain.Article // keyed by source URL
	errs     map[string]error            // keyed by source URL
}

var _ driven.Fetcher = (*mockFetcher)(nil)

func newMockFetcher(platform domain.Platform) *mockFetcher {
	return &mockFetcher{
		platform: platform,
		articles: make(map[string][]domain.Article),
		errs:     make(map[string]error),
	}
}

func (f *mockFetcher) Platform() domain.Platform { return f.platform }

func (f *mockFetcher) Fetch(_ context.Context, source domain.Source, maxArticles int) ([]domain.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err, ok := f.errs[source.URL]; ok {
		return nil, err
	}
	articles := f.articles[source.URL]
	if maxArticles > 0 && len(articles) > maxArticles {
		articles = articles[:maxArticles]
	}
	return articles, nil
}

func (f *mockFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// mockRegistry routes platforms to mock fetchers.
type mockRegistry struct {
	fetchers map[domain.Platform]driven.Fetcher
}

var _ driven.FetcherRegistry = (*mockRegistry)(nil)

func newMockRegistry(fetchers ...driven.Fetcher) *mockRegistry {
	r := &mockRegistry{fetchers: make(map[domain.Platform]driven.Fetcher)}
	for _, f := range fetchers {
		r.fetchers[f.Platform()] = f
	}
	return r
}

func (r *mockRegistry) Fetcher(platform domain.Platform) (driven.Fetcher, error) {
	f, ok := r.fetchers[platform]
	if !ok {
		return nil, domain.ErrUnsupportedPlatform
	}
	return f, nil
}

func (r *mockRegistry) Register(f driven.Fetcher) {
	r.fetchers[f.Platform()] = f
}

func (r *mockRegistry) Platforms() []domain.Platform {
	platforms := make([]domain.Platform, 0, len(r.fetchers))
	for p := range r.fetchers {
		platforms = append(platforms, p)
	}
	return platforms
}

// mockEmbedder returns deterministic vectors derived from text length,
// or fixed vectors per input text when primed.
type mockEmbedder struct {
	mu         sync.Mutex
	embedCalls int
	batchCalls int
	vectors    map[string][]float32
	err        error
}

var _ driven.EmbeddingService = (*mockEmbedder)(nil)

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{vectors: make(map[string][]float32)}
}

func (m *mockEmbedder) vectorFor(text string) []float32 {
	if vec, ok := m.vectors[text]; ok {
		return vec
	}
	// Deterministic fallback keyed off length.
	return []float32{float32(len(text)), 1}
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embedCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batchCalls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = m.vectorFor(text)
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int              { return 2 }
func (m *mockEmbedder) ModelName() string            { return "mock" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockSyncService records EnsureFresh calls for search freshness tests.
type mockSyncService struct {
	calls  int
	forced []bool
	err    error
}

func (m *mockSyncService) EnsureFresh(_ context.Context, force bool) (map[string][]domain.Article, error) {
	m.calls++
	m.forced = append(m.forced, force)
	if m.err != nil {
		return nil, m.err
	}
	return map[string][]domain.Article{}, nil
}

func (m *mockSyncService) Refresh(_ context.Context) (*domain.RefreshSummary, error) {
	return &domain.RefreshSummary{}, nil
}
