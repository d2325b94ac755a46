package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-labs/quill-cli/internal/adapters/driven/storage/memory"
	"github.com/quill-labs/quill-cli/internal/core/domain"
)

type searchFixture struct {
	service  *SearchService
	store    *memory.ArticleStore
	vectors  *memory.EmbeddingStore
	embedder *mockEmbedder
}

func newSearchFixture(t *testing.T) *searchFixture {
	t.Helper()
	f := &searchFixture{
		store:    memory.NewArticleStore(),
		vectors:  memory.NewEmbeddingStore(),
		embedder: newMockEmbedder(),
	}
	f.service = NewSearchService(f.store, f.vectors, f.embedder, 10)
	return f
}

// addArticle stores an article and primes its embedding.
func (f *searchFixture) addArticle(t *testing.T, title string, embedding []float32) domain.Article {
	t.Helper()
	article := domain.NewArticle(domain.PlatformSubstack, "Letters", title, "",
		"https://letters.example/p/"+title, "content of "+title, nil)
	require.NoError(t, f.store.SaveArticle(context.Background(), article))
	require.NoError(t, f.vectors.PutEmbedding(context.Background(), article.ID, embedding))
	return article
}

func (f *searchFixture) primeQuery(query string, embedding []float32) {
	f.embedder.vectors[query] = embedding
}

func TestSearch_RanksByCosineSimilarity(t *testing.T) {
	f := newSearchFixture(t)
	f.primeQuery("query", []float32{1, 0})
	best := f.addArticle(t, "best", []float32{1, 0})
	mid := f.addArticle(t, "mid", []float32{1, 1})
	worst := f.addArticle(t, "worst", []float32{0, 1})

	results, err := f.service.Search(context.Background(), "query", domain.SearchOptions{})
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, best.ID, results[0].Article.ID)
	assert.Equal(t, mid.ID, results[1].Article.ID)
	assert.Equal(t, worst.ID, results[2].Article.ID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Greater(t, results[1].Score, results[2].Score)
}

func TestSearch_ScoresMonotoneDescending(t *testing.T) {
	f := newSearchFixture(t)
	f.primeQuery("q", []float32{1, 0})
	f.addArticle(t, "a", []float32{1, 0.2})
	f.addArticle(t, "b", []float32{0.5, 1})
	f.addArticle(t, "c", []float32{1, 0})

	results, err := f.service.Search(context.Background(), "q", domain.SearchOptions{})
	require.NoError(t, err)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestSearch_LimitApplied(t *testing.T) {
	f := newSearchFixture(t)
	f.primeQuery("q", []float32{1, 0})
	for _, title := range []string{"a", "b", "c", "d"} {
		f.addArticle(t, title, []float32{1, 0})
	}

	results, err := f.service.Search(context.Background(), "q", domain.SearchOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearch_DefaultLimitWhenUnset(t *testing.T) {
	f := newSearchFixture(t)
	f.service = NewSearchService(f.store, f.vectors, f.embedder, 3)
	f.primeQuery("q", []float32{1, 0})
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		f.addArticle(t, title, []float32{1, 0})
	}

	results, err := f.service.Search(context.Background(), "q", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSearch_EmptyQueryReturnsNoResults(t *testing.T) {
	f := newSearchFixture(t)
	f.addArticle(t, "a", []float32{1, 0})

	for _, query := range []string{"", "   ", "\t\n"} {
		results, err := f.service.Search(context.Background(), query, domain.SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, results)
	}
	assert.Equal(t, 0, f.embedder.embedCalls)
}

func TestSearch_EmptyCorpusReturnsEmpty(t *testing.T) {
	f := newSearchFixture(t)

	results, err := f.service.Search(context.Background(), "anything", domain.SearchOptions{})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearch_NilEmbedder(t *testing.T) {
	f := newSearchFixture(t)
	f.addArticle(t, "a", []float32{1, 0})
	f.service = NewSearchService(f.store, f.vectors, nil, 10)

	_, err := f.service.Search(context.Background(), "q", domain.SearchOptions{})
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestSearch_BackfillsMissingEmbedding(t *testing.T) {
	f := newSearchFixture(t)
	f.primeQuery("q", []float32{1, 0})
	ctx := context.Background()

	// Stored article with no cached embedding.
	article := domain.NewArticle(domain.PlatformSubstack, "Letters", "uncached", "",
		"https://letters.example/p/uncached", "body", nil)
	require.NoError(t, f.store.SaveArticle(ctx, article))

	results, err := f.service.Search(ctx, "q", domain.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	ok, err := f.vectors.HasEmbedding(ctx, article.ID)
	require.NoError(t, err)
	assert.True(t, ok, "embedding must be cached after backfill")
}

func TestSearch_RunsFreshnessCheckWhenWired(t *testing.T) {
	f := newSearchFixture(t)
	syncMock := &mockSyncService{}
	f.service.SetSyncService(syncMock)

	_, err := f.service.Search(context.Background(), "q", domain.SearchOptions{})
	require.NoError(t, err)

	require.Equal(t, 1, syncMock.calls)
	assert.False(t, syncMock.forced[0], "search freshness check must not force")
}

func TestSearch_FreshnessFailurePropagates(t *testing.T) {
	f := newSearchFixture(t)
	syncMock := &mockSyncService{err: errors.New("sync broken")}
	f.service.SetSyncService(syncMock)

	_, err := f.service.Search(context.Background(), "q", domain.SearchOptions{})
	assert.Error(t, err)
}

func TestSearch_Deterministic(t *testing.T) {
	f := newSearchFixture(t)
	f.primeQuery("q", []float32{1, 0})
	for _, title := range []string{"a", "b", "c"} {
		f.addArticle(t, title, []float32{1, 0.5})
	}

	first, err := f.service.Search(context.Background(), "q", domain.SearchOptions{})
	require.NoError(t, err)
	second, err := f.service.Search(context.Background(), "q", domain.SearchOptions{})
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Article.ID, second[i].Article.ID)
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 0}, b: []float32{1, 0}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "mismatched lengths", a: []float32{1, 0}, b: []float32{1}, want: 0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 0}, want: 0},
		{name: "empty", a: nil, b: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosineSimilarity_ScaleInvariant(t *testing.T) {
	a := []float32{0.3, 0.7, 0.1}
	b := []float32{0.6, 1.4, 0.2}

	assert.InDelta(t, 1.0, cosineSimilarity(a, b), 1e-6)
}
