package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/quill-labs/quill-cli/internal/core/domain"
	"github.com/quill-labs/quill-cli/internal/core/ports/driven"
	"github.com/quill-labs/quill-cli/internal/core/ports/driving"
	"github.com/quill-labs/quill-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService ranks stored articles by cosine similarity against cached
// embeddings.
type SearchService struct {
	articles     driven.ArticleStore
	embeddings   driven.EmbeddingStore
	embedder     driven.EmbeddingService
	syncService  driving.SyncService
	defaultLimit int
}

// NewSearchService creates a search service. defaultLimit is used when a
// query does not specify its own limit (falls back to 10 when zero).
func NewSearchService(
	articles driven.ArticleStore,
	embeddings driven.EmbeddingStore,
	embedder driven.EmbeddingService,
	defaultLimit int,
) *SearchService {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &SearchService{
		articles:     articles,
		embeddings:   embeddings,
		embedder:     embedder,
		defaultLimit: defaultLimit,
	}
}

// SetSyncService wires the sync engine so every search runs a freshness
// check first. Optional: without it, search ranks whatever is stored.
func (s *SearchService) SetSyncService(sync driving.SyncService) {
	s.syncService = sync
}

// Search computes the query embedding and scores every stored article
// against it. Articles missing a cached embedding are backfilled on the
// spot, so search never fails on a cache miss. Ties keep store iteration
// order; results are best-first and never exceed the limit.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	if s.syncService != nil {
		if _, err := s.syncService.EnsureFresh(ctx, false); err != nil {
			return nil, fmt.Errorf("ensure fresh: %w", err)
		}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	articles, err := s.articles.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	if len(articles) == 0 {
		// A valid "no corpus" state, not an error.
		logger.Debug("Empty corpus")
		return []domain.SearchResult{}, nil
	}

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	queryEmbedding, err := s.embedder.Embed(ctx, ClampEmbedInput(query))
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(queryEmbedding))

	results := make([]domain.SearchResult, 0, len(articles))
	for _, article := range articles {
		embedding, err := s.articleEmbedding(ctx, article)
		if err != nil {
			return nil, err
		}
		results = append(results, domain.SearchResult{
			Article: article,
			Score:   cosineSimilarity(queryEmbedding, embedding),
		})
	}

	// Stable: equal scores keep store iteration order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}

	logger.Info("Search returned %d results", len(results))
	return results, nil
}

// articleEmbedding returns the cached embedding for an article,
// computing and caching it on a miss.
func (s *SearchService) articleEmbedding(ctx context.Context, article domain.Article) ([]float32, error) {
	embedding, err := s.embeddings.GetEmbedding(ctx, article.ID)
	if err == nil {
		return embedding, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get embedding %s: %w", article.ID, err)
	}

	logger.Debug("Backfilling embedding for %s", article.ID)
	embedding, err = s.embedder.Embed(ctx, EmbeddingText(article))
	if err != nil {
		return nil, fmt.Errorf("embed article %s: %w", article.ID, err)
	}
	if err := s.embeddings.PutEmbedding(ctx, article.ID, embedding); err != nil {
		return nil, fmt.Errorf("store embedding %s: %w", article.ID, err)
	}
	return embedding, nil
}

// cosineSimilarity computes the cosine similarity of two vectors.
// Mismatched lengths or a zero-norm vector score 0 rather than erroring.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
