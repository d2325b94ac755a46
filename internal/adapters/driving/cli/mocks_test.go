package cli

import (
	"context"

	"github.com/quill-labs/quill-cli/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results  []domain.SearchResult
	lastOpts domain.SearchOptions
	err      error
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

// mockSyncService is a mock implementation of driving.SyncService.
type mockSyncService struct {
	summary *domain.RefreshSummary
	err     error
}

func (m *mockSyncService) EnsureFresh(_ context.Context, _ bool) (map[string][]domain.Article, error) {
	return map[string][]domain.Article{}, m.err
}

func (m *mockSyncService) Refresh(_ context.Context) (*domain.RefreshSummary, error) {
	return m.summary, m.err
}

// mockArticleService is a mock implementation of driving.ArticleService.
type mockArticleService struct {
	articles []domain.Article
	article  *domain.Article
	err      error
}

func (m *mockArticleService) List(_ context.Context) ([]domain.Article, error) {
	return m.articles, m.err
}

func (m *mockArticleService) Get(_ context.Context, _ string) (*domain.Article, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.article, nil
}

// setupTestServices injects mock services and returns a cleanup func.
func setupTestServices() func() {
	searchService = &mockSearchService{
		results: []domain.SearchResult{
			{
				Article: domain.Article{
					ID:         "abc123",
					Title:      "Test Article",
					SourceName: "Letters",
					URL:        "https://letters.example/p/test",
				},
				Score: 0.92,
			},
		},
	}
	syncService = &mockSyncService{
		summary: &domain.RefreshSummary{
			TotalArticles: 3,
			Sources:       []string{"Letters"},
		},
	}
	articleService = &mockArticleService{
		articles: []domain.Article{
			{ID: "abc123", Title: "Test Article", SourceName: "Letters", WordCount: 100},
		},
		article: &domain.Article{
			ID:         "abc123",
			Title:      "Test Article",
			SourceName: "Letters",
			URL:        "https://letters.example/p/test",
			Content:    "The article body.",
			WordCount:  3,
		},
	}

	return func() {
		searchService = nil
		syncService = nil
		articleService = nil
	}
}
