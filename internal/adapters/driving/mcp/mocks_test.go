package mcp

import (
	"context"

	"github.com/quill-labs/quill-cli/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results   []domain.SearchResult
	lastQuery string
	lastOpts  domain.SearchOptions
	err       error
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastQuery = query
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
	return m.article, m.err
}
