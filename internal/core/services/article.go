package services

import (
	"context"
	"fmt"

	"github.com/quill-labs/quill-cli/internal/core/domain"
	"github.com/quill-labs/quill-cli/internal/core/ports/driven"
	"github.com/quill-labs/quill-cli/internal/core/ports/driving"
)

// Ensure ArticleService implements the interface.
var _ driving.ArticleService = (*ArticleService)(nil)

// ArticleService provides read access to stored articles.
type ArticleService struct {
	articles driven.ArticleStore
}

// NewArticleService creates an article service.
func NewArticleService(articles driven.ArticleStore) *ArticleService {
	return &ArticleService{articles: articles}
}

// List returns every stored article.
func (s *ArticleService) List(ctx context.Context) ([]domain.Article, error) {
	articles, err := s.articles.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// Get retrieves an article by ID. Unknown IDs yield domain.ErrNotFound.
func (s *ArticleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	article, err := s.articles.GetArticle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article %s: %w", id, err)
	}
	return article, nil
}
