package driving

import (
	"context"

	"github.com/quill-labs/quill-cli/internal/core/domain"
)

// ArticleService provides read access to stored articles.
type ArticleService interface {
	// List returns every stored article.
	List(ctx context.Context) ([]domain.Article, error)

	// Get retrieves an article by ID.
	// Returns domain.ErrNotFound for unknown IDs.
	Get(ctx context.Context, id string) (*domain.Article, error)
}
