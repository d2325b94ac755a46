package driven

import (
	"context"

	"github.com/quill-labs/quill-cli/internal/core/domain"
)

// ArticleStore persists articles durably.
// Writes are upserts keyed by article ID, so a refetched article
// overwrites its previous record instead of duplicating it.
type ArticleStore interface {
	// SaveArticle stores or updates an article.
	SaveArticle(ctx context.Context, article domain.Article) error

	// GetArticle retrieves an article by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetArticle(ctx context.Context, id string) (*domain.Article, error)

	// HasArticle reports whether an article with the ID exists.
	HasArticle(ctx context.Context, id string) (bool, error)

	// ListArticles returns every stored article.
	ListArticles(ctx context.Context) ([]domain.Article, error)
}

// SnapshotStore persists per-source fetch state.
type SnapshotStore interface {
	// SaveSnapshot atomically replaces the member-ID list and last-fetch
	// time for a cache key.
	SaveSnapshot(ctx context.Context, snapshot domain.Snapshot) error

	// GetSnapshot retrieves the snapshot for a cache key.
	// Returns domain.ErrNotFound if the source has never been fetched.
	GetSnapshot(ctx context.Context, cacheKey string) (*domain.Snapshot, error)
}
