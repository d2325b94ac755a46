package driving

import (
	"context"

	"github.com/quill-labs/quill-cli/internal/core/domain"
)

// SyncService keeps the stored corpus fresh.
type SyncService interface {
	// EnsureFresh brings every configured source up to date and returns
	// the current article list per source display name. When force is
	// false, sources inside their TTL are served from the cached
	// snapshot without touching the network. A source whose fetch fails
	// degrades to its last-known snapshot; it never fails the call.
	EnsureFresh(ctx context.Context, force bool) (map[string][]domain.Article, error)

	// Refresh forces a refetch of all sources and summarises the result.
	Refresh(ctx context.Context) (*domain.RefreshSummary, error)
}
