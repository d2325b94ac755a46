package driven

import (
	"context"

	"github.com/quill-labs/quill-cli/internal/core/domain"
)

// Fetcher retrieves articles from a publishing platform.
// Each platform (substack, medium) implements this interface.
// Implementations handle their own transport concerns: feed discovery,
// HTTP timeouts, rate limiting, and HTML-to-text normalisation. The sync
// engine treats any returned error, including a timeout, as a fetch
// failure and falls back to the cached snapshot.
type Fetcher interface {
	// Platform returns the platform this fetcher handles.
	Platform() domain.Platform

	// Fetch retrieves up to maxArticles articles for the source.
	// Returned articles are fully normalised and stamped with the
	// source's platform and display name.
	Fetch(ctx context.Context, source domain.Source, maxArticles int) ([]domain.Article, error)
}

// FetcherRegistry resolves a Fetcher for a source's platform.
type FetcherRegistry interface {
	// Fetcher returns the fetcher registered for the platform.
	// Returns domain.ErrUnsupportedPlatform if none is registered.
	Fetcher(platform domain.Platform) (Fetcher, error)

	// Register adds a fetcher for its platform, replacing any existing
	// registration.
	Register(f Fetcher)

	// Platforms returns all registered platforms.
	Platforms() []domain.Platform
}
