// Package substack fetches posts from a Substack publication's RSS feed.
package substack

import (
	"context"
	"fmt"
	"strings"

	"github.com/quill-labs/quill-cli/internal/core/domain"
	"github.com/quill-labs/quill-cli/internal/core/ports/driven"
	"github.com/quill-labs/quill-cli/internal/fetchers"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves articles from Substack publications.
type Fetcher struct {
	client *fetchers.FeedClient
}

// New creates a Substack fetcher backed by the shared feed client.
func New(client *fetchers.FeedClient) *Fetcher {
	return &Fetcher{client: client}
}

// Platform returns the platform this fetcher serves.
func (f *Fetcher) Platform() domain.Platform {
	return domain.PlatformSubstack
}

// FeedURL derives the RSS feed URL for a publication URL.
// Substack serves the feed at <publication>/feed.
func FeedURL(publicationURL string) string {
	return strings.TrimSuffix(publicationURL, "/") + "/feed"
}

// Fetch retrieves up to maxArticles recent posts from the publication.
func (f *Fetcher) Fetch(ctx context.Context, source domain.Source, maxArticles int) ([]domain.Article, error) {
	feed, err := f.client.Fetch(ctx, FeedURL(source.URL))
	if err != nil {
		return nil, fmt.Errorf("fetching substack %s: %w", source.DisplayName(), err)
	}
	return fetchers.ArticlesFromFeed(domain.PlatformSubstack, source, feed, maxArticles), nil
}
