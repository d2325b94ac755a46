// Package medium fetches posts from a Medium author's RSS feed.
package medium

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/quill-labs/quill-cli/internal/core/domain"
	"github.com/quill-labs/quill-cli/internal/core/ports/driven"
	"github.com/quill-labs/quill-cli/internal/fetchers"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves articles from Medium authors.
type Fetcher struct {
	client *fetchers.FeedClient
}

// New creates a Medium fetcher backed by the shared feed client.
func New(client *fetchers.FeedClient) *Fetcher {
	return &Fetcher{client: client}
}

// Platform returns the platform this fetcher serves.
func (f *Fetcher) Platform() domain.Platform {
	return domain.PlatformMedium
}

// FeedURL derives the RSS feed URL for a Medium profile URL. Both
// medium.com/@user and user.medium.com profile forms are supported.
func FeedURL(profileURL string) (string, error) {
	u, err := url.Parse(profileURL)
	if err != nil {
		return "", fmt.Errorf("%w: parsing medium url %q: %v", domain.ErrInvalidInput, profileURL, err)
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == "medium.com" || host == "www.medium.com":
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(segments) > 0 && strings.HasPrefix(segments[0], "@") {
			return "https://medium.com/feed/" + segments[0], nil
		}
	case strings.HasSuffix(host, ".medium.com"):
		user := strings.TrimSuffix(host, ".medium.com")
		if user != "" {
			return "https://medium.com/feed/@" + user, nil
		}
	}

	return "", fmt.Errorf("%w: cannot derive medium username from %q", domain.ErrInvalidInput, profileURL)
}

// Fetch retrieves up to maxArticles recent posts from the author.
func (f *Fetcher) Fetch(ctx context.Context, source domain.Source, maxArticles int) ([]domain.Article, error) {
	feedURL, err := FeedURL(source.URL)
	if err != nil {
		return nil, err
	}
	feed, err := f.client.Fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetching medium %s: %w", source.DisplayName(), err)
	}
	return fetchers.ArticlesFromFeed(domain.PlatformMedium, source, feed, maxArticles), nil
}
