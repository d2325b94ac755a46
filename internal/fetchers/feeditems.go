package fetchers

import (
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/quill-labs/quill-cli/internal/core/domain"
	"github.com/quill-labs/quill-cli/internal/normalise"
)

// ArticlesFromFeed converts parsed feed items into domain articles.
// At most maxArticles items are taken in feed order; a non-positive
// limit means no cap. Feed HTML is stripped to plain text.
func ArticlesFromFeed(platform domain.Platform, source domain.Source, feed *gofeed.Feed, maxArticles int) []domain.Article {
	sourceName := source.Name
	if sourceName == "" {
		sourceName = feed.Title
	}

	items := feed.Items
	if maxArticles > 0 && len(items) > maxArticles {
		items = items[:maxArticles]
	}

	articles := make([]domain.Article, 0, len(items))
	for _, item := range items {
		if item == nil || item.Link == "" {
			continue
		}

		// Substack and Medium both put the full post in Content and a
		// short summary in Description.
		body := item.Content
		subtitle := ""
		if body == "" {
			body = item.Description
		} else {
			subtitle = normalise.Text(item.Description)
		}

		var date *time.Time
		switch {
		case item.PublishedParsed != nil:
			date = item.PublishedParsed
		case item.UpdatedParsed != nil:
			date = item.UpdatedParsed
		}

		articles = append(articles, domain.NewArticle(
			platform,
			sourceName,
			item.Title,
			subtitle,
			item.Link,
			normalise.StripHTML(body),
			date,
		))
	}
	return articles
}
