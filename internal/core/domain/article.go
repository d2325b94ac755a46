package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Article represents a single published post after normalisation.
// It is the canonical representation stored and ranked by the engine.
type Article struct {
	// ID is the content-addressed identifier, derived from URL and title.
	// The same logical article always maps to the same ID across refetches.
	ID string

	// Platform identifies the publishing platform the article came from.
	Platform Platform

	// SourceName is the display name of the configured source.
	SourceName string

	// Title is the article title.
	Title string

	// Subtitle is the article subtitle, empty when the platform has none.
	Subtitle string

	// URL is the canonical public location of the article.
	URL string

	// Content is the plain text body after HTML stripping and
	// whitespace normalisation.
	Content string

	// Date is the publication date, nil when the feed omitted it or
	// it could not be parsed. Timezone-aware when present.
	Date *time.Time

	// WordCount is the number of whitespace-delimited tokens in Content.
	// Computed at construction and never mutated afterwards.
	WordCount int
}

// ArticleID derives the stable identifier for an article from its URL and
// title. The digest only needs determinism and uniform distribution, not
// cryptographic strength. Content and date do not participate, so an edited
// body keeps the same identity.
func ArticleID(url, title string) string {
	sum := sha256.Sum256([]byte(url + ":" + title))
	return hex.EncodeToString(sum[:16])
}

// NewArticle builds an Article from fetched fields. Title, subtitle and
// content are whitespace-normalised, the word count is derived from the
// normalised content, and the ID is computed from URL and title.
func NewArticle(platform Platform, sourceName, title, subtitle, url, content string, date *time.Time) Article {
	title = collapseWhitespace(title)
	subtitle = collapseWhitespace(subtitle)
	content = collapseWhitespace(content)

	return Article{
		ID:         ArticleID(url, title),
		Platform:   platform,
		SourceName: sourceName,
		Title:      title,
		Subtitle:   subtitle,
		URL:        url,
		Content:    content,
		Date:       date,
		WordCount:  len(strings.Fields(content)),
	}
}

// collapseWhitespace folds runs of whitespace (including newlines) into a
// single space and trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
