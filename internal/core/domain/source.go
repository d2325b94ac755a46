package domain

import "time"

// Source represents a configured publication to fetch articles from.
// Sources come from configuration and are read-only to the engine.
type Source struct {
	// Type identifies the publishing platform.
	Type Platform

	// URL is the publication endpoint (e.g., https://example.substack.com).
	URL string

	// Name is the human-readable label for this source.
	Name string
}

// CacheKey returns the key under which fetch state for this source is
// stored. It deliberately excludes Name, so two differently-named
// registrations of the same URL share fetch state.
func (s Source) CacheKey() string {
	return string(s.Type) + ":" + s.URL
}

// DisplayName returns the configured name, falling back to the URL.
func (s Source) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.URL
}

// Snapshot records the last successful fetch for a source cache key:
// when it happened and which articles it produced, in feed order.
// The sync engine is the sole writer; both fields are replaced together.
type Snapshot struct {
	// CacheKey links to the Source (or sources) this snapshot belongs to.
	CacheKey string

	// ArticleIDs is the ordered list of member article IDs.
	ArticleIDs []string

	// LastFetch is when the last successful fetch completed.
	LastFetch time.Time
}
