package domain

// SearchOptions configures a similarity query.
type SearchOptions struct {
	// Limit is the maximum number of results. Zero means "use the
	// configured default".
	Limit int
}

// SearchResult is a single ranked hit.
type SearchResult struct {
	// Article is the matched article.
	Article Article

	// Score is the cosine similarity between the query embedding and the
	// article embedding, in [-1, 1].
	Score float64
}

// RefreshSummary describes the outcome of a forced refresh.
type RefreshSummary struct {
	// TotalArticles is the number of articles across all sources after
	// the refresh.
	TotalArticles int

	// Sources lists the display names of the refreshed sources.
	Sources []string
}
