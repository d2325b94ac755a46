package driving

import (
	"context"

	"github.com/quill-labs/quill-cli/internal/core/domain"
)

// SearchService answers semantic-similarity queries over the stored corpus.
type SearchService interface {
	// Search ranks all stored articles by cosine similarity to the query
	// and returns the top results, best first. An empty corpus yields an
	// empty slice, not an error.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
