package mcp

import (
	"github.com/quill-labs/quill-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search ranks articles against a query.
	Search driving.SearchService

	// Sync refreshes content from the configured platforms.
	Sync driving.SyncService

	// Article provides read access to stored articles.
	Article driving.ArticleService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Sync and Article are optional; their handlers degrade gracefully
	return nil
}
