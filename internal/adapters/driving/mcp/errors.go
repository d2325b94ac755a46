// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants search and read the synced writing archive.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
