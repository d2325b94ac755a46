package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quill-labs/quill-cli/internal/core/domain"
)

// SearchInput is the input schema for the search_writing tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the topic or keywords to search your writing for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_writing tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`

	// TopHitPreview is an excerpt from the best-matching article: the
	// passage around the first occurrence of the query, or the opening of
	// the article when the query never appears verbatim.
	TopHitPreview string `json:"top_hit_preview,omitempty"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ArticleID   string  `json:"article_id"`
	Title       string  `json:"title"`
	Source      string  `json:"source"`
	URL         string  `json:"url"`
	Date        string  `json:"date,omitempty"`
	WordCount   int     `json:"word_count"`
	Score       float64 `json:"score"`
	ResourceURI string  `json:"resource_uri"`
}

// RefreshOutput is the output schema for the refresh_content tool.
type RefreshOutput struct {
	TotalArticles int      `json:"total_articles"`
	Sources       []string `json:"sources"`
	Message       string   `json:"message"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_writing",
		Description: "Search for specific topics or keywords in your writing",
	}, s.handleSearchWriting)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "refresh_content",
		Description: "Force refresh all content from configured platforms",
	}, s.handleRefreshContent)
}

// handleSearchWriting handles the search_writing tool invocation.
func (s *Server) handleSearchWriting(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{Limit: input.Limit}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		article := results[i].Article
		output.Results[i] = SearchResultOutput{
			ArticleID:   article.ID,
			Title:       article.Title,
			Source:      article.SourceName,
			URL:         article.URL,
			Date:        formatDate(article.Date),
			WordCount:   article.WordCount,
			Score:       results[i].Score,
			ResourceURI: essayURI(article.ID),
		}
	}

	if len(results) > 0 {
		output.TopHitPreview = previewSnippet(results[0].Article.Content, input.Query)
	}

	return nil, output, nil
}

const (
	snippetContext      = 100
	previewWords        = 150
	previewContinuation = "... (content continues)"
)

// previewSnippet extracts an excerpt for the top search hit. When the
// query occurs verbatim in the content, the passage around its first
// occurrence is returned; otherwise the opening words of the article.
// Slicing happens in rune space: lowercasing can change byte offsets,
// and a byte-based slice could cut a multibyte rune in half.
func previewSnippet(content, query string) string {
	runes := []rune(content)
	lower := []rune(strings.ToLower(content))
	q := []rune(strings.ToLower(query))

	if len(q) > 0 {
		if index := runeIndex(lower, q); index >= 0 {
			start := index - snippetContext
			if start < 0 {
				start = 0
			}
			end := index + len(q) + snippetContext
			if end > len(runes) {
				end = len(runes)
			}
			snippet := string(runes[start:end]) + "..."
			if start > 0 {
				snippet = "..." + snippet
			}
			return snippet
		}
	}

	words := strings.Fields(content)
	if len(words) <= previewWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:previewWords], " ") + previewContinuation
}

// runeIndex returns the rune offset of the first occurrence of needle in
// haystack, or -1.
func runeIndex(haystack, needle []rune) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		j := 0
		for j < len(needle) && haystack[i+j] == needle[j] {
			j++
		}
		if j == len(needle) {
			return i
		}
	}
	return -1
}

// handleRefreshContent handles the refresh_content tool invocation.
func (s *Server) handleRefreshContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, RefreshOutput, error) {
	if s.ports.Sync == nil {
		return nil, RefreshOutput{}, errors.New("mcp: sync service is not configured")
	}

	summary, err := s.ports.Sync.Refresh(ctx)
	if err != nil {
		return nil, RefreshOutput{}, err
	}

	output := RefreshOutput{
		TotalArticles: summary.TotalArticles,
		Sources:       summary.Sources,
		Message: fmt.Sprintf(
			"Successfully refreshed %d posts from %s. All content is cached and embedded for search.",
			summary.TotalArticles, strings.Join(summary.Sources, ", ")),
	}

	return nil, output, nil
}
