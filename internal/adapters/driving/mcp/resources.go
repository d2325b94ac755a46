package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for Quill resources.
const uriScheme = "quill://"

// essayURI builds the resource URI for an article.
func essayURI(articleID string) string {
	return uriScheme + "essays/" + articleID
}

// formatDate renders an optional publication date the way resource
// descriptions show it.
func formatDate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format("Jan 02, 2006")
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource listing every synced essay.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "essays",
		Name:        "essays",
		Description: "List of all synced essays",
		MIMEType:    "application/json",
	}, s.handleEssaysResource)

	// Template for individual essay content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "essays/{articleId}",
		Name:        "essay",
		Description: "Full text of a specific essay as markdown",
		MIMEType:    "text/markdown",
	}, s.handleEssayResource)
}

// handleEssaysResource returns a list of every synced essay.
func (s *Server) handleEssaysResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Article == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	articles, err := s.ports.Article.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}

	type essayInfo struct {
		URI         string `json:"uri"`
		Name        string `json:"name"`
		Description string `json:"description"`
		MIMEType    string `json:"mime_type"`
	}

	infos := make([]essayInfo, len(articles))
	for i, article := range articles {
		date := formatDate(article.Date)
		if date == "" {
			date = "Unknown date"
		}
		infos[i] = essayInfo{
			URI:         essayURI(article.ID),
			Name:        article.Title,
			Description: fmt.Sprintf("%s - %s", article.SourceName, date),
			MIMEType:    "text/markdown",
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling essays: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleEssayResource returns a single essay rendered as markdown.
func (s *Server) handleEssayResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Article == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	articleID := extractArticleID(req.Params.URI)
	if articleID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	article, err := s.ports.Article.Get(ctx, articleID)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", article.Title)
	if article.Date != nil {
		fmt.Fprintf(&b, "Date: %s\n\n", formatDate(article.Date))
	}
	fmt.Fprintf(&b, "Source: [%s](%s)\n\n", article.SourceName, article.URL)
	fmt.Fprintf(&b, "Word count: %d\n\n", article.WordCount)
	b.WriteString("---\n\n")
	b.WriteString(article.Content)

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     b.String(),
		}},
	}, nil
}

// extractArticleID extracts the article ID from a URI like quill://essays/{articleId}.
func extractArticleID(uri string) string {
	const prefix = uriScheme + "essays/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
