package services

import "github.com/quill-labs/quill-cli/internal/core/domain"

const (
	// articleContentLimit is how much of an article body participates in
	// its embedding. Bounds the provider call and keeps cached vectors
	// stable when an article is extended past this point.
	articleContentLimit = 5000

	// embedInputLimit is the hard cap applied to every embedding input,
	// including queries.
	embedInputLimit = 10000
)

// EmbeddingText returns the canonical embedding input for an article:
// the title plus the first 5000 characters of content. The same text must
// be used everywhere an article embedding is computed, otherwise cached
// vectors would diverge between the sync and search paths.
func EmbeddingText(a domain.Article) string {
	content := a.Content
	if runes := []rune(content); len(runes) > articleContentLimit {
		content = string(runes[:articleContentLimit])
	}
	return ClampEmbedInput(a.Title + " " + content)
}

// ClampEmbedInput caps embedding input at the hard limit to bound
// worst-case provider latency.
func ClampEmbedInput(text string) string {
	if runes := []rune(text); len(runes) > embedInputLimit {
		return string(runes[:embedInputLimit])
	}
	return text
}
