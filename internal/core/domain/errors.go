package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedPlatform indicates a configuration references a
	// platform with no registered fetcher. The offending source is
	// skipped; other sources proceed.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrEmbeddingUnavailable indicates the embedding provider is not
	// configured. Similarity search is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrFetcherUnavailable indicates the fetcher registry is not
	// configured.
	ErrFetcherUnavailable = errors.New("fetcher registry unavailable")
)
