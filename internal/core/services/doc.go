// Package services implements the core engine: synchronisation of
// configured sources into the store, similarity search over cached
// embeddings, and read access to stored articles.
package services
