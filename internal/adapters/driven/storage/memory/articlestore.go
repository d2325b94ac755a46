package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/quill-labs/quill-cli/internal/core/domain"
	"github.com/quill-labs/quill-cli/internal/core/ports/driven"
)

// Ensure ArticleStore implements the interfaces.
var (
	_ driven.ArticleStore  = (*ArticleStore)(nil)
	_ driven.SnapshotStore = (*ArticleStore)(nil)
)

// ArticleStore is an in-memory implementation of driven.ArticleStore and
// driven.SnapshotStore, used in tests.
type ArticleStore struct {
	mu        sync.RWMutex
	articles  map[string]domain.Article
	snapshots map[string]domain.Snapshot
}

// NewArticleStore creates a new in-memory article store.
func NewArticleStore() *ArticleStore {
	return &ArticleStore{
		articles:  make(map[string]domain.Article),
		snapshots: make(map[string]domain.Snapshot),
	}
}

// SaveArticle stores or updates an article.
func (s *ArticleStore) SaveArticle(_ context.Context, article domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[article.ID] = article
	return nil
}

// GetArticle retrieves an article by ID.
func (s *ArticleStore) GetArticle(_ context.Context, id string) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	article, ok := s.articles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &article, nil
}

// HasArticle reports whether an article with the ID exists.
func (s *ArticleStore) HasArticle(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.articles[id]
	return ok, nil
}

// ListArticles returns every stored article, ordered by ID for
// deterministic iteration.
func (s *ArticleStore) ListArticles(_ context.Context) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.articles))
	for id := range s.articles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	articles := make([]domain.Article, 0, len(ids))
	for _, id := range ids {
		articles = append(articles, s.articles[id])
	}
	return articles, nil
}

// SaveSnapshot atomically replaces the snapshot for a cache key.
func (s *ArticleStore) SaveSnapshot(_ context.Context, snapshot domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(snapshot.ArticleIDs))
	copy(ids, snapshot.ArticleIDs)
	snapshot.ArticleIDs = ids
	s.snapshots[snapshot.CacheKey] = snapshot
	return nil
}

// GetSnapshot retrieves the snapshot for a cache key.
func (s *ArticleStore) GetSnapshot(_ context.Context, cacheKey string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.snapshots[cacheKey]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &snapshot, nil
}
