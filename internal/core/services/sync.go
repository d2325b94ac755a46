package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/quill-labs/quill-cli/internal/core/domain"
	"github.com/quill-labs/quill-cli/internal/core/ports/driven"
	"github.com/quill-labs/quill-cli/internal/core/ports/driving"
	"github.com/quill-labs/quill-cli/internal/logger"
)

// Ensure SyncEngine implements the interface.
var _ driving.SyncService = (*SyncEngine)(nil)

// Default tunables, matching the configuration defaults.
const (
	DefaultMaxArticles   = 100
	DefaultCacheDuration = 7 * 24 * time.Hour
)

// SyncConfig holds the source registrations and tunables for the engine.
type SyncConfig struct {
	// Sources are the configured publications, read-only to the engine.
	Sources []domain.Source

	// MaxArticles caps how many articles are fetched per source.
	MaxArticles int

	// CacheDuration is the TTL before a source's snapshot is stale.
	CacheDuration time.Duration
}

// SyncEngine decides per source whether a refresh is due, invokes the
// platform fetchers, reconciles results into the store, and keeps the
// embedding cache in lockstep with new articles.
type SyncEngine struct {
	cfg        SyncConfig
	articles   driven.ArticleStore
	snapshots  driven.SnapshotStore
	embeddings driven.EmbeddingStore
	embedder   driven.EmbeddingService
	fetchers   driven.FetcherRegistry

	// now is injectable for TTL tests.
	now func() time.Time
}

// NewSyncEngine creates a sync engine.
// The embedder is optional; when nil, embedding generation is skipped and
// the search path backfills lazily once a provider is configured.
func NewSyncEngine(
	cfg SyncConfig,
	articles driven.ArticleStore,
	snapshots driven.SnapshotStore,
	embeddings driven.EmbeddingStore,
	embedder driven.EmbeddingService,
	fetchers driven.FetcherRegistry,
) *SyncEngine {
	if cfg.MaxArticles <= 0 {
		cfg.MaxArticles = DefaultMaxArticles
	}
	if cfg.CacheDuration <= 0 {
		cfg.CacheDuration = DefaultCacheDuration
	}
	return &SyncEngine{
		cfg:        cfg,
		articles:   articles,
		snapshots:  snapshots,
		embeddings: embeddings,
		embedder:   embedder,
		fetchers:   fetchers,
		now:        time.Now,
	}
}

// fetchOutcome is the result of one source fetch.
type fetchOutcome struct {
	source   domain.Source
	articles []domain.Article
	err      error
}

// EnsureFresh brings every configured source up to date and returns the
// current article list per source display name.
//
// Sources inside their TTL are reconstructed from the stored snapshot.
// Due sources are fetched concurrently; a failing source degrades to its
// last-known snapshot and stays due for the next call. Store writes happen
// on the calling goroutine, so snapshot replacement never races.
func (e *SyncEngine) EnsureFresh(ctx context.Context, force bool) (map[string][]domain.Article, error) {
	now := e.now()
	results := make(map[string][]domain.Article)

	var due []domain.Source
	for _, src := range e.cfg.Sources {
		snap, err := e.snapshots.GetSnapshot(ctx, src.CacheKey())
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get snapshot %s: %w", src.CacheKey(), err)
		}

		if force || snap == nil || now.Sub(snap.LastFetch) > e.cfg.CacheDuration {
			due = append(due, src)
			continue
		}

		articles, err := e.loadSnapshot(ctx, snap)
		if err != nil {
			return nil, fmt.Errorf("load snapshot %s: %w", src.CacheKey(), err)
		}
		results[src.DisplayName()] = articles
	}

	logger.Debug("Sync: %d sources due, %d served from cache", len(due), len(results))

	// Fetches are independent network calls; run them concurrently.
	outcomes := make([]fetchOutcome, len(due))
	var wg sync.WaitGroup
	for i, src := range due {
		wg.Add(1)
		go func(i int, src domain.Source) {
			defer wg.Done()
			articles, err := e.fetchSource(ctx, src)
			outcomes[i] = fetchOutcome{source: src, articles: articles, err: err}
		}(i, src)
	}
	wg.Wait()

	var fresh []domain.Article
	for _, out := range outcomes {
		if out.err != nil {
			// Degrade to the last-known snapshot. LastFetch stays
			// untouched so the source remains due next call.
			logger.Warn("Fetch failed for %s: %v", out.source.CacheKey(), out.err)
			articles, err := e.loadCached(ctx, out.source)
			if err != nil {
				return nil, fmt.Errorf("fallback for %s: %w", out.source.CacheKey(), err)
			}
			if articles != nil {
				results[out.source.DisplayName()] = articles
			}
			continue
		}

		ids := make([]string, 0, len(out.articles))
		for _, article := range out.articles {
			if err := e.articles.SaveArticle(ctx, article); err != nil {
				return nil, fmt.Errorf("save article %s: %w", article.ID, err)
			}
			ids = append(ids, article.ID)
		}

		snapshot := domain.Snapshot{
			CacheKey:   out.source.CacheKey(),
			ArticleIDs: ids,
			LastFetch:  now,
		}
		if err := e.snapshots.SaveSnapshot(ctx, snapshot); err != nil {
			return nil, fmt.Errorf("save snapshot %s: %w", out.source.CacheKey(), err)
		}

		logger.Info("Fetched %d articles from %s", len(out.articles), out.source.DisplayName())
		results[out.source.DisplayName()] = out.articles
		fresh = append(fresh, out.articles...)
	}

	if err := e.embedFresh(ctx, fresh); err != nil {
		return nil, fmt.Errorf("generate embeddings: %w", err)
	}

	return results, nil
}

// Refresh forces a refetch of all sources and summarises the result.
func (e *SyncEngine) Refresh(ctx context.Context) (*domain.RefreshSummary, error) {
	results, err := e.EnsureFresh(ctx, true)
	if err != nil {
		return nil, err
	}

	summary := &domain.RefreshSummary{}
	for name, articles := range results {
		summary.TotalArticles += len(articles)
		summary.Sources = append(summary.Sources, name)
	}
	sort.Strings(summary.Sources)

	return summary, nil
}

// fetchSource resolves the fetcher for a source and invokes it.
func (e *SyncEngine) fetchSource(ctx context.Context, src domain.Source) ([]domain.Article, error) {
	if e.fetchers == nil {
		return nil, domain.ErrFetcherUnavailable
	}
	fetcher, err := e.fetchers.Fetcher(src.Type)
	if err != nil {
		return nil, err
	}
	return fetcher.Fetch(ctx, src, e.cfg.MaxArticles)
}

// loadSnapshot dereferences a snapshot's member IDs. IDs whose article
// record is missing are skipped; partial eviction is tolerated.
func (e *SyncEngine) loadSnapshot(ctx context.Context, snap *domain.Snapshot) ([]domain.Article, error) {
	articles := make([]domain.Article, 0, len(snap.ArticleIDs))
	for _, id := range snap.ArticleIDs {
		article, err := e.articles.GetArticle(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			logger.Debug("Snapshot member %s missing from store, skipping", id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get article %s: %w", id, err)
		}
		articles = append(articles, *article)
	}
	return articles, nil
}

// loadCached returns the stored article list for a source, or nil when the
// source has never been fetched successfully.
func (e *SyncEngine) loadCached(ctx context.Context, src domain.Source) ([]domain.Article, error) {
	snap, err := e.snapshots.GetSnapshot(ctx, src.CacheKey())
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e.loadSnapshot(ctx, snap)
}

// embedFresh generates and caches embeddings for freshly fetched articles
// that have none yet. Embeddings are never recomputed for an existing ID.
// Provider errors propagate: they indicate an infrastructure problem, not
// a degraded source.
func (e *SyncEngine) embedFresh(ctx context.Context, fresh []domain.Article) error {
	if e.embedder == nil || len(fresh) == 0 {
		return nil
	}

	var pending []domain.Article
	seen := make(map[string]bool)
	for _, article := range fresh {
		if seen[article.ID] {
			continue
		}
		seen[article.ID] = true

		ok, err := e.embeddings.HasEmbedding(ctx, article.ID)
		if err != nil {
			return fmt.Errorf("check embedding %s: %w", article.ID, err)
		}
		if !ok {
			pending = append(pending, article)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	logger.Info("Generating embeddings for %d new articles", len(pending))

	texts := make([]string, len(pending))
	for i, article := range pending {
		texts[i] = EmbeddingText(article)
	}

	embeddings, err := e.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed batch: %w", err)
	}
	if len(embeddings) != len(pending) {
		return fmt.Errorf("embed batch: got %d embeddings for %d texts", len(embeddings), len(pending))
	}

	for i, article := range pending {
		if err := e.embeddings.PutEmbedding(ctx, article.ID, embeddings[i]); err != nil {
			return fmt.Errorf("store embedding %s: %w", article.ID, err)
		}
	}

	return nil
}
