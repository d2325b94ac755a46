package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-labs/quill-cli/internal/core/domain"
)

func testArticle(url, title string) domain.Article {
	return domain.NewArticle(domain.PlatformSubstack, "Test Blog", title, "", url, "some body text", nil)
}

func TestArticleStore_SaveAndGet(t *testing.T) {
	store := NewArticleStore()
	ctx := context.Background()
	article := testArticle("https://a.example/p/1", "First")

	require.NoError(t, store.SaveArticle(ctx, article))

	got, err := store.GetArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, article, *got)
}

func TestArticleStore_GetMissing(t *testing.T) {
	store := NewArticleStore()

	_, err := store.GetArticle(context.Background(), "nope")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestArticleStore_SaveOverwrites(t *testing.T) {
	store := NewArticleStore()
	ctx := context.Background()

	first := testArticle("https://a.example/p/1", "First")
	require.NoError(t, store.SaveArticle(ctx, first))

	updated := first
	updated.Content = "updated body"
	require.NoError(t, store.SaveArticle(ctx, updated))

	articles, err := store.ListArticles(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "updated body", articles[0].Content)
}

func TestArticleStore_HasArticle(t *testing.T) {
	store := NewArticleStore()
	ctx := context.Background()
	article := testArticle("https://a.example/p/1", "First")

	ok, err := store.HasArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SaveArticle(ctx, article))

	ok, err = store.HasArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArticleStore_ListDeterministicOrder(t *testing.T) {
	store := NewArticleStore()
	ctx := context.Background()

	for _, title := range []string{"C", "A", "B"} {
		require.NoError(t, store.SaveArticle(ctx, testArticle("https://a.example/p/"+title, title)))
	}

	first, err := store.ListArticles(ctx)
	require.NoError(t, err)
	second, err := store.ListArticles(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestSnapshotStore_SaveAndGet(t *testing.T) {
	store := NewArticleStore()
	ctx := context.Background()

	snap := domain.Snapshot{
		CacheKey:   "substack:https://a.example",
		ArticleIDs: []string{"id1", "id2"},
		LastFetch:  time.Now(),
	}
	require.NoError(t, store.SaveSnapshot(ctx, snap))

	got, err := store.GetSnapshot(ctx, snap.CacheKey)
	require.NoError(t, err)
	assert.Equal(t, snap.ArticleIDs, got.ArticleIDs)
	assert.True(t, snap.LastFetch.Equal(got.LastFetch))
}

func TestSnapshotStore_GetMissing(t *testing.T) {
	store := NewArticleStore()

	_, err := store.GetSnapshot(context.Background(), "medium:https://nope.example")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSnapshotStore_SaveReplacesIDList(t *testing.T) {
	store := NewArticleStore()
	ctx := context.Background()
	key := "substack:https://a.example"

	require.NoError(t, store.SaveSnapshot(ctx, domain.Snapshot{CacheKey: key, ArticleIDs: []string{"old1", "old2"}}))
	require.NoError(t, store.SaveSnapshot(ctx, domain.Snapshot{CacheKey: key, ArticleIDs: []string{"new1"}}))

	got, err := store.GetSnapshot(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []string{"new1"}, got.ArticleIDs)
}
