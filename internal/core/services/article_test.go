package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-labs/quill-cli/internal/adapters/driven/storage/memory"
	"github.com/quill-labs/quill-cli/internal/core/domain"
)

func TestArticleService_List(t *testing.T) {
	store := memory.NewArticleStore()
	service := NewArticleService(store)
	ctx := context.Background()

	for _, title := range []string{"one", "two"} {
		article := domain.NewArticle(domain.PlatformSubstack, "Letters", title, "",
			"https://letters.example/p/"+title, "body", nil)
		require.NoError(t, store.SaveArticle(ctx, article))
	}

	articles, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, articles, 2)
}

func TestArticleService_ListEmpty(t *testing.T) {
	service := NewArticleService(memory.NewArticleStore())

	articles, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestArticleService_Get(t *testing.T) {
	store := memory.NewArticleStore()
	service := NewArticleService(store)
	ctx := context.Background()

	article := domain.NewArticle(domain.PlatformMedium, "Blog", "A Post", "",
		"https://medium.com/@w/a-post", "body", nil)
	require.NoError(t, store.SaveArticle(ctx, article))

	got, err := service.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, article.Title, got.Title)
}

func TestArticleService_GetUnknownID(t *testing.T) {
	service := NewArticleService(memory.NewArticleStore())

	_, err := service.Get(context.Background(), "does-not-exist")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
