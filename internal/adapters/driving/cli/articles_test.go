package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quill-labs/quill-cli/internal/core/domain"
)

func TestArticlesListCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"articles", "list"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "1 articles:")
	assert.Contains(t, buf.String(), "abc123")
	assert.Contains(t, buf.String(), "Test Article")
	assert.Contains(t, buf.String(), "100 words")
}

func TestArticlesListCmd_EmptyArchive(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	articleService = &mockArticleService{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"articles", "list"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No articles synced yet")
}

func TestArticlesListCmd_ServiceNotConfigured(t *testing.T) {
	err := runArticlesList(rootCmd, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "article service not configured")
}

func TestArticlesShowCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"articles", "show", "abc123"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "# Test Article")
	assert.Contains(t, buf.String(), "Source: Letters (https://letters.example/p/test)")
	assert.Contains(t, buf.String(), "The article body.")
}

func TestArticlesShowCmd_RequiresArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"articles", "show"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestArticlesShowCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	articleService = &mockArticleService{err: domain.ErrNotFound}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"articles", "show", "deadbeef"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
