package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "Inspect the synced archive",
	Long:  `Commands for listing and reading articles in the local archive.`,
}

var articlesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all synced articles",
	RunE:  runArticlesList,
}

var articlesShowCmd = &cobra.Command{
	Use:   "show [article-id]",
	Short: "Show the full text of an article",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticlesShow,
}

func init() {
	articlesCmd.AddCommand(articlesListCmd)
	articlesCmd.AddCommand(articlesShowCmd)
	rootCmd.AddCommand(articlesCmd)
}

func runArticlesList(cmd *cobra.Command, _ []string) error {
	if articleService == nil {
		return errors.New("article service not configured")
	}

	articles, err := articleService.List(context.Background())
	if err != nil {
		return fmt.Errorf("listing articles: %w", err)
	}

	if len(articles) == 0 {
		cmd.Println("No articles synced yet. Run 'quill refresh' first.")
		return nil
	}

	cmd.Printf("%d articles:\n\n", len(articles))
	for _, article := range articles {
		date := "unknown date"
		if article.Date != nil {
			date = article.Date.Format("Jan 02, 2006")
		}
		cmd.Printf("  %s  %s\n", article.ID, article.Title)
		cmd.Printf("      %s - %s - %d words\n", article.SourceName, date, article.WordCount)
	}
	return nil
}

func runArticlesShow(cmd *cobra.Command, args []string) error {
	if articleService == nil {
		return errors.New("article service not configured")
	}

	article, err := articleService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("getting article: %w", err)
	}

	cmd.Printf("# %s\n\n", article.Title)
	if article.Date != nil {
		cmd.Printf("Date: %s\n", article.Date.Format("Jan 02, 2006"))
	}
	cmd.Printf("Source: %s (%s)\n", article.SourceName, article.URL)
	cmd.Printf("Words: %d\n\n", article.WordCount)
	cmd.Println(article.Content)
	return nil
}
