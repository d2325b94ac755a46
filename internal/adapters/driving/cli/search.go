package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quill-labs/quill-cli/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search your writing",
	Long: `Searches the synced archive by meaning using embeddings.
Results are ranked by cosine similarity against the query.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 = config default)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	ctx := context.Background()
	limit := searchLimit
	if limit <= 0 {
		limit = similarPostsCount()
	}

	results, err := searchService.Search(ctx, query, domain.SearchOptions{Limit: limit})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		article := results[i].Article

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, article.Title, results[i].Score)
		if article.SourceName != "" {
			date := ""
			if article.Date != nil {
				date = " - " + article.Date.Format("Jan 02, 2006")
			}
			cmd.Printf("      %s%s\n", article.SourceName, date)
		}
		if article.URL != "" {
			cmd.Printf("      %s\n", article.URL)
		}
		cmd.Println()
	}

	return nil
}
