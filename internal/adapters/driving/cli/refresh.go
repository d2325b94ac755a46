package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh content from all configured sources",
	Long: `Forces a refetch of every configured source, bypassing the cache TTL.
New articles are stored and embedded for search.`,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}

	cmd.Println("Refreshing all sources...")

	summary, err := syncService.Refresh(context.Background())
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	if len(summary.Sources) == 0 {
		cmd.Println("No sources configured. Add sources to your config file to get started.")
		return nil
	}

	cmd.Printf("Refreshed %d articles from %s.\n",
		summary.TotalArticles, strings.Join(summary.Sources, ", "))
	return nil
}
