// Package cli provides the Quill command-line interface.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quill-labs/quill-cli/internal/adapters/driven/config/file"
	"github.com/quill-labs/quill-cli/internal/adapters/driven/embedding/lazy"
	"github.com/quill-labs/quill-cli/internal/adapters/driven/storage/sqlite"
	"github.com/quill-labs/quill-cli/internal/core/ports/driven"
	"github.com/quill-labs/quill-cli/internal/core/ports/driving"
	"github.com/quill-labs/quill-cli/internal/core/services"
	"github.com/quill-labs/quill-cli/internal/fetchers"
	"github.com/quill-labs/quill-cli/internal/fetchers/medium"
	"github.com/quill-labs/quill-cli/internal/fetchers/substack"
	"github.com/quill-labs/quill-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flags.
var (
	cfgPath string
	dataDir string
	verbose bool
)

// Wired services, shared by the commands. Tests inject mocks here.
var (
	searchService  driving.SearchService
	syncService    driving.SyncService
	articleService driving.ArticleService
	appConfig      *file.Config
	store          *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Sync and search your writing",
	Long: `Quill syncs your published writing from Substack and Medium into a
local archive and makes it searchable by meaning, not just keywords.
It can also expose the archive to AI assistants as an MCP server.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.quill/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.quill/data)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command.
func Execute() {
	defer closeStore()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initServices wires the service graph before a command runs. Commands
// that do not touch the archive skip wiring, and tests that pre-inject
// services keep them.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	switch cmd.Name() {
	case "version", "help", "completion":
		return nil
	}
	if searchService != nil {
		return nil
	}

	path := cfgPath
	if path == "" {
		var err error
		path, err = file.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err := file.Load(path)
	if err != nil {
		return err
	}
	appConfig = cfg

	sources := cfg.DomainSources()

	store, err = sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	embedder := newEmbedder(cfg.Embedding)

	client := fetchers.NewFeedClient()
	registry := fetchers.NewRegistry(substack.New(client), medium.New(client))

	engine := services.NewSyncEngine(
		services.SyncConfig{
			Sources:       sources,
			MaxArticles:   cfg.MaxPosts,
			CacheDuration: cfg.CacheDuration(),
		},
		store.ArticleStore(),
		store.SnapshotStore(),
		store.EmbeddingStore(),
		embedder,
		registry,
	)
	syncService = engine

	search := services.NewSearchService(
		store.ArticleStore(),
		store.EmbeddingStore(),
		embedder,
		cfg.SimilarPostsCount,
	)
	search.SetSyncService(engine)
	searchService = search

	articleService = services.NewArticleService(store.ArticleStore())

	return nil
}

// newEmbedder builds a lazily-initialized embedding service from the
// config. Construction is deferred until first use so commands that
// never embed do not pay for provider setup.
func newEmbedder(cfg file.EmbeddingConfig) driven.EmbeddingService {
	svc := lazy.NewEmbeddingService(func() (driven.EmbeddingService, error) {
		return buildEmbedder(cfg)
	})
	svc.FallbackDimensions = cfg.Dimensions
	svc.FallbackModelName = cfg.Model
	return svc
}

// closeStore releases the SQLite handle if a command opened it.
func closeStore() {
	if store != nil {
		store.Close()
	}
}

// resetServices clears the wired services. Used by tests.
func resetServices() {
	searchService = nil
	syncService = nil
	articleService = nil
	appConfig = nil
	if store != nil {
		store.Close()
		store = nil
	}
}

// similarPostsCount returns the configured default result count.
func similarPostsCount() int {
	if appConfig != nil {
		return appConfig.SimilarPostsCount
	}
	return file.DefaultSimilarPostsCount
}

// refreshInterval clamps an interval flag to something sensible.
func refreshInterval(d time.Duration) time.Duration {
	if d <= 0 {
		return 30 * time.Minute
	}
	return d
}
