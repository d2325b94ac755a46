// Package file loads the TOML configuration that declares content
// sources and tuning parameters.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/quill-labs/quill-cli/internal/core/domain"
	"github.com/quill-labs/quill-cli/internal/logger"
)

// Default configuration values.
const (
	DefaultMaxPosts             = 100
	DefaultCacheDurationMinutes = 10080 // one week
	DefaultSimilarPostsCount    = 10
)

// SourceConfig declares one content source in the config file.
type SourceConfig struct {
	Type string `toml:"type"`
	URL  string `toml:"url"`
	Name string `toml:"name,omitempty"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	Provider   string `toml:"provider,omitempty"`
	Model      string `toml:"model,omitempty"`
	BaseURL    string `toml:"base_url,omitempty"`
	APIKey     string `toml:"api_key,omitempty"`
	Dimensions int    `toml:"dimensions,omitempty"`
}

// Config is the full, typed configuration file schema.
type Config struct {
	Sources              []SourceConfig  `toml:"sources"`
	MaxPosts             int             `toml:"max_posts,omitempty"`
	CacheDurationMinutes int             `toml:"cache_duration_minutes,omitempty"`
	SimilarPostsCount    int             `toml:"similar_posts_count,omitempty"`
	Embedding            EmbeddingConfig `toml:"embedding,omitempty"`
}

// DefaultPath returns the default config file location,
// ~/.quill/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".quill", "config.toml"), nil
}

// Load reads the configuration from path. A missing file is not an
// error: it yields a config with no sources and all defaults, so a
// fresh install works before anything is configured.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero-valued tuning parameters.
func (c *Config) applyDefaults() {
	if c.MaxPosts <= 0 {
		c.MaxPosts = DefaultMaxPosts
	}
	if c.CacheDurationMinutes <= 0 {
		c.CacheDurationMinutes = DefaultCacheDurationMinutes
	}
	if c.SimilarPostsCount <= 0 {
		c.SimilarPostsCount = DefaultSimilarPostsCount
	}
}

// CacheDuration returns the cache TTL as a time.Duration.
func (c *Config) CacheDuration() time.Duration {
	return time.Duration(c.CacheDurationMinutes) * time.Minute
}

// DomainSources converts the declared sources into domain values.
// Entries with an unknown platform type or a missing URL are logged and
// skipped; the remaining sources still sync and search.
func (c *Config) DomainSources() []domain.Source {
	sources := make([]domain.Source, 0, len(c.Sources))
	for i, sc := range c.Sources {
		platform, err := domain.ParsePlatform(sc.Type)
		if err != nil {
			logger.Warn("Skipping source %d (%s): %v", i, sc.URL, err)
			continue
		}
		if sc.URL == "" {
			logger.Warn("Skipping source %d: url is required", i)
			continue
		}
		sources = append(sources, domain.Source{
			Type: platform,
			URL:  sc.URL,
			Name: sc.Name,
		})
	}
	return sources
}
