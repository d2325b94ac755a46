package cli

import (
	"fmt"
	"os"

	"github.com/quill-labs/quill-cli/internal/adapters/driven/config/file"
	"github.com/quill-labs/quill-cli/internal/adapters/driven/embedding/ollama"
	"github.com/quill-labs/quill-cli/internal/adapters/driven/embedding/openai"
	"github.com/quill-labs/quill-cli/internal/core/ports/driven"
)

// buildEmbedder constructs the configured embedding provider.
// With no explicit provider, OpenAI is chosen when an API key is
// available and Ollama otherwise.
func buildEmbedder(cfg file.EmbeddingConfig) (driven.EmbeddingService, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	provider := cfg.Provider
	if provider == "" {
		if apiKey != "" {
			provider = "openai"
		} else {
			provider = "ollama"
		}
	}

	switch provider {
	case "openai":
		return openai.NewEmbeddingService(openai.Config{
			APIKey:     apiKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		})
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}
