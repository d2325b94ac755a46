// Package fetchers provides platform fetcher implementations and the
// registry that routes sources to them.
package fetchers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/quill-labs/quill-cli/internal/core/domain"
	"github.com/quill-labs/quill-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.FetcherRegistry = (*Registry)(nil)

// Registry maps platforms to their fetcher implementations.
type Registry struct {
	mu       sync.RWMutex
	fetchers map[domain.Platform]driven.Fetcher
}

// NewRegistry creates a registry pre-populated with the given fetchers.
func NewRegistry(fetchers ...driven.Fetcher) *Registry {
	r := &Registry{
		fetchers: make(map[domain.Platform]driven.Fetcher),
	}
	for _, f := range fetchers {
		r.Register(f)
	}
	return r
}

// Register adds or replaces the fetcher for its platform.
func (r *Registry) Register(f driven.Fetcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetchers[f.Platform()] = f
}

// Fetcher returns the fetcher registered for the platform.
func (r *Registry) Fetcher(platform domain.Platform) (driven.Fetcher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.fetchers[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedPlatform, platform)
	}
	return f, nil
}

// Platforms returns the registered platforms in sorted order.
func (r *Registry) Platforms() []domain.Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()
	platforms := make([]domain.Platform, 0, len(r.fetchers))
	for p := range r.fetchers {
		platforms = append(platforms, p)
	}
	sort.Slice(platforms, func(i, j int) bool { return platforms[i] < platforms[j] })
	return platforms
}
