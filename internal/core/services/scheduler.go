package services

import (
	"context"
	"sync"
	"time"

	"github.com/quill-labs/quill-cli/internal/core/ports/driving"
	"github.com/quill-labs/quill-cli/internal/logger"
)

// RefreshScheduler periodically runs a freshness check while a long-lived
// process (the MCP server) is up. The TTL still gates actual network
// fetches, so a short interval is cheap: most ticks are cache hits.
type RefreshScheduler struct {
	interval    time.Duration
	syncService driving.SyncService

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewRefreshScheduler creates a scheduler. Intervals below one minute are
// raised to one minute.
func NewRefreshScheduler(interval time.Duration, syncService driving.SyncService) *RefreshScheduler {
	if interval < time.Minute {
		interval = time.Minute
	}
	return &RefreshScheduler{
		interval:    interval,
		syncService: syncService,
	}
}

// Start begins the refresh loop. It blocks until the context is cancelled
// or Stop is called. Calling Start while running is a no-op.
func (s *RefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	// Context cancellation exits the loop without going through Stop;
	// clear running so a later Start is not a permanent no-op.
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// Stop shuts the scheduler down and waits for an in-flight run.
func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
}

// runOnce executes a single freshness check.
func (s *RefreshScheduler) runOnce(ctx context.Context) {
	s.wg.Add(1)
	defer s.wg.Done()

	if _, err := s.syncService.EnsureFresh(ctx, false); err != nil {
		logger.Warn("Scheduled refresh failed: %v", err)
	}
}
