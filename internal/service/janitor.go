package service

import (
	"context"
	"log/slog"
	"time"
)

// RunJanitor prunes orphan votes every interval until ctx is done.
// A non-positive interval returns immediately.
func (s *VoteService) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("Vote janitor started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Vote janitor stopped")
			return
		case <-ticker.C:
			// Errors are logged by PruneOrphanVotes; the next tick retries.
			_, _ = s.PruneOrphanVotes(ctx)
		}
	}
}
