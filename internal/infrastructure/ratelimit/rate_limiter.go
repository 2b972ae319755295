package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"trazot/internal/domain/entity"
	"trazot/internal/domain/repository"
	"trazot/pkg/logger"
)

// Gate enforces a minimum interval per action name. The last-execution stamp
// is persisted in the store (one key per action, epoch milliseconds) so the
// limit survives restarts, and a trip is recorded as an advisory security
// event rather than a hard block on anything beyond the gated action.
type Gate struct {
	store     repository.Store
	intervals map[string]time.Duration
	mutex     sync.Mutex
}

func NewGate(store repository.Store, intervals map[string]time.Duration) *Gate {
	return &Gate{
		store:     store,
		intervals: intervals,
	}
}

// Allow consumes the action slot if the interval has elapsed. On a trip it
// returns false plus the remaining wait, and appends a security event.
func (g *Gate) Allow(ctx context.Context, action string) (bool, time.Duration) {
	interval, limited := g.intervals[action]
	if !limited {
		return true, 0
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	last, err := g.store.LastRun(ctx, action)
	if err != nil {
		// Storage faults must not lock users out of the action.
		logger.Warn("Rate-limit stamp read failed for %q: %v", action, err)
		return true, 0
	}

	now := time.Now()
	elapsed := now.Sub(time.UnixMilli(last))
	if last > 0 && elapsed < interval {
		wait := interval - elapsed
		g.recordTrip(ctx, action, wait)
		return false, wait
	}

	if err := g.store.SetLastRun(ctx, action, now.UnixMilli()); err != nil {
		logger.Warn("Rate-limit stamp write failed for %q: %v", action, err)
	}
	return true, 0
}

func (g *Gate) recordTrip(ctx context.Context, action string, wait time.Duration) {
	event := entity.SecurityEvent{
		ID:        uuid.New().String(),
		Action:    action,
		Detail:    "rate limit tripped, retry in " + wait.Round(time.Second).String(),
		Timestamp: time.Now(),
	}
	if err := g.store.AppendSecurityEvent(ctx, event); err != nil {
		logger.Warn("Failed to record security event: %v", err)
	}
}
