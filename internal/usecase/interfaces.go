package usecase

import (
	"context"
	"time"

	"trazot/internal/domain/entity"
	"trazot/internal/infrastructure/optimizer"
)

// RelayClient is the remote snapshot surface. Implementations collapse every
// network failure into nil/false; they never raise past this boundary.
type RelayClient interface {
	Configured() bool
	FetchSnapshot(ctx context.Context) *entity.Snapshot
	PushSnapshot(ctx context.Context, snapshot *entity.Snapshot) bool
	HealthCheck(ctx context.Context) entity.RelayHealth
}

// ContentOptimizer rewrites listing/article copy; failures degrade to the
// original text inside the implementation.
type ContentOptimizer interface {
	Optimize(ctx context.Context, title, body, category string) optimizer.Result
}

// Broadcaster pushes the full local snapshot to the relay after a mutation.
type Broadcaster interface {
	Broadcast(ctx context.Context) bool
}

// Limiter gates rate-limited actions by name.
type Limiter interface {
	Allow(ctx context.Context, action string) (bool, time.Duration)
}
