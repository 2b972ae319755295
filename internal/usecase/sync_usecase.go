package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"trazot/internal/domain/entity"
	"trazot/internal/domain/repository"
	"trazot/internal/infrastructure/events"
	"trazot/pkg/logger"
)

// SyncUseCase owns the reconciliation engine and the background sync loop.
// A cycle is all-or-nothing: if the relay cannot be reached, the local store
// is left completely untouched and the status collapses to "local".
type SyncUseCase struct {
	store repository.Store
	relay RelayClient
	bus   *events.Bus

	domain  string
	version string

	cron     *cron.Cron
	cronID   cron.EntryID
	mu       sync.Mutex
	statusMu sync.RWMutex
	status   entity.SyncStatus
}

func NewSyncUseCase(store repository.Store, relay RelayClient, bus *events.Bus, domain, version string) *SyncUseCase {
	return &SyncUseCase{
		store:   store,
		relay:   relay,
		bus:     bus,
		domain:  domain,
		version: version,
		status:  entity.SyncStatusLocal,
	}
}

// Status returns the outcome of the most recent sync cycle.
func (uc *SyncUseCase) Status() entity.SyncStatus {
	uc.statusMu.RLock()
	defer uc.statusMu.RUnlock()
	return uc.status
}

func (uc *SyncUseCase) Health(ctx context.Context) entity.RelayHealth {
	return uc.relay.HealthCheck(ctx)
}

func (uc *SyncUseCase) setStatus(status entity.SyncStatus) {
	uc.statusMu.Lock()
	changed := uc.status != status
	uc.status = status
	uc.statusMu.Unlock()

	if changed && uc.bus != nil {
		uc.bus.Publish(events.Event{Type: events.TypeSyncStatus, Payload: status, At: time.Now()})
	}
}

// Snapshot assembles the full local state for the relay.
func (uc *SyncUseCase) Snapshot(ctx context.Context) (*entity.Snapshot, error) {
	listings, err := uc.store.Listings(ctx)
	if err != nil {
		return nil, err
	}
	users, err := uc.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	news, err := uc.store.News(ctx)
	if err != nil {
		return nil, err
	}
	dealers, err := uc.store.Dealers(ctx)
	if err != nil {
		return nil, err
	}
	promotions, err := uc.store.Promotions(ctx)
	if err != nil {
		return nil, err
	}
	messages, err := uc.store.Messages(ctx)
	if err != nil {
		return nil, err
	}

	return &entity.Snapshot{
		Listings:   listings,
		Users:      users,
		News:       news,
		Dealers:    dealers,
		Promotions: promotions,
		Messages:   messages,
		LastUpdate: time.Now().UTC(),
		Version:    uc.version,
		Domain:     uc.domain,
	}, nil
}

// Broadcast pushes the entire local state to the relay after a mutation.
// Failure is not an error condition for the caller: the data is already
// persisted locally and the next cycle will retry.
func (uc *SyncUseCase) Broadcast(ctx context.Context) bool {
	snapshot, err := uc.Snapshot(ctx)
	if err != nil {
		logger.Error("Failed to assemble snapshot for broadcast: %v", err)
		return false
	}

	ok := uc.relay.PushSnapshot(ctx, snapshot)
	if !ok {
		uc.setStatus(entity.SyncStatusLocal)
	}
	return ok
}

// Sync runs one reconciliation cycle: fetch the remote snapshot, merge every
// collection by identity and freshness, replace the local collections with
// the union, refresh the cached current user, and push the merged state back.
// Running it twice in a row yields the same reconciled state as running it
// once.
func (uc *SyncUseCase) Sync(ctx context.Context) entity.SyncStatus {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	remote := uc.relay.FetchSnapshot(ctx)
	if remote == nil {
		uc.setStatus(entity.SyncStatusLocal)
		return entity.SyncStatusLocal
	}

	merged, err := uc.reconcile(ctx, remote)
	if err != nil {
		logger.Error("Reconciliation failed, store untouched: %v", err)
		uc.setStatus(entity.SyncStatusError)
		return entity.SyncStatusError
	}

	if err := uc.persist(ctx, merged); err != nil {
		logger.Error("Failed to persist reconciled state: %v", err)
		uc.setStatus(entity.SyncStatusError)
		return entity.SyncStatusError
	}

	merged.LastUpdate = time.Now().UTC()
	merged.Version = uc.version
	merged.Domain = uc.domain
	// The merged state is already persisted at this point, so a failed push
	// is a push failure, not an untouched local store.
	if !uc.relay.PushSnapshot(ctx, merged) {
		uc.setStatus(entity.SyncStatusError)
		return entity.SyncStatusError
	}

	uc.setStatus(entity.SyncStatusSynced)
	return entity.SyncStatusSynced
}

// reconcile computes the merged snapshot without writing anything, so a
// failure partway leaves the store as it was.
func (uc *SyncUseCase) reconcile(ctx context.Context, remote *entity.Snapshot) (*entity.Snapshot, error) {
	local, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return &entity.Snapshot{
		Listings:   mergeListings(remote.Listings, local.Listings),
		Users:      mergeUsers(remote.Users, local.Users),
		News:       mergeNews(remote.News, local.News),
		Dealers:    mergeDealers(remote.Dealers, local.Dealers),
		Promotions: mergePromotions(remote.Promotions, local.Promotions),
		Messages:   mergeMessages(remote.Messages, local.Messages),
	}, nil
}

func (uc *SyncUseCase) persist(ctx context.Context, merged *entity.Snapshot) error {
	if err := uc.store.SaveListings(ctx, merged.Listings); err != nil {
		return err
	}
	if err := uc.store.SaveUsers(ctx, merged.Users); err != nil {
		return err
	}
	if err := uc.store.SaveNews(ctx, merged.News); err != nil {
		return err
	}
	if err := uc.store.SaveDealers(ctx, merged.Dealers); err != nil {
		return err
	}
	if err := uc.store.SavePromotions(ctx, merged.Promotions); err != nil {
		return err
	}
	if err := uc.store.SaveMessages(ctx, merged.Messages); err != nil {
		return err
	}

	// A remote credit change becomes visible to the active session without
	// re-login: refresh the cached current user from the merged registry.
	current, err := uc.store.CurrentUser(ctx)
	if err != nil || current == nil {
		return err
	}
	for i := range merged.Users {
		if merged.Users[i].ID == current.ID {
			return uc.store.SaveCurrentUser(ctx, &merged.Users[i])
		}
	}
	return nil
}

// Start schedules the periodic cycle and runs one immediately. Stop (or ctx
// cancellation) tears the schedule down without leaving a dangling timer.
func (uc *SyncUseCase) Start(ctx context.Context, intervalSeconds int) error {
	if !uc.relay.Configured() {
		logger.Warn("No relay configured; running local-only")
		return nil
	}

	uc.cron = cron.New(cron.WithSeconds())
	// @every gives a constant delay for any interval, including ones that do
	// not divide 60.
	spec := fmt.Sprintf("@every %ds", intervalSeconds)
	id, err := uc.cron.AddFunc(spec, func() {
		status := uc.Sync(ctx)
		logger.LogSyncResult(string(status), nil)
	})
	if err != nil {
		return err
	}
	uc.cronID = id
	uc.cron.Start()

	go func() {
		<-ctx.Done()
		uc.Stop()
	}()

	go uc.Sync(ctx)
	return nil
}

func (uc *SyncUseCase) Stop() {
	if uc.cron != nil {
		uc.cron.Remove(uc.cronID)
		uc.cron.Stop()
	}
}
