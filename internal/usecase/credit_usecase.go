package usecase

import (
	"context"
	"strings"
	"sync"

	"trazot/internal/domain/entity"
	"trazot/internal/domain/repository"
	"trazot/pkg/errors"
	"trazot/pkg/logger"
)

const (
	// exhaustionBonus is granted once, the first time a debit lands a user
	// on exactly zero credits.
	exhaustionBonus = 10

	bulkGrantPakistan = 30
	bulkGrantOther    = 5
)

// ListingCost is the fixed pricing table for listing creation. Not
// configurable at runtime.
func ListingCost(country string, featured bool) int {
	if strings.EqualFold(country, "Pakistan") {
		if featured {
			return 10
		}
		return 5
	}
	if featured {
		return 2
	}
	return 1
}

// CountryGrant is the country-conditioned top-up used both for signup and
// bulk grants.
func CountryGrant(country string) int {
	if strings.EqualFold(country, "Pakistan") {
		return bulkGrantPakistan
	}
	return bulkGrantOther
}

// CreditUseCase is the ledger. Every mutation is a single read-modify-write
// serialized through one mutex, closing the lost-update race two concurrent
// writers would otherwise hit.
type CreditUseCase struct {
	store       repository.Store
	broadcaster Broadcaster

	// mu serializes ledger mutations so every debit/credit is one atomic
	// read-modify-write.
	mu sync.Mutex
}

func NewCreditUseCase(store repository.Store, broadcaster Broadcaster) *CreditUseCase {
	return &CreditUseCase{
		store:       store,
		broadcaster: broadcaster,
	}
}

// Debit charges a non-guest user. It fails with INSUFFICIENT_CREDITS when the
// balance cannot cover the amount, in which case neither the balance nor the
// bonus flag changes. A successful debit that lands on exactly zero fires the
// one-shot exhaustion bonus.
func (uc *CreditUseCase) Debit(ctx context.Context, userID string, amount int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if userID == entity.GuestID {
		return nil // anonymous/demo identity is never charged
	}

	users, err := uc.store.Users(ctx)
	if err != nil {
		return errors.Internal("Failed to load users", err)
	}

	idx := indexOfUser(users, userID)
	if idx < 0 {
		return errors.NotFound("User", nil)
	}
	if users[idx].IsGuest() {
		return nil
	}

	if amount > users[idx].Credits {
		return errors.InsufficientCredits(amount, users[idx].Credits)
	}

	users[idx].Credits -= amount
	if users[idx].Credits == 0 && !users[idx].HasReceivedExhaustionBonus {
		users[idx].Credits += exhaustionBonus
		users[idx].HasReceivedExhaustionBonus = true
		logger.Info("Exhaustion bonus granted to user %s", userID)
	}

	return uc.saveAndRefresh(ctx, users, userID)
}

// Credit is a plain balance increment, used for manual admin grants.
func (uc *CreditUseCase) Credit(ctx context.Context, userID string, amount int) error {
	if amount <= 0 {
		return errors.BadRequest("Grant amount must be positive", nil)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	users, err := uc.store.Users(ctx)
	if err != nil {
		return errors.Internal("Failed to load users", err)
	}

	idx := indexOfUser(users, userID)
	if idx < 0 {
		return errors.NotFound("User", nil)
	}

	users[idx].Credits += amount
	if err := uc.saveAndRefresh(ctx, users, userID); err != nil {
		return err
	}

	uc.notify(ctx)
	return nil
}

// BulkGrant applies the country-conditioned top-up to every registered user
// in one atomic pass, then pushes the result to the relay.
func (uc *CreditUseCase) BulkGrant(ctx context.Context) (int, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	users, err := uc.store.Users(ctx)
	if err != nil {
		return 0, errors.Internal("Failed to load users", err)
	}

	for i := range users {
		users[i].Credits += CountryGrant(users[i].Country)
	}

	if err := uc.store.SaveUsers(ctx, users); err != nil {
		return 0, errors.Internal("Failed to save users", err)
	}
	if err := uc.refreshCurrent(ctx, users); err != nil {
		return 0, err
	}

	uc.notify(ctx)
	return len(users), nil
}

func (uc *CreditUseCase) Balance(ctx context.Context, userID string) (int, error) {
	users, err := uc.store.Users(ctx)
	if err != nil {
		return 0, errors.Internal("Failed to load users", err)
	}

	idx := indexOfUser(users, userID)
	if idx < 0 {
		return 0, errors.NotFound("User", nil)
	}
	return users[idx].Credits, nil
}

func (uc *CreditUseCase) saveAndRefresh(ctx context.Context, users []entity.User, userID string) error {
	if err := uc.store.SaveUsers(ctx, users); err != nil {
		return errors.Internal("Failed to save users", err)
	}
	return uc.refreshCurrent(ctx, users)
}

// refreshCurrent keeps the cached session record in step with the registry.
func (uc *CreditUseCase) refreshCurrent(ctx context.Context, users []entity.User) error {
	current, err := uc.store.CurrentUser(ctx)
	if err != nil || current == nil {
		return err
	}
	for i := range users {
		if users[i].ID == current.ID {
			return uc.store.SaveCurrentUser(ctx, &users[i])
		}
	}
	return nil
}

func (uc *CreditUseCase) notify(ctx context.Context) {
	if uc.broadcaster != nil {
		uc.broadcaster.Broadcast(ctx)
	}
}

func indexOfUser(users []entity.User, userID string) int {
	for i := range users {
		if users[i].ID == userID {
			return i
		}
	}
	return -1
}
