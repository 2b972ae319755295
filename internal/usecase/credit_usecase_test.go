package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trazot/internal/domain/entity"
	"trazot/pkg/errors"
)

func TestListingCostTable(t *testing.T) {
	tests := []struct {
		name     string
		country  string
		featured bool
		want     int
	}{
		{"pakistan base", "Pakistan", false, 5},
		{"pakistan featured", "Pakistan", true, 10},
		{"other base", "Germany", false, 1},
		{"other featured", "Germany", true, 2},
		{"country match is case-insensitive", "pakistan", false, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ListingCost(tt.country, tt.featured))
		})
	}
}

func TestDebitInsufficientCredits(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SaveUsers(ctx, []entity.User{
		{ID: "u1", Credits: 3, Country: "Pakistan", JoinedAt: t1},
	}))

	uc := NewCreditUseCase(store, nil)

	err := uc.Debit(ctx, "u1", 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "INSUFFICIENT_CREDITS"))

	balance, err := uc.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, balance, "a failed debit must not touch the balance")
}

func TestDebitExhaustionBonusFiresExactlyOnce(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SaveUsers(ctx, []entity.User{
		{ID: "u1", Credits: 5, Country: "Pakistan", JoinedAt: t1},
	}))

	uc := NewCreditUseCase(store, nil)

	// First debit lands on exactly zero: the bonus fires and the flag sets.
	require.NoError(t, uc.Debit(ctx, "u1", 5))
	users, err := store.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, users[0].Credits)
	assert.True(t, users[0].HasReceivedExhaustionBonus)

	// Reaching zero again must not re-trigger it.
	require.NoError(t, uc.Debit(ctx, "u1", 5))
	require.NoError(t, uc.Debit(ctx, "u1", 5))
	users, err = store.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, users[0].Credits)
	assert.True(t, users[0].HasReceivedExhaustionBonus)
}

func TestDebitGuestExempt(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	uc := NewCreditUseCase(store, nil)
	assert.NoError(t, uc.Debit(ctx, entity.GuestID, 100))
}

func TestCreditRejectsNonPositiveGrant(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SaveUsers(ctx, []entity.User{
		{ID: "u1", Credits: 3, JoinedAt: t1},
	}))

	uc := NewCreditUseCase(store, nil)
	assert.Error(t, uc.Credit(ctx, "u1", 0))
	assert.Error(t, uc.Credit(ctx, "u1", -5))
}

func TestBulkGrantByCountry(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SaveUsers(ctx, []entity.User{
		{ID: "pk", Credits: 1, Country: "Pakistan", JoinedAt: t1},
		{ID: "de", Credits: 1, Country: "Germany", JoinedAt: t1},
	}))

	relay := &fakeRelay{pushOK: true}
	sync := NewSyncUseCase(store, relay, nil, "trazot.com", "1.0")
	uc := NewCreditUseCase(store, sync)

	count, err := uc.BulkGrant(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	users, err := store.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, 31, users[0].Credits)
	assert.Equal(t, 6, users[1].Credits)

	assert.NotEmpty(t, relay.pushed, "a bulk grant must push the result to the relay")
}
