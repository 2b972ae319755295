package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trazot/internal/domain/entity"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func corrupt(t *testing.T, store *SQLiteStore, key string) {
	t.Helper()

	_, err := store.db.Exec(`UPDATE collections SET value = '{not json' WHERE key = ?`, key)
	require.NoError(t, err)
}

func TestListingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	posted := time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC)
	listings := []entity.Listing{{
		ID:       "pro-abc123def456",
		Title:    "3 Marla house",
		Price:    9500000,
		Currency: "PKR",
		Category: entity.CategoryProperties,
		Status:   entity.StatusActive,
		UserID:   "u1",
		Location: entity.Location{Country: "Pakistan", City: "Karachi"},

		CreatedAt:       posted,
		StatusChangedAt: posted,
	}}
	require.NoError(t, store.SaveListings(ctx, listings))

	got, err := store.Listings(ctx)
	require.NoError(t, err)
	assert.Equal(t, listings, got)
}

func TestListingsSeedFallback(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	// Nothing saved yet: the seed catalog is served.
	got, err := store.Listings(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedListings(), got)

	// An explicitly saved empty collection is not re-seeded.
	require.NoError(t, store.SaveListings(ctx, []entity.Listing{}))
	got, err = store.Listings(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCorruptJSONFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.SaveUsers(ctx, []entity.User{{ID: "u1"}}))
	corrupt(t, store, keyUsers)

	users, err := store.Users(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, store.SaveListings(ctx, []entity.Listing{{ID: "l1"}}))
	corrupt(t, store, keyListings)

	listings, err := store.Listings(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedListings(), listings, "corrupt listings fall all the way back to the seed catalog")
}

func TestCurrentUserAbsentIsNil(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	current, err := store.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	joined := time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveCurrentUser(ctx, &entity.User{ID: "u1", JoinedAt: joined}))

	current, err = store.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "u1", current.ID)
}

func TestAdminCredentialAbsentIsNil(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	credential, err := store.AdminCredential(ctx)
	require.NoError(t, err)
	assert.Nil(t, credential)
}

func TestSecurityLogPrependsAndCaps(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	for i := 0; i < securityLogCap+5; i++ {
		err := store.AppendSecurityEvent(ctx, entity.SecurityEvent{
			Action:    fmt.Sprintf("event-%d", i),
			Timestamp: time.Date(2025, 4, 1, 0, 0, i, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	evts, err := store.SecurityEvents(ctx)
	require.NoError(t, err)
	require.Len(t, evts, securityLogCap)
	assert.Equal(t, fmt.Sprintf("event-%d", securityLogCap+4), evts[0].Action, "newest entry comes first")
}

func TestLastRunStamps(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	last, err := store.LastRun(ctx, "send_message")
	require.NoError(t, err)
	assert.Zero(t, last)

	require.NoError(t, store.SetLastRun(ctx, "send_message", 1743500000000))

	last, err = store.LastRun(ctx, "send_message")
	require.NoError(t, err)
	assert.Equal(t, int64(1743500000000), last)

	corrupt(t, store, rateLimitPrefix+"send_message")
	last, err = store.LastRun(ctx, "send_message")
	require.NoError(t, err)
	assert.Zero(t, last, "a corrupt stamp reads as never-run")
}
