package ratelimit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trazot/internal/adapter/repository"
)

func newGate(t *testing.T, intervals map[string]time.Duration) (*Gate, *repository.SQLiteStore) {
	t.Helper()

	store, err := repository.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewGate(store, intervals), store
}

func TestAllowConsumesSlot(t *testing.T) {
	ctx := context.Background()
	gate, _ := newGate(t, map[string]time.Duration{"send_message": time.Minute})

	ok, wait := gate.Allow(ctx, "send_message")
	assert.True(t, ok)
	assert.Zero(t, wait)

	ok, wait = gate.Allow(ctx, "send_message")
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))
}

func TestUngatedActionsAlwaysPass(t *testing.T) {
	ctx := context.Background()
	gate, _ := newGate(t, map[string]time.Duration{"send_message": time.Minute})

	for i := 0; i < 5; i++ {
		ok, _ := gate.Allow(ctx, "unrelated_action")
		assert.True(t, ok)
	}
}

func TestTripRecordsSecurityEvent(t *testing.T) {
	ctx := context.Background()
	gate, store := newGate(t, map[string]time.Duration{"send_message": time.Minute})

	ok, _ := gate.Allow(ctx, "send_message")
	require.True(t, ok)
	ok, _ = gate.Allow(ctx, "send_message")
	require.False(t, ok)

	evts, err := store.SecurityEvents(ctx)
	require.NoError(t, err)
	require.Len(t, evts, 1)
	assert.Equal(t, "send_message", evts[0].Action)
}

func TestLimitSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	gate, store := newGate(t, map[string]time.Duration{"send_message": time.Minute})

	ok, _ := gate.Allow(ctx, "send_message")
	require.True(t, ok)

	// A fresh gate over the same store sees the persisted stamp.
	rebuilt := NewGate(store, map[string]time.Duration{"send_message": time.Minute})
	ok, wait := rebuilt.Allow(ctx, "send_message")
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))
}

func TestExpiredIntervalReopens(t *testing.T) {
	ctx := context.Background()
	gate, store := newGate(t, map[string]time.Duration{"send_message": time.Minute})

	// Stamp the action far enough in the past that the interval has elapsed.
	stale := time.Now().Add(-2 * time.Minute).UnixMilli()
	require.NoError(t, store.SetLastRun(ctx, "send_message", stale))

	ok, _ := gate.Allow(ctx, "send_message")
	assert.True(t, ok)
}
