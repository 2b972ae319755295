package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trazot/internal/adapter/repository"
	"trazot/internal/domain/entity"
	"trazot/pkg/errors"
)

type fakeLimiter struct {
	allow bool
	calls int
}

func (f *fakeLimiter) Allow(ctx context.Context, action string) (bool, time.Duration) {
	f.calls++
	if f.allow {
		return true, 0
	}
	return false, 1500 * time.Millisecond
}

func newMessageFixture(t *testing.T, limiter Limiter) (*MessageUseCase, *repository.SQLiteStore) {
	t.Helper()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUsers(ctx, []entity.User{
		{ID: "alice", Name: "Alice", JoinedAt: t1},
		{ID: "bob", Name: "Bob", JoinedAt: t1},
	}))
	seed := listing("l1", entity.StatusActive, t1)
	seed.Title = "Corolla 2020"
	require.NoError(t, store.SaveListings(ctx, []entity.Listing{seed}))

	users := NewUserUseCase(store, nil)
	return NewMessageUseCase(store, users, limiter, nil), store
}

func TestSendDenormalizesContext(t *testing.T) {
	ctx := context.Background()
	uc, _ := newMessageFixture(t, nil)

	sent, err := uc.Send(ctx, "alice", SendMessageInput{ListingID: "l1", ReceiverID: "bob", Text: "Still available?"})
	require.NoError(t, err)
	assert.Equal(t, "Corolla 2020", sent.ListingTitle)
	assert.Equal(t, "Alice", sent.SenderName)
}

func TestSendValidatesReceiverAndListing(t *testing.T) {
	ctx := context.Background()
	uc, _ := newMessageFixture(t, nil)

	_, err := uc.Send(ctx, "alice", SendMessageInput{ListingID: "l1", ReceiverID: "nobody", Text: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	_, err = uc.Send(ctx, "alice", SendMessageInput{ListingID: "gone", ReceiverID: "bob", Text: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestSendHonorsRateLimiter(t *testing.T) {
	ctx := context.Background()
	limiter := &fakeLimiter{allow: false}
	uc, store := newMessageFixture(t, limiter)

	_, err := uc.Send(ctx, "alice", SendMessageInput{ListingID: "l1", ReceiverID: "bob", Text: "spam"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "RATE_LIMITED"))
	assert.Equal(t, 1, limiter.calls)

	messages, err := store.Messages(ctx)
	require.NoError(t, err)
	assert.Empty(t, messages, "a throttled send must not be persisted")
}

func TestConversationsGroupByCounterpartAndListing(t *testing.T) {
	ctx := context.Background()
	uc, store := newMessageFixture(t, nil)

	require.NoError(t, store.SaveMessages(ctx, []entity.InternalMessage{
		{ID: "m1", ListingID: "l1", ListingTitle: "Corolla 2020", SenderID: "alice", SenderName: "Alice", ReceiverID: "bob", Text: "first", Timestamp: t1},
		{ID: "m2", ListingID: "l1", ListingTitle: "Corolla 2020", SenderID: "bob", SenderName: "Bob", ReceiverID: "alice", Text: "second", Timestamp: t2},
		{ID: "m3", ListingID: "l2", ListingTitle: "Plot", SenderID: "alice", SenderName: "Alice", ReceiverID: "bob", Text: "other thread", Timestamp: t3},
		{ID: "m4", ListingID: "l1", ListingTitle: "Corolla 2020", SenderID: "carol", SenderName: "Carol", ReceiverID: "dave", Text: "not ours", Timestamp: t1},
	}))

	conversations, err := uc.Conversations(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	// Newest conversation first.
	assert.Equal(t, "l2", conversations[0].ListingID)
	assert.Equal(t, "other thread", conversations[0].LastMessage)
	assert.Equal(t, "l1", conversations[1].ListingID)
	assert.Equal(t, "second", conversations[1].LastMessage)
	assert.Equal(t, "Bob", conversations[1].CounterpartName)
}

func TestThreadIsOldestFirstAndScoped(t *testing.T) {
	ctx := context.Background()
	uc, store := newMessageFixture(t, nil)

	require.NoError(t, store.SaveMessages(ctx, []entity.InternalMessage{
		{ID: "m2", ListingID: "l1", SenderID: "bob", ReceiverID: "alice", Text: "reply", Timestamp: t2},
		{ID: "m1", ListingID: "l1", SenderID: "alice", ReceiverID: "bob", Text: "opening", Timestamp: t1},
		{ID: "m3", ListingID: "l2", SenderID: "alice", ReceiverID: "bob", Text: "different listing", Timestamp: t3},
	}))

	thread, err := uc.Thread(ctx, "alice", "bob", "l1")
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "opening", thread[0].Text)
	assert.Equal(t, "reply", thread[1].Text)
}
