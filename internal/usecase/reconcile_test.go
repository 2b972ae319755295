package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trazot/internal/domain/entity"
)

var (
	t1 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 = time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	t3 = time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
)

func listing(id string, status entity.ListingStatus, changedAt time.Time) entity.Listing {
	return entity.Listing{
		ID:              id,
		Title:           "Listing " + id,
		Status:          status,
		CreatedAt:       t1,
		StatusChangedAt: changedAt,
	}
}

func TestMergeListingsUnionCompleteness(t *testing.T) {
	remote := []entity.Listing{
		listing("a", entity.StatusActive, t1),
		listing("b", entity.StatusActive, t1),
	}
	local := []entity.Listing{
		listing("b", entity.StatusTrashed, t2),
		listing("c", entity.StatusPending, t1),
	}

	merged := mergeListings(remote, local)

	require.Len(t, merged, 3)
	seen := map[string]int{}
	for _, l := range merged {
		seen[l.ID]++
	}
	for _, id := range []string{"a", "b", "c"} {
		assert.Equal(t, 1, seen[id], "id %s must appear exactly once", id)
	}
}

func TestMergeListingsLocalWinsWhenFresher(t *testing.T) {
	remote := []entity.Listing{listing("a", entity.StatusActive, t1)}
	local := []entity.Listing{listing("a", entity.StatusTrashed, t2)}

	merged := mergeListings(remote, local)

	require.Len(t, merged, 1)
	assert.Equal(t, entity.StatusTrashed, merged[0].Status, "the trash event re-stamp must win the merge")
}

func TestMergeListingsTiePrefersRemote(t *testing.T) {
	remote := []entity.Listing{listing("a", entity.StatusActive, t2)}
	local := []entity.Listing{listing("a", entity.StatusTrashed, t2)}

	merged := mergeListings(remote, local)

	require.Len(t, merged, 1)
	assert.Equal(t, entity.StatusActive, merged[0].Status)
}

func TestMergeListingsIdempotent(t *testing.T) {
	remote := []entity.Listing{
		listing("a", entity.StatusActive, t2),
		listing("b", entity.StatusActive, t1),
	}
	local := []entity.Listing{
		listing("a", entity.StatusSold, t3),
		listing("c", entity.StatusPending, t1),
	}

	once := mergeListings(remote, local)
	twice := mergeListings(once, once)
	assert.Equal(t, once, twice)

	// Re-merging the result against either original input is also stable.
	again := mergeListings(once, local)
	assert.Equal(t, once, again)
}

func TestMergeUsersCreditsWinRegardlessOfJoinedAt(t *testing.T) {
	a := entity.User{ID: "u1", Credits: 50, JoinedAt: t1, Country: "Pakistan"}
	b := entity.User{ID: "u1", Credits: 10, JoinedAt: t2, Country: "Pakistan"}

	merged := mergeUsers([]entity.User{b}, []entity.User{a})

	require.Len(t, merged, 1)
	assert.Equal(t, 50, merged[0].Credits, "higher credits must win despite older joinedAt")
}

func TestMergeUsersLaterJoinWinsOnEqualCredits(t *testing.T) {
	older := entity.User{ID: "u1", Credits: 10, JoinedAt: t1, Phone: "111"}
	newer := entity.User{ID: "u1", Credits: 10, JoinedAt: t2, Phone: "222"}

	merged := mergeUsers([]entity.User{older}, []entity.User{newer})

	require.Len(t, merged, 1)
	assert.Equal(t, "222", merged[0].Phone)
}

func TestMergeUsersExhaustionFlagIsSticky(t *testing.T) {
	local := entity.User{ID: "u1", Credits: 10, JoinedAt: t1, HasReceivedExhaustionBonus: true}
	remote := entity.User{ID: "u1", Credits: 40, JoinedAt: t1}

	merged := mergeUsers([]entity.User{remote}, []entity.User{local})

	require.Len(t, merged, 1)
	assert.Equal(t, 40, merged[0].Credits)
	assert.True(t, merged[0].HasReceivedExhaustionBonus, "the one-shot flag must survive losing the merge")
}

func TestMergeMessagesAppendOnlyUnion(t *testing.T) {
	remote := []entity.InternalMessage{
		{ID: "m1", Text: "hello", Timestamp: t1},
	}
	local := []entity.InternalMessage{
		{ID: "m1", Text: "hello", Timestamp: t1},
		{ID: "m2", Text: "still available?", Timestamp: t2},
	}

	merged := mergeMessages(remote, local)

	require.Len(t, merged, 2)
}
