package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trazot/internal/domain/entity"
	"trazot/pkg/errors"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Lahore Property Market Update", "lahore-property-market-update"},
		{"  Spaces & Symbols!!", "spaces-symbols"},
		{"Already-Slugged", "already-slugged"},
		{"2025: Year In Review", "2025-year-in-review"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.title))
	}
}

func TestCreateArticleAndFetchBySlug(t *testing.T) {
	ctx := context.Background()
	uc := NewContentUseCase(newTestStore(t), nil, nil)

	article, err := uc.CreateArticle(ctx, CreateArticleInput{
		Title:    "Karachi Market Report",
		Content:  "Prices are up.",
		Category: entity.NewsCategoryMarket,
		Author:   "Editorial",
	})
	require.NoError(t, err)
	assert.Equal(t, "karachi-market-report", article.Slug)

	got, err := uc.GetArticleBySlug(ctx, "karachi-market-report")
	require.NoError(t, err)
	assert.Equal(t, article.ID, got.ID)

	_, err = uc.GetArticleBySlug(ctx, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestCreateArticleRejectsUnknownCategory(t *testing.T) {
	uc := NewContentUseCase(newTestStore(t), nil, nil)

	_, err := uc.CreateArticle(context.Background(), CreateArticleInput{
		Title:    "Misc",
		Category: "gossip",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSavedSearchOwnership(t *testing.T) {
	ctx := context.Background()
	uc := NewContentUseCase(newTestStore(t), nil, nil)

	search, err := uc.CreateSavedSearch(ctx, "alice", CreateSavedSearchInput{
		Name:  "Cheap plots",
		Query: "plot",
	})
	require.NoError(t, err)

	mine, err := uc.ListSavedSearches(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := uc.ListSavedSearches(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, theirs)

	err = uc.DeleteSavedSearch(ctx, "bob", search.ID)
	require.Error(t, err, "only the owner may delete a saved search")

	require.NoError(t, uc.DeleteSavedSearch(ctx, "alice", search.ID))
}

func TestSubscribeDeduplicates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	uc := NewContentUseCase(store, nil, nil)

	require.NoError(t, uc.Subscribe(ctx, "reader@example.com"))

	err := uc.Subscribe(ctx, "Reader@Example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))

	subscribers, err := store.Subscribers(ctx)
	require.NoError(t, err)
	assert.Len(t, subscribers, 1)
}
