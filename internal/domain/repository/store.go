package repository

import (
	"context"

	"trazot/internal/domain/entity"
)

// Store is the local persistence surface: one independently stored JSON
// collection per key. Getters never fail on corrupt stored JSON; they fall
// back to the typed default (the seed list for listings, empty elsewhere)
// and only return an error on a real storage fault. Saves overwrite the
// whole collection and emit a store-changed event.
type Store interface {
	Listings(ctx context.Context) ([]entity.Listing, error)
	SaveListings(ctx context.Context, listings []entity.Listing) error

	Users(ctx context.Context) ([]entity.User, error)
	SaveUsers(ctx context.Context, users []entity.User) error

	CurrentUser(ctx context.Context) (*entity.User, error)
	SaveCurrentUser(ctx context.Context, user *entity.User) error

	News(ctx context.Context) ([]entity.NewsArticle, error)
	SaveNews(ctx context.Context, news []entity.NewsArticle) error

	Dealers(ctx context.Context) ([]entity.Dealer, error)
	SaveDealers(ctx context.Context, dealers []entity.Dealer) error

	Promotions(ctx context.Context) ([]entity.ProjectPromotion, error)
	SavePromotions(ctx context.Context, promotions []entity.ProjectPromotion) error

	SavedSearches(ctx context.Context) ([]entity.SavedSearch, error)
	SaveSavedSearches(ctx context.Context, searches []entity.SavedSearch) error

	Messages(ctx context.Context) ([]entity.InternalMessage, error)
	SaveMessages(ctx context.Context, messages []entity.InternalMessage) error

	Subscribers(ctx context.Context) ([]entity.NewsletterSubscriber, error)
	SaveSubscribers(ctx context.Context, subscribers []entity.NewsletterSubscriber) error

	AdminCredential(ctx context.Context) (*entity.AdminCredential, error)
	SaveAdminCredential(ctx context.Context, credential *entity.AdminCredential) error

	SecurityEvents(ctx context.Context) ([]entity.SecurityEvent, error)
	AppendSecurityEvent(ctx context.Context, event entity.SecurityEvent) error

	// Rate-limit stamps: epoch milliseconds of the last execution per action.
	LastRun(ctx context.Context, action string) (int64, error)
	SetLastRun(ctx context.Context, action string, epochMs int64) error
}
