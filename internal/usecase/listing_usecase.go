package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"trazot/internal/domain/entity"
	"trazot/internal/domain/repository"
	"trazot/pkg/errors"
	"trazot/pkg/utils"
)

type ListingUseCase struct {
	store       repository.Store
	credits     *CreditUseCase
	optimizer   ContentOptimizer
	broadcaster Broadcaster
}

func NewListingUseCase(store repository.Store, credits *CreditUseCase, contentOptimizer ContentOptimizer, broadcaster Broadcaster) *ListingUseCase {
	return &ListingUseCase{
		store:       store,
		credits:     credits,
		optimizer:   contentOptimizer,
		broadcaster: broadcaster,
	}
}

type CreateListingInput struct {
	Title        string
	Description  string
	Price        int
	Currency     string
	Category     string
	Purpose      string
	Images       []string
	Location     entity.Location
	ContactName  string
	ContactPhone string
	ContactEmail string
	Details      map[string]interface{}
	Featured     bool
}

type ListingFilter struct {
	Category string
	Purpose  string
	Country  string
	City     string
	MinPrice int
	MaxPrice int
	Query    string
}

// Viewer identifies who is asking. Trashed listings are visible only to the
// owner or to an authenticated admin session.
type Viewer struct {
	UserID string
	Admin  bool
}

// Owns reports whether the viewer is the listing's owner. The guest sentinel
// is shared by every anonymous session, so it never counts as an owner.
func (v Viewer) Owns(l *entity.Listing) bool {
	return v.UserID != "" && v.UserID != entity.GuestID && v.UserID == l.UserID
}

// newListingID builds a category-prefixed id with a random suffix.
func newListingID(category string) string {
	prefix := "gen"
	if len(category) >= 3 {
		prefix = strings.ToLower(category[:3])
	}
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return prefix + "-" + suffix
}

// CreateListing debits the ledger first; if the debit fails the listing is
// never persisted. New listings always enter the lifecycle at pending.
func (uc *ListingUseCase) CreateListing(ctx context.Context, actorID string, input CreateListingInput) (*entity.Listing, error) {
	if actorID == "" {
		actorID = entity.GuestID
	}

	cost := ListingCost(input.Location.Country, input.Featured)
	if err := uc.credits.Debit(ctx, actorID, cost); err != nil {
		return nil, err
	}

	title, description := input.Title, input.Description
	if uc.optimizer != nil {
		optimized := uc.optimizer.Optimize(ctx, title, description, input.Category)
		title, description = optimized.OptimizedTitle, optimized.OptimizedBody
	}

	currency := input.Currency
	if currency == "" {
		currency = "PKR"
	}

	now := time.Now()
	listing := entity.Listing{
		ID:           newListingID(input.Category),
		Title:        title,
		Description:  description,
		Price:        input.Price,
		Currency:     currency,
		Category:     input.Category,
		Purpose:      input.Purpose,
		Images:       input.Images,
		Location:     input.Location,
		Status:       entity.StatusPending,
		UserID:       actorID,
		ContactName:  input.ContactName,
		ContactPhone: input.ContactPhone,
		ContactEmail: input.ContactEmail,
		Details:      input.Details,
		Featured:     input.Featured,

		CreatedAt:       now,
		StatusChangedAt: now,
	}

	listings, err := uc.store.Listings(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load listings", err)
	}
	listings = append(listings, listing)
	if err := uc.store.SaveListings(ctx, listings); err != nil {
		return nil, errors.Internal("Failed to save listing", err)
	}

	uc.notify(ctx)
	return &listing, nil
}

// GetListing applies the trash visibility rule: a trashed listing reads as
// not-found for everyone but its owner or an admin, regardless of whether
// the record physically exists.
func (uc *ListingUseCase) GetListing(ctx context.Context, id string, viewer Viewer) (*entity.Listing, error) {
	listings, err := uc.store.Listings(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load listings", err)
	}

	for i := range listings {
		if listings[i].ID != id {
			continue
		}
		if listings[i].Status == entity.StatusTrashed && !viewer.Admin && !viewer.Owns(&listings[i]) {
			return nil, errors.NotFound("Listing", nil)
		}
		return &listings[i], nil
	}
	return nil, errors.NotFound("Listing", nil)
}

// Search covers active listings only.
func (uc *ListingUseCase) Search(ctx context.Context, filter ListingFilter, pagination utils.PaginationParams) ([]entity.Listing, int64, error) {
	listings, err := uc.store.Listings(ctx)
	if err != nil {
		return nil, 0, errors.Internal("Failed to load listings", err)
	}

	matched := make([]entity.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Status != entity.StatusActive {
			continue
		}
		if filter.Category != "" && l.Category != filter.Category {
			continue
		}
		if filter.Purpose != "" && l.Purpose != filter.Purpose {
			continue
		}
		if filter.Country != "" && !strings.EqualFold(l.Location.Country, filter.Country) {
			continue
		}
		if filter.City != "" && !strings.EqualFold(l.Location.City, filter.City) {
			continue
		}
		if filter.MinPrice > 0 && l.Price < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && l.Price > filter.MaxPrice {
			continue
		}
		if filter.Query != "" {
			q := strings.ToLower(filter.Query)
			if !strings.Contains(strings.ToLower(l.Title), q) && !strings.Contains(strings.ToLower(l.Description), q) {
				continue
			}
		}
		matched = append(matched, l)
	}

	total := int64(len(matched))
	start := pagination.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pagination.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// ListByOwner returns everything a user posted, trashed included.
func (uc *ListingUseCase) ListByOwner(ctx context.Context, ownerID string) ([]entity.Listing, error) {
	listings, err := uc.store.Listings(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load listings", err)
	}

	mine := make([]entity.Listing, 0)
	for _, l := range listings {
		if l.UserID == ownerID {
			mine = append(mine, l)
		}
	}
	return mine, nil
}

// ListPending returns the moderation queue.
func (uc *ListingUseCase) ListPending(ctx context.Context) ([]entity.Listing, error) {
	listings, err := uc.store.Listings(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load listings", err)
	}

	pending := make([]entity.Listing, 0)
	for _, l := range listings {
		if l.Status == entity.StatusPending {
			pending = append(pending, l)
		}
	}
	return pending, nil
}

// Approve moves a pending listing to active. Admin only (enforced at the
// router).
func (uc *ListingUseCase) Approve(ctx context.Context, id string) (*entity.Listing, error) {
	return uc.transition(ctx, id, entity.StatusActive, Viewer{Admin: true})
}

// Reject moves a pending listing to rejected. There is no resubmit
// transition: a rejected listing can only be replaced by a new one.
func (uc *ListingUseCase) Reject(ctx context.Context, id string) (*entity.Listing, error) {
	return uc.transition(ctx, id, entity.StatusRejected, Viewer{Admin: true})
}

// MarkSold is an owner action on an active listing.
func (uc *ListingUseCase) MarkSold(ctx context.Context, id string, viewer Viewer) (*entity.Listing, error) {
	return uc.transition(ctx, id, entity.StatusSold, viewer)
}

// Trash soft-deletes from any state. Owner or admin only.
func (uc *ListingUseCase) Trash(ctx context.Context, id string, viewer Viewer) (*entity.Listing, error) {
	return uc.transition(ctx, id, entity.StatusTrashed, viewer)
}

// Restore returns a trashed listing to the moderation queue.
func (uc *ListingUseCase) Restore(ctx context.Context, id string, viewer Viewer) (*entity.Listing, error) {
	return uc.transition(ctx, id, entity.StatusPending, viewer)
}

func (uc *ListingUseCase) transition(ctx context.Context, id string, next entity.ListingStatus, viewer Viewer) (*entity.Listing, error) {
	listings, err := uc.store.Listings(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load listings", err)
	}

	idx := -1
	for i := range listings {
		if listings[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errors.NotFound("Listing", nil)
	}

	if !viewer.Admin && !viewer.Owns(&listings[idx]) {
		return nil, errors.Forbidden("Only the owner may modify this listing", nil)
	}
	if !listings[idx].Status.CanTransition(next) {
		return nil, errors.IllegalTransition(string(listings[idx].Status), string(next))
	}

	listings[idx].Status = next
	// Re-stamping the freshness key makes this status change win the next
	// reconciliation.
	listings[idx].StatusChangedAt = time.Now()

	if err := uc.store.SaveListings(ctx, listings); err != nil {
		return nil, errors.Internal("Failed to save listings", err)
	}

	uc.notify(ctx)
	result := listings[idx]
	return &result, nil
}

// Purge physically removes a listing. Admin only, irreversible.
func (uc *ListingUseCase) Purge(ctx context.Context, id string) error {
	listings, err := uc.store.Listings(ctx)
	if err != nil {
		return errors.Internal("Failed to load listings", err)
	}

	kept := make([]entity.Listing, 0, len(listings))
	found := false
	for _, l := range listings {
		if l.ID == id {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return errors.NotFound("Listing", nil)
	}

	if err := uc.store.SaveListings(ctx, kept); err != nil {
		return errors.Internal("Failed to save listings", err)
	}

	uc.notify(ctx)
	return nil
}

func (uc *ListingUseCase) notify(ctx context.Context) {
	if uc.broadcaster != nil {
		uc.broadcaster.Broadcast(ctx)
	}
}
