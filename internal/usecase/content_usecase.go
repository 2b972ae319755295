package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"trazot/internal/domain/entity"
	"trazot/internal/domain/repository"
	"trazot/pkg/errors"
)

// ContentUseCase covers admin-managed content: news articles, dealers,
// project promotions, plus user-owned saved searches and the newsletter
// list. All saves are replace-or-append by id.
type ContentUseCase struct {
	store       repository.Store
	optimizer   ContentOptimizer
	broadcaster Broadcaster
}

func NewContentUseCase(store repository.Store, contentOptimizer ContentOptimizer, broadcaster Broadcaster) *ContentUseCase {
	return &ContentUseCase{
		store:       store,
		optimizer:   contentOptimizer,
		broadcaster: broadcaster,
	}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

func validNewsCategory(category string) bool {
	switch category {
	case entity.NewsCategoryMarket, entity.NewsCategoryGuides,
		entity.NewsCategoryAnnouncements, entity.NewsCategoryCommunity:
		return true
	}
	return false
}

type CreateArticleInput struct {
	Title           string
	Content         string
	MetaDescription string
	Tags            []string
	Image           string
	Category        string
	Author          string
}

func (uc *ContentUseCase) CreateArticle(ctx context.Context, input CreateArticleInput) (*entity.NewsArticle, error) {
	if !validNewsCategory(input.Category) {
		return nil, errors.BadRequest("Unknown news category", nil)
	}

	title, content := input.Title, input.Content
	if uc.optimizer != nil {
		optimized := uc.optimizer.Optimize(ctx, title, content, input.Category)
		title, content = optimized.OptimizedTitle, optimized.OptimizedBody
	}

	article := entity.NewsArticle{
		ID:              uuid.New().String(),
		Title:           title,
		Slug:            slugify(title),
		Content:         content,
		MetaDescription: input.MetaDescription,
		Tags:            input.Tags,
		Image:           input.Image,
		Category:        input.Category,
		Author:          input.Author,
		PublishedAt:     time.Now(),
	}

	news, err := uc.store.News(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load news", err)
	}
	news = upsertByID(news, article, func(a entity.NewsArticle) string { return a.ID })
	if err := uc.store.SaveNews(ctx, news); err != nil {
		return nil, errors.Internal("Failed to save news", err)
	}

	uc.notify(ctx)
	return &article, nil
}

func (uc *ContentUseCase) ListNews(ctx context.Context) ([]entity.NewsArticle, error) {
	return uc.store.News(ctx)
}

func (uc *ContentUseCase) GetArticleBySlug(ctx context.Context, slug string) (*entity.NewsArticle, error) {
	news, err := uc.store.News(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load news", err)
	}
	for i := range news {
		if news[i].Slug == slug {
			return &news[i], nil
		}
	}
	return nil, errors.NotFound("Article", nil)
}

func (uc *ContentUseCase) DeleteArticle(ctx context.Context, id string) error {
	news, err := uc.store.News(ctx)
	if err != nil {
		return errors.Internal("Failed to load news", err)
	}

	kept, found := removeByID(news, id, func(a entity.NewsArticle) string { return a.ID })
	if !found {
		return errors.NotFound("Article", nil)
	}
	if err := uc.store.SaveNews(ctx, kept); err != nil {
		return errors.Internal("Failed to save news", err)
	}

	uc.notify(ctx)
	return nil
}

type CreateDealerInput struct {
	Name        string
	Phone       string
	City        string
	Country     string
	Specialties []string
}

func (uc *ContentUseCase) CreateDealer(ctx context.Context, input CreateDealerInput) (*entity.Dealer, error) {
	dealer := entity.Dealer{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Phone:       input.Phone,
		City:        input.City,
		Country:     input.Country,
		Specialties: input.Specialties,
		CreatedAt:   time.Now(),
	}

	dealers, err := uc.store.Dealers(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load dealers", err)
	}
	dealers = upsertByID(dealers, dealer, func(d entity.Dealer) string { return d.ID })
	if err := uc.store.SaveDealers(ctx, dealers); err != nil {
		return nil, errors.Internal("Failed to save dealers", err)
	}

	uc.notify(ctx)
	return &dealer, nil
}

func (uc *ContentUseCase) ListDealers(ctx context.Context) ([]entity.Dealer, error) {
	return uc.store.Dealers(ctx)
}

func (uc *ContentUseCase) DeleteDealer(ctx context.Context, id string) error {
	dealers, err := uc.store.Dealers(ctx)
	if err != nil {
		return errors.Internal("Failed to load dealers", err)
	}

	kept, found := removeByID(dealers, id, func(d entity.Dealer) string { return d.ID })
	if !found {
		return errors.NotFound("Dealer", nil)
	}
	if err := uc.store.SaveDealers(ctx, kept); err != nil {
		return errors.Internal("Failed to save dealers", err)
	}

	uc.notify(ctx)
	return nil
}

type CreatePromotionInput struct {
	Title     string
	Developer string
	City      string
	Image     string
}

func (uc *ContentUseCase) CreatePromotion(ctx context.Context, input CreatePromotionInput) (*entity.ProjectPromotion, error) {
	promotion := entity.ProjectPromotion{
		ID:        uuid.New().String(),
		Title:     input.Title,
		Developer: input.Developer,
		City:      input.City,
		Image:     input.Image,
		CreatedAt: time.Now(),
	}

	promotions, err := uc.store.Promotions(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load promotions", err)
	}
	promotions = upsertByID(promotions, promotion, func(p entity.ProjectPromotion) string { return p.ID })
	if err := uc.store.SavePromotions(ctx, promotions); err != nil {
		return nil, errors.Internal("Failed to save promotions", err)
	}

	uc.notify(ctx)
	return &promotion, nil
}

func (uc *ContentUseCase) ListPromotions(ctx context.Context) ([]entity.ProjectPromotion, error) {
	return uc.store.Promotions(ctx)
}

func (uc *ContentUseCase) DeletePromotion(ctx context.Context, id string) error {
	promotions, err := uc.store.Promotions(ctx)
	if err != nil {
		return errors.Internal("Failed to load promotions", err)
	}

	kept, found := removeByID(promotions, id, func(p entity.ProjectPromotion) string { return p.ID })
	if !found {
		return errors.NotFound("Promotion", nil)
	}
	if err := uc.store.SavePromotions(ctx, kept); err != nil {
		return errors.Internal("Failed to save promotions", err)
	}

	uc.notify(ctx)
	return nil
}

type CreateSavedSearchInput struct {
	Name     string
	Query    string
	Category string
	Country  string
}

// Saved searches are device-local and never leave the store.
func (uc *ContentUseCase) CreateSavedSearch(ctx context.Context, userID string, input CreateSavedSearchInput) (*entity.SavedSearch, error) {
	search := entity.SavedSearch{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      input.Name,
		Query:     input.Query,
		Category:  input.Category,
		Country:   input.Country,
		CreatedAt: time.Now(),
	}

	searches, err := uc.store.SavedSearches(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load saved searches", err)
	}
	searches = upsertByID(searches, search, func(s entity.SavedSearch) string { return s.ID })
	if err := uc.store.SaveSavedSearches(ctx, searches); err != nil {
		return nil, errors.Internal("Failed to save saved searches", err)
	}
	return &search, nil
}

func (uc *ContentUseCase) ListSavedSearches(ctx context.Context, userID string) ([]entity.SavedSearch, error) {
	searches, err := uc.store.SavedSearches(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load saved searches", err)
	}

	mine := make([]entity.SavedSearch, 0)
	for _, s := range searches {
		if s.UserID == userID {
			mine = append(mine, s)
		}
	}
	return mine, nil
}

func (uc *ContentUseCase) DeleteSavedSearch(ctx context.Context, userID, id string) error {
	searches, err := uc.store.SavedSearches(ctx)
	if err != nil {
		return errors.Internal("Failed to load saved searches", err)
	}

	for i := range searches {
		if searches[i].ID == id && searches[i].UserID != userID {
			return errors.Forbidden("Only the owner may delete this search", nil)
		}
	}
	kept, found := removeByID(searches, id, func(s entity.SavedSearch) string { return s.ID })
	if !found {
		return errors.NotFound("Saved search", nil)
	}
	return uc.store.SaveSavedSearches(ctx, kept)
}

func (uc *ContentUseCase) Subscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	subscribers, err := uc.store.Subscribers(ctx)
	if err != nil {
		return errors.Internal("Failed to load subscribers", err)
	}
	for _, s := range subscribers {
		if strings.EqualFold(s.Email, email) {
			return errors.Conflict("Already subscribed")
		}
	}

	subscribers = append(subscribers, entity.NewsletterSubscriber{
		Email:        email,
		SubscribedAt: time.Now(),
	})
	return uc.store.SaveSubscribers(ctx, subscribers)
}

func (uc *ContentUseCase) notify(ctx context.Context) {
	if uc.broadcaster != nil {
		uc.broadcaster.Broadcast(ctx)
	}
}

// upsertByID replaces the item with a matching id or appends it.
func upsertByID[T any](items []T, item T, id func(T) string) []T {
	key := id(item)
	for i := range items {
		if id(items[i]) == key {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

func removeByID[T any](items []T, key string, id func(T) string) ([]T, bool) {
	kept := make([]T, 0, len(items))
	found := false
	for _, item := range items {
		if id(item) == key {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	return kept, found
}
