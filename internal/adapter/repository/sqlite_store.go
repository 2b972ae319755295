package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"trazot/internal/domain/entity"
	"trazot/internal/infrastructure/events"
	"trazot/pkg/logger"
)

const (
	keyListings      = "listings"
	keyUsers         = "users"
	keyCurrentUser   = "currentUser"
	keyNews          = "news"
	keyDealers       = "dealers"
	keyPromotions    = "promotions"
	keySavedSearches = "savedSearches"
	keyMessages      = "messages"
	keySubscribers   = "newsletter"
	keyAdmin         = "adminCredential"
	keySecurity      = "securityEvents"

	rateLimitPrefix = "ratelimit:"

	securityLogCap = 100
)

// SQLiteStore keeps one row per collection key with the whole collection as a
// JSON blob, mirroring the original key-per-collection layout.
type SQLiteStore struct {
	db  *sql.DB
	bus *events.Bus
}

func NewSQLiteStore(dbPath string, bus *events.Bus) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db, bus: bus}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

// getJSON decodes the stored blob for key into dest. Corrupt JSON is treated
// the same as absence: dest is left untouched and false is returned, with a
// diagnostic log only. Callers supply the typed default.
func (s *SQLiteStore) getJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM collections WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logger.Warn("Corrupt JSON for key %q, falling back to default: %v", key, err)
		return false, nil
	}
	return true, nil
}

func (s *SQLiteStore) setJSON(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO collections (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw), time.Now().UTC())
	if err != nil {
		return err
	}

	if s.bus != nil {
		s.bus.Publish(events.Event{Type: events.TypeStoreChanged, Key: key, At: time.Now()})
	}
	return nil
}

func (s *SQLiteStore) Listings(ctx context.Context) ([]entity.Listing, error) {
	var listings []entity.Listing
	ok, err := s.getJSON(ctx, keyListings, &listings)
	if err != nil {
		return nil, err
	}
	if !ok {
		return SeedListings(), nil
	}
	return listings, nil
}

func (s *SQLiteStore) SaveListings(ctx context.Context, listings []entity.Listing) error {
	return s.setJSON(ctx, keyListings, listings)
}

func (s *SQLiteStore) Users(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if _, err := s.getJSON(ctx, keyUsers, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []entity.User{}
	}
	return users, nil
}

func (s *SQLiteStore) SaveUsers(ctx context.Context, users []entity.User) error {
	return s.setJSON(ctx, keyUsers, users)
}

func (s *SQLiteStore) CurrentUser(ctx context.Context) (*entity.User, error) {
	var user entity.User
	ok, err := s.getJSON(ctx, keyCurrentUser, &user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *SQLiteStore) SaveCurrentUser(ctx context.Context, user *entity.User) error {
	return s.setJSON(ctx, keyCurrentUser, user)
}

func (s *SQLiteStore) News(ctx context.Context) ([]entity.NewsArticle, error) {
	var news []entity.NewsArticle
	if _, err := s.getJSON(ctx, keyNews, &news); err != nil {
		return nil, err
	}
	if news == nil {
		news = []entity.NewsArticle{}
	}
	return news, nil
}

func (s *SQLiteStore) SaveNews(ctx context.Context, news []entity.NewsArticle) error {
	return s.setJSON(ctx, keyNews, news)
}

func (s *SQLiteStore) Dealers(ctx context.Context) ([]entity.Dealer, error) {
	var dealers []entity.Dealer
	if _, err := s.getJSON(ctx, keyDealers, &dealers); err != nil {
		return nil, err
	}
	if dealers == nil {
		dealers = []entity.Dealer{}
	}
	return dealers, nil
}

func (s *SQLiteStore) SaveDealers(ctx context.Context, dealers []entity.Dealer) error {
	return s.setJSON(ctx, keyDealers, dealers)
}

func (s *SQLiteStore) Promotions(ctx context.Context) ([]entity.ProjectPromotion, error) {
	var promotions []entity.ProjectPromotion
	if _, err := s.getJSON(ctx, keyPromotions, &promotions); err != nil {
		return nil, err
	}
	if promotions == nil {
		promotions = []entity.ProjectPromotion{}
	}
	return promotions, nil
}

func (s *SQLiteStore) SavePromotions(ctx context.Context, promotions []entity.ProjectPromotion) error {
	return s.setJSON(ctx, keyPromotions, promotions)
}

func (s *SQLiteStore) SavedSearches(ctx context.Context) ([]entity.SavedSearch, error) {
	var searches []entity.SavedSearch
	if _, err := s.getJSON(ctx, keySavedSearches, &searches); err != nil {
		return nil, err
	}
	if searches == nil {
		searches = []entity.SavedSearch{}
	}
	return searches, nil
}

func (s *SQLiteStore) SaveSavedSearches(ctx context.Context, searches []entity.SavedSearch) error {
	return s.setJSON(ctx, keySavedSearches, searches)
}

func (s *SQLiteStore) Messages(ctx context.Context) ([]entity.InternalMessage, error) {
	var messages []entity.InternalMessage
	if _, err := s.getJSON(ctx, keyMessages, &messages); err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []entity.InternalMessage{}
	}
	return messages, nil
}

func (s *SQLiteStore) SaveMessages(ctx context.Context, messages []entity.InternalMessage) error {
	return s.setJSON(ctx, keyMessages, messages)
}

func (s *SQLiteStore) Subscribers(ctx context.Context) ([]entity.NewsletterSubscriber, error) {
	var subscribers []entity.NewsletterSubscriber
	if _, err := s.getJSON(ctx, keySubscribers, &subscribers); err != nil {
		return nil, err
	}
	if subscribers == nil {
		subscribers = []entity.NewsletterSubscriber{}
	}
	return subscribers, nil
}

func (s *SQLiteStore) SaveSubscribers(ctx context.Context, subscribers []entity.NewsletterSubscriber) error {
	return s.setJSON(ctx, keySubscribers, subscribers)
}

func (s *SQLiteStore) AdminCredential(ctx context.Context) (*entity.AdminCredential, error) {
	var credential entity.AdminCredential
	ok, err := s.getJSON(ctx, keyAdmin, &credential)
	if err != nil {
		return nil, err
	}
	if !ok || credential.PasswordHash == "" {
		return nil, nil
	}
	return &credential, nil
}

func (s *SQLiteStore) SaveAdminCredential(ctx context.Context, credential *entity.AdminCredential) error {
	return s.setJSON(ctx, keyAdmin, credential)
}

func (s *SQLiteStore) SecurityEvents(ctx context.Context) ([]entity.SecurityEvent, error) {
	var evts []entity.SecurityEvent
	if _, err := s.getJSON(ctx, keySecurity, &evts); err != nil {
		return nil, err
	}
	if evts == nil {
		evts = []entity.SecurityEvent{}
	}
	return evts, nil
}

// AppendSecurityEvent prepends the event and caps the log at the most
// recent entries.
func (s *SQLiteStore) AppendSecurityEvent(ctx context.Context, event entity.SecurityEvent) error {
	evts, err := s.SecurityEvents(ctx)
	if err != nil {
		return err
	}

	evts = append([]entity.SecurityEvent{event}, evts...)
	if len(evts) > securityLogCap {
		evts = evts[:securityLogCap]
	}
	return s.setJSON(ctx, keySecurity, evts)
}

func (s *SQLiteStore) LastRun(ctx context.Context, action string) (int64, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM collections WHERE key = ?`, rateLimitPrefix+action).Scan(&raw)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	epochMs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logger.Warn("Corrupt rate-limit stamp for %q: %v", action, err)
		return 0, nil
	}
	return epochMs, nil
}

func (s *SQLiteStore) SetLastRun(ctx context.Context, action string, epochMs int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		rateLimitPrefix+action, strconv.FormatInt(epochMs, 10), time.Now().UTC())
	return err
}
