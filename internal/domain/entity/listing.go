package entity

import (
	"time"
)

type ListingStatus string

const (
	StatusPending  ListingStatus = "pending"
	StatusActive   ListingStatus = "active"
	StatusRejected ListingStatus = "rejected"
	StatusSold     ListingStatus = "sold"
	StatusTrashed  ListingStatus = "trashed"
)

const (
	CategoryProperties  = "properties"
	CategoryVehicles    = "vehicles"
	CategoryElectronics = "electronics"
	CategoryGeneral     = "general"
)

const (
	PurposeSale   = "sale"
	PurposeRent   = "rent"
	PurposeWanted = "wanted"
)

type Location struct {
	Country string  `json:"country"`
	City    string  `json:"city"`
	Society string  `json:"society,omitempty"`
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
}

type Listing struct {
	ID           string                 `json:"id"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Price        int                    `json:"price"`
	Currency     string                 `json:"currency"`
	Category     string                 `json:"category"`
	Purpose      string                 `json:"purpose"`
	Images       []string               `json:"images"`
	Location     Location               `json:"location"`
	Status       ListingStatus          `json:"status"`
	UserID       string                 `json:"user_id"`
	ContactName  string                 `json:"contact_name,omitempty"`
	ContactPhone string                 `json:"contact_phone,omitempty"`
	ContactEmail string                 `json:"contact_email,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
	Featured     bool                   `json:"featured"`
	IsVerified   bool                   `json:"is_verified"`

	CreatedAt time.Time `json:"created_at"`
	// StatusChangedAt is the reconciliation freshness key. It is re-stamped on
	// every moderation/trash/restore event so that event wins the next merge.
	StatusChangedAt time.Time `json:"status_changed_at"`
}

// legalTransitions holds the allowed lifecycle moves. Creation always enters
// at pending; purge is physical removal, not a status.
var legalTransitions = map[ListingStatus][]ListingStatus{
	StatusPending:  {StatusActive, StatusRejected, StatusTrashed},
	StatusActive:   {StatusSold, StatusTrashed},
	StatusRejected: {StatusTrashed},
	StatusSold:     {StatusTrashed},
	StatusTrashed:  {StatusPending},
}

func (s ListingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusRejected, StatusSold, StatusTrashed:
		return true
	}
	return false
}

// CanTransition reports whether a listing may move from s to next.
func (s ListingStatus) CanTransition(next ListingStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
