package entity

import (
	"strings"
	"time"
)

// GuestEmail marks the anonymous/demo identity. The guest is never written to
// the users registry, never debited, and is skipped by uniqueness checks.
const (
	GuestID    = "guest"
	GuestEmail = "guest@trazot.com"
)

type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Country string `json:"country"`
	Credits int    `json:"credits"`

	JoinedAt time.Time `json:"joined_at"`

	// One-shot flag for the exhaustion bonus; permanent once set and must
	// survive snapshot merges.
	HasReceivedExhaustionBonus bool `json:"has_received_exhaustion_bonus"`
}

func (u *User) IsGuest() bool {
	return u.ID == GuestID || strings.EqualFold(u.Email, GuestEmail)
}

func GuestUser() *User {
	return &User{
		ID:      GuestID,
		Name:    "Guest",
		Email:   GuestEmail,
		Country: "Pakistan",
	}
}
