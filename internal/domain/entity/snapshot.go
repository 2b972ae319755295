package entity

import (
	"time"
)

// Snapshot is the full serialized state exchanged with the remote relay.
// There are no partial updates: the relay stores and returns whole snapshots.
// Saved searches stay device-local and are deliberately not part of it.
type Snapshot struct {
	Listings   []Listing          `json:"listings"`
	Users      []User             `json:"users"`
	News       []NewsArticle      `json:"news"`
	Dealers    []Dealer           `json:"dealers"`
	Promotions []ProjectPromotion `json:"promotions"`
	Messages   []InternalMessage  `json:"messages"`

	LastUpdate time.Time `json:"lastUpdate"`
	Version    string    `json:"version"`
	Domain     string    `json:"domain"`
}

// SyncStatus is the tri-state outcome of a sync cycle.
type SyncStatus string

const (
	SyncStatusSynced SyncStatus = "synced"
	SyncStatusLocal  SyncStatus = "local"
	SyncStatusError  SyncStatus = "error"
)

// RelayHealth classifies the relay endpoint by reachability alone.
type RelayHealth struct {
	Status    string `json:"status"` // healthy, degraded, offline
	LatencyMs int64  `json:"latency_ms"`
}
