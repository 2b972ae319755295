package entity

import (
	"time"
)

// AdminCredential is a singleton: at most one per deployment. The password is
// stored as a bcrypt hash; the recovery key is generated at setup and shown
// exactly once.
type AdminCredential struct {
	PasswordHash string    `json:"password_hash"`
	RecoveryKey  string    `json:"recovery_key"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SecurityEvent records an advisory security-relevant occurrence, such as a
// rate-limit trip. The log is capped at the most recent 100 entries.
type SecurityEvent struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
