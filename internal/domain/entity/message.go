package entity

import (
	"time"
)

// InternalMessage is append-only. Conversations are derived views keyed by
// (counterpart user id, listing id), not stored entities.
type InternalMessage struct {
	ID           string    `json:"id"`
	ListingID    string    `json:"listing_id"`
	ListingTitle string    `json:"listing_title"`
	SenderID     string    `json:"sender_id"`
	SenderName   string    `json:"sender_name"`
	ReceiverID   string    `json:"receiver_id"`
	Text         string    `json:"text"`
	Timestamp    time.Time `json:"timestamp"`
}

// Conversation is a derived view over the message log.
type Conversation struct {
	CounterpartID   string            `json:"counterpart_id"`
	CounterpartName string            `json:"counterpart_name"`
	ListingID       string            `json:"listing_id"`
	ListingTitle    string            `json:"listing_title"`
	LastMessage     string            `json:"last_message"`
	LastTimestamp   time.Time         `json:"last_timestamp"`
	Messages        []InternalMessage `json:"messages,omitempty"`
}
