package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"trazot/internal/domain/entity"
	"trazot/internal/domain/repository"
	"trazot/pkg/errors"
)

const actionSendMessage = "send_message"

type MessageUseCase struct {
	store       repository.Store
	users       *UserUseCase
	limiter     Limiter
	broadcaster Broadcaster
}

func NewMessageUseCase(store repository.Store, users *UserUseCase, limiter Limiter, broadcaster Broadcaster) *MessageUseCase {
	return &MessageUseCase{
		store:       store,
		users:       users,
		limiter:     limiter,
		broadcaster: broadcaster,
	}
}

type SendMessageInput struct {
	ListingID  string
	ReceiverID string
	Text       string
}

// Send appends to the message log. The listing title and sender name are
// denormalized at send time so conversation views need no joins.
func (uc *MessageUseCase) Send(ctx context.Context, senderID string, input SendMessageInput) (*entity.InternalMessage, error) {
	if uc.limiter != nil {
		if ok, wait := uc.limiter.Allow(ctx, actionSendMessage); !ok {
			return nil, errors.RateLimited(actionSendMessage, wait)
		}
	}

	sender, err := uc.users.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.users.GetByID(ctx, input.ReceiverID); err != nil {
		return nil, errors.NotFound("Receiver", nil)
	}

	listingTitle := ""
	listings, err := uc.store.Listings(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load listings", err)
	}
	for _, l := range listings {
		if l.ID == input.ListingID {
			listingTitle = l.Title
			break
		}
	}
	if listingTitle == "" {
		return nil, errors.NotFound("Listing", nil)
	}

	message := entity.InternalMessage{
		ID:           uuid.New().String(),
		ListingID:    input.ListingID,
		ListingTitle: listingTitle,
		SenderID:     senderID,
		SenderName:   sender.Name,
		ReceiverID:   input.ReceiverID,
		Text:         input.Text,
		Timestamp:    time.Now(),
	}

	messages, err := uc.store.Messages(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load messages", err)
	}
	messages = append(messages, message)
	if err := uc.store.SaveMessages(ctx, messages); err != nil {
		return nil, errors.Internal("Failed to save messages", err)
	}

	if uc.broadcaster != nil {
		uc.broadcaster.Broadcast(ctx)
	}
	return &message, nil
}

// Conversations derives the inbox for a user, one entry per
// (counterpart, listing) pair, newest first.
func (uc *MessageUseCase) Conversations(ctx context.Context, userID string) ([]entity.Conversation, error) {
	messages, err := uc.store.Messages(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load messages", err)
	}

	type convKey struct {
		counterpart string
		listing     string
	}
	grouped := make(map[convKey]*entity.Conversation)

	for _, m := range messages {
		var counterpartID, counterpartName string
		switch userID {
		case m.SenderID:
			counterpartID = m.ReceiverID
		case m.ReceiverID:
			counterpartID = m.SenderID
			counterpartName = m.SenderName
		default:
			continue
		}

		key := convKey{counterpart: counterpartID, listing: m.ListingID}
		conv, ok := grouped[key]
		if !ok {
			conv = &entity.Conversation{
				CounterpartID: counterpartID,
				ListingID:     m.ListingID,
				ListingTitle:  m.ListingTitle,
			}
			grouped[key] = conv
		}
		if counterpartName != "" {
			conv.CounterpartName = counterpartName
		}
		if m.Timestamp.After(conv.LastTimestamp) {
			conv.LastTimestamp = m.Timestamp
			conv.LastMessage = m.Text
		}
	}

	conversations := make([]entity.Conversation, 0, len(grouped))
	for _, conv := range grouped {
		conversations = append(conversations, *conv)
	}
	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastTimestamp.After(conversations[j].LastTimestamp)
	})
	return conversations, nil
}

// Thread returns the messages between a user and a counterpart about one
// listing, oldest first.
func (uc *MessageUseCase) Thread(ctx context.Context, userID, counterpartID, listingID string) ([]entity.InternalMessage, error) {
	messages, err := uc.store.Messages(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load messages", err)
	}

	thread := make([]entity.InternalMessage, 0)
	for _, m := range messages {
		if m.ListingID != listingID {
			continue
		}
		if (m.SenderID == userID && m.ReceiverID == counterpartID) ||
			(m.SenderID == counterpartID && m.ReceiverID == userID) {
			thread = append(thread, m)
		}
	}
	sort.Slice(thread, func(i, j int) bool {
		return thread[i].Timestamp.Before(thread[j].Timestamp)
	})
	return thread, nil
}
