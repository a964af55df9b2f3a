package services

import (
	"context"
	"fmt"
	"time"

	"talenttrack-backend/internal/models"
	"talenttrack-backend/internal/repository"

	"github.com/google/uuid"
)

// MessageService handles direct messaging between two users. Delivery is
// poll-based; there is no push channel.
type MessageService struct {
	messages repository.MessageRepository
}

// NewMessageService creates a new message service
func NewMessageService(messages repository.MessageRepository) *MessageService {
	return &MessageService{messages: messages}
}

// Send persists one immutable message from sender to receiver.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID, text string) (*models.Message, error) {
	msg := &models.Message{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		CreatedAt:  time.Now(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return msg, nil
}

// Thread returns the conversation between two users, oldest first,
// regardless of which side sent which message.
func (s *MessageService) Thread(ctx context.Context, userA, userB string) ([]*models.Message, error) {
	msgs, err := s.messages.Thread(ctx, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("failed to load thread: %w", err)
	}
	return msgs, nil
}
