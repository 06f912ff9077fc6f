package services

import (
	"context"
	"time"

	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/app/repositories"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
)

const defaultMessagePageSize = 100

// MessageService handles conversations and message exchange
type MessageService struct {
	messageRepo *repositories.MessageRepository
	userRepo    *repositories.UserRepository
}

// NewMessageService creates a new MessageService
func NewMessageService(repos *repositories.Repositories) *MessageService {
	return &MessageService{
		messageRepo: repos.MessageRepository,
		userRepo:    repos.UserRepository,
	}
}

// StartConversation opens a conversation between the caller and another user.
// An existing conversation between the pair is returned instead of creating a
// duplicate.
func (s *MessageService) StartConversation(ctx context.Context, userID, participantID int64) (*models.Conversation, error) {
	if userID == participantID {
		return nil, apperrors.NewBadRequestError("cannot start a conversation with yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, participantID); err != nil {
		return nil, err
	}

	conversationID, err := s.messageRepo.FindConversation(ctx, userID, participantID)
	if err != nil {
		return nil, err
	}

	if conversationID == 0 {
		conversationID, err = s.messageRepo.CreateConversation(ctx, userID, participantID)
		if err != nil {
			return nil, err
		}
	}

	conversations, err := s.messageRepo.GetConversations(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, conv := range conversations {
		if conv.ID == conversationID {
			return conv, nil
		}
	}

	return s.messageRepo.GetConversationByID(ctx, conversationID)
}

// ListConversations returns the caller's conversations, latest activity first
func (s *MessageService) ListConversations(ctx context.Context, userID int64) ([]*models.Conversation, error) {
	return s.messageRepo.GetConversations(ctx, userID)
}

// Send posts a message into a conversation the caller participates in
func (s *MessageService) Send(ctx context.Context, conversationID, senderID int64, content string) (*models.Message, error) {
	if err := s.requireParticipant(ctx, conversationID, senderID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	}

	if _, err := s.messageRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// Messages lists a conversation's messages in chronological order. after
// limits the result to messages newer than the given time, which keeps
// polling cheap.
func (s *MessageService) Messages(ctx context.Context, conversationID, userID int64, after, before *time.Time, limit int) ([]*models.Message, error) {
	if err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > defaultMessagePageSize {
		limit = defaultMessagePageSize
	}

	return s.messageRepo.GetMessages(ctx, conversationID, after, before, limit)
}

// requireParticipant maps a missing conversation to not-found and a
// non-participant to permission denied
func (s *MessageService) requireParticipant(ctx context.Context, conversationID, userID int64) error {
	exists, err := s.messageRepo.ConversationExists(ctx, conversationID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrConversationNotFound
	}

	participant, err := s.messageRepo.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return err
	}
	if !participant {
		return apperrors.ErrNotParticipant
	}
	return nil
}
