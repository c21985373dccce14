package services

import (
	"context"
	"log"
	"time"

	"family-backend/internal/apperrors"
	"family-backend/internal/models"
	"family-backend/internal/timeutil"
)

type chatStore interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	Get(ctx context.Context, id int) (*models.ChatMessage, error)
	ListRecent(ctx context.Context, memberID models.MemberID, limit int) ([]models.ChatMessage, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// chatBroadcaster pushes a stored message to connected websocket clients.
type chatBroadcaster interface {
	Broadcast(msg *models.ChatMessage)
}

// ChatService handles the group chat: REST posting/listing plus realtime
// fan-out, with a 7-day message TTL swept in the background.
type ChatService struct {
	Messages chatStore
	Members  memberGetter
	Hub      chatBroadcaster
	Clock    timeutil.Clock
}

func NewChatService(messages chatStore, members memberGetter, hub chatBroadcaster, clock timeutil.Clock) *ChatService {
	return &ChatService{Messages: messages, Members: members, Hub: hub, Clock: clock}
}

// Post validates and stores a message, then pushes it to connected clients.
// A nil receiver is a group broadcast.
func (s *ChatService) Post(ctx context.Context, senderID models.MemberID, req *models.SendChatMessageRequest) (*models.ChatMessage, error) {
	if req.Body == "" {
		return nil, apperrors.Validation("message body is required")
	}

	sender, err := s.Members.Get(ctx, senderID)
	if err != nil {
		return nil, err
	}

	if req.ReceiverID != nil {
		if _, err := s.Members.Get(ctx, *req.ReceiverID); err != nil {
			return nil, err
		}
	}
	if req.ReplyToID != nil {
		if _, err := s.Messages.Get(ctx, *req.ReplyToID); err != nil {
			return nil, err
		}
	}

	now := s.Clock.Now()
	msg := &models.ChatMessage{
		SenderID:   senderID,
		SenderName: sender.Name,
		ReceiverID: req.ReceiverID,
		ReplyToID:  req.ReplyToID,
		Body:       req.Body,
		ExpiresAt:  now.Add(models.ChatTTL),
	}
	if err := s.Messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.Hub != nil {
		s.Hub.Broadcast(msg)
	}
	return msg, nil
}

// List returns the unexpired messages visible to a member
func (s *ChatService) List(ctx context.Context, memberID models.MemberID, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	return s.Messages.ListRecent(ctx, memberID, limit)
}

// StartSweeper deletes expired messages on an hourly tick until ctx ends.
func (s *ChatService) StartSweeper(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.Messages.DeleteExpired(ctx)
				if err != nil {
					log.Printf("Chat sweeper failed: %v", err)
					continue
				}
				if n > 0 {
					log.Printf("Chat sweeper removed %d expired message(s)", n)
				}
			}
		}
	}()
}
