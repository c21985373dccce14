package services

import (
	"context"
	"fmt"

	"family-backend/internal/apperrors"
	"family-backend/internal/models"
	"family-backend/internal/timeutil"
)

type wishStore interface {
	Create(ctx context.Context, w *models.Wish) error
	ListByRecipient(ctx context.Context, recipientID models.MemberID, year int) ([]models.Wish, error)
	ListBySender(ctx context.Context, senderID models.MemberID) ([]models.Wish, error)
}

type notificationWriter interface {
	Create(ctx context.Context, n *models.Notification) error
}

type memberGetter interface {
	Get(ctx context.Context, id models.MemberID) (*models.FamilyMember, error)
}

// WishService sends yearly birthday wishes. The store's unique tuple keeps
// a sender to one wish per recipient per year.
type WishService struct {
	Wishes        wishStore
	Members       memberGetter
	Notifications notificationWriter
	Clock         timeutil.Clock
}

func NewWishService(wishes wishStore, members memberGetter, notifications notificationWriter, clock timeutil.Clock) *WishService {
	return &WishService{Wishes: wishes, Members: members, Notifications: notifications, Clock: clock}
}

// Send creates this year's wish from sender to recipient and notifies the
// recipient.
func (s *WishService) Send(ctx context.Context, senderID models.MemberID, req *models.CreateWishRequest) (*models.Wish, error) {
	if req.Message == "" {
		return nil, apperrors.Validation("message is required")
	}
	if req.RecipientID == senderID {
		return nil, apperrors.Validation("cannot send a wish to yourself")
	}

	recipient, err := s.Members.Get(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}
	if recipient.Deceased() {
		return nil, apperrors.Validation("member %d is deceased", req.RecipientID)
	}

	sender, err := s.Members.Get(ctx, senderID)
	if err != nil {
		return nil, err
	}

	w := &models.Wish{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Year:        s.Clock.Now().Year(),
		Message:     req.Message,
	}
	if err := s.Wishes.Create(ctx, w); err != nil {
		return nil, err
	}

	n := &models.Notification{
		RecipientID: req.RecipientID,
		SenderID:    &senderID,
		Type:        models.NotificationBirthdayWish,
		Message:     fmt.Sprintf("%s sent you a birthday wish: %s", sender.Name, req.Message),
	}
	if err := s.Notifications.Create(ctx, n); err != nil {
		return nil, err
	}

	return w, nil
}

// Received lists wishes a member got for the current year
func (s *WishService) Received(ctx context.Context, recipientID models.MemberID) ([]models.Wish, error) {
	return s.Wishes.ListByRecipient(ctx, recipientID, s.Clock.Now().Year())
}

// Sent lists wishes a member has sent
func (s *WishService) Sent(ctx context.Context, senderID models.MemberID) ([]models.Wish, error) {
	return s.Wishes.ListBySender(ctx, senderID)
}
