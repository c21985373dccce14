package services

import (
	"context"

	"family-backend/internal/apperrors"
	"family-backend/internal/models"
)

type notificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	CreateForAll(ctx context.Context, senderID *models.MemberID, ntype, message string) (int64, error)
	Get(ctx context.Context, id int) (*models.Notification, error)
	ListByRecipient(ctx context.Context, recipientID models.MemberID) ([]models.Notification, error)
	MarkRead(ctx context.Context, id int) error
	MarkAllRead(ctx context.Context, recipientID models.MemberID) (int64, error)
	Delete(ctx context.Context, id int) error
	CountUnread(ctx context.Context, recipientID models.MemberID) (int, error)
}

// NotificationService manages the read/unread inbox per family member.
type NotificationService struct {
	Notifications notificationStore
}

func NewNotificationService(notifications notificationStore) *NotificationService {
	return &NotificationService{Notifications: notifications}
}

// List returns a member's notifications, newest first
func (s *NotificationService) List(ctx context.Context, recipientID models.MemberID) ([]models.Notification, error) {
	return s.Notifications.ListByRecipient(ctx, recipientID)
}

// MarkRead flips a single notification, only for its recipient.
func (s *NotificationService) MarkRead(ctx context.Context, id int, recipientID models.MemberID) error {
	n, err := s.Notifications.Get(ctx, id)
	if err != nil {
		return err
	}
	if n.RecipientID != recipientID {
		return apperrors.NotFound("notification not found")
	}
	return s.Notifications.MarkRead(ctx, id)
}

// MarkAllRead flips every unread notification for a recipient
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID models.MemberID) (int64, error) {
	return s.Notifications.MarkAllRead(ctx, recipientID)
}

// Delete removes a notification. Owners delete their own; admins delete any.
func (s *NotificationService) Delete(ctx context.Context, id int, recipientID models.MemberID, isAdmin bool) error {
	n, err := s.Notifications.Get(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && n.RecipientID != recipientID {
		return apperrors.NotFound("notification not found")
	}
	return s.Notifications.Delete(ctx, id)
}

// Broadcast fans an admin message out to every living family member.
func (s *NotificationService) Broadcast(ctx context.Context, senderID *models.MemberID, message string) (int64, error) {
	if message == "" {
		return 0, apperrors.Validation("message is required")
	}
	return s.Notifications.CreateForAll(ctx, senderID, models.NotificationAdminBroadcast, message)
}

// UnreadCount returns the badge count for a member
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID models.MemberID) (int, error) {
	return s.Notifications.CountUnread(ctx, recipientID)
}
