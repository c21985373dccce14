package services

import (
	"context"
	"testing"

	"family-backend/internal/apperrors"
	"family-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInbox struct {
	notifications []models.Notification
	living        int
}

func (f *fakeInbox) find(id int) *models.Notification {
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			return &f.notifications[i]
		}
	}
	return nil
}

func (f *fakeInbox) Create(ctx context.Context, n *models.Notification) error {
	n.ID = len(f.notifications) + 1
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeInbox) CreateForAll(ctx context.Context, senderID *models.MemberID, ntype, message string) (int64, error) {
	for i := 0; i < f.living; i++ {
		f.notifications = append(f.notifications, models.Notification{
			ID: len(f.notifications) + 1, RecipientID: models.MemberID(i + 1),
			SenderID: senderID, Type: ntype, Message: message,
		})
	}
	return int64(f.living), nil
}

func (f *fakeInbox) Get(ctx context.Context, id int) (*models.Notification, error) {
	if n := f.find(id); n != nil {
		cp := *n
		return &cp, nil
	}
	return nil, apperrors.NotFound("notification not found")
}

func (f *fakeInbox) ListByRecipient(ctx context.Context, recipientID models.MemberID) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeInbox) MarkRead(ctx context.Context, id int) error {
	n := f.find(id)
	if n == nil {
		return apperrors.NotFound("notification not found")
	}
	n.IsRead = true
	return nil
}

func (f *fakeInbox) MarkAllRead(ctx context.Context, recipientID models.MemberID) (int64, error) {
	var count int64
	for i := range f.notifications {
		if f.notifications[i].RecipientID == recipientID && !f.notifications[i].IsRead {
			f.notifications[i].IsRead = true
			count++
		}
	}
	return count, nil
}

func (f *fakeInbox) Delete(ctx context.Context, id int) error {
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("notification not found")
}

func (f *fakeInbox) CountUnread(ctx context.Context, recipientID models.MemberID) (int, error) {
	count := 0
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func TestMarkReadOwnerOnly(t *testing.T) {
	inbox := &fakeInbox{}
	require.NoError(t, inbox.Create(context.Background(), &models.Notification{RecipientID: 1, Message: "hi"}))
	svc := NewNotificationService(inbox)

	err := svc.MarkRead(context.Background(), 1, 2)
	assert.True(t, apperrors.IsNotFound(err), "someone else's notification must look absent")

	require.NoError(t, svc.MarkRead(context.Background(), 1, 1))
	unread, err := svc.UnreadCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, unread)
}

func TestMarkAllRead(t *testing.T) {
	inbox := &fakeInbox{}
	for i := 0; i < 3; i++ {
		require.NoError(t, inbox.Create(context.Background(), &models.Notification{RecipientID: 1, Message: "hi"}))
	}
	require.NoError(t, inbox.Create(context.Background(), &models.Notification{RecipientID: 2, Message: "other"}))
	svc := NewNotificationService(inbox)

	n, err := svc.MarkAllRead(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	otherUnread, _ := svc.UnreadCount(context.Background(), 2)
	assert.Equal(t, 1, otherUnread, "other inboxes stay untouched")
}

func TestDeleteNotificationPermissions(t *testing.T) {
	inbox := &fakeInbox{}
	require.NoError(t, inbox.Create(context.Background(), &models.Notification{RecipientID: 1}))
	require.NoError(t, inbox.Create(context.Background(), &models.Notification{RecipientID: 1}))
	svc := NewNotificationService(inbox)

	err := svc.Delete(context.Background(), 1, 2, false)
	assert.True(t, apperrors.IsNotFound(err))

	require.NoError(t, svc.Delete(context.Background(), 1, 1, false), "owner deletes own")
	require.NoError(t, svc.Delete(context.Background(), 2, 9, true), "admin deletes any")
}

func TestBroadcastFansOut(t *testing.T) {
	inbox := &fakeInbox{living: 3}
	svc := NewNotificationService(inbox)

	n, err := svc.Broadcast(context.Background(), nil, "reunion this weekend")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	_, err = svc.Broadcast(context.Background(), nil, "")
	assert.True(t, apperrors.IsValidation(err))
}
