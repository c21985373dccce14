package services

import (
	"context"
	"testing"
	"time"

	"family-backend/internal/apperrors"
	"family-backend/internal/models"
	"family-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	messages []models.ChatMessage
}

func (f *fakeChat) Create(ctx context.Context, msg *models.ChatMessage) error {
	msg.ID = len(f.messages) + 1
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeChat) Get(ctx context.Context, id int) (*models.ChatMessage, error) {
	for i := range f.messages {
		if f.messages[i].ID == id {
			cp := f.messages[i]
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("message not found")
}

func (f *fakeChat) ListRecent(ctx context.Context, memberID models.MemberID, limit int) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	for _, m := range f.messages {
		if m.ReceiverID == nil || *m.ReceiverID == memberID || m.SenderID == memberID {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (f *fakeChat) DeleteExpired(ctx context.Context) (int64, error) { return 0, nil }

type fakeHub struct {
	broadcasts []*models.ChatMessage
}

func (f *fakeHub) Broadcast(msg *models.ChatMessage) {
	f.broadcasts = append(f.broadcasts, msg)
}

func TestPostStampsExpiryAndBroadcasts(t *testing.T) {
	now := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	members := newFakeMembers(member(1, "Asha"))
	store := &fakeChat{}
	hub := &fakeHub{}
	svc := NewChatService(store, members, hub, timeutil.FixedClock{T: now})

	msg, err := svc.Post(context.Background(), 1, &models.SendChatMessageRequest{Body: "hello everyone"})
	require.NoError(t, err)

	assert.Equal(t, "Asha", msg.SenderName)
	assert.True(t, msg.ExpiresAt.Equal(now.Add(models.ChatTTL)))
	require.Len(t, hub.broadcasts, 1)
	assert.Equal(t, msg.ID, hub.broadcasts[0].ID)
}

func TestPostValidation(t *testing.T) {
	members := newFakeMembers(member(1, "Asha"))
	svc := NewChatService(&fakeChat{}, members, &fakeHub{}, timeutil.FixedClock{T: time.Now()})

	_, err := svc.Post(context.Background(), 1, &models.SendChatMessageRequest{})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Post(context.Background(), 1, &models.SendChatMessageRequest{
		Body: "hi", ReceiverID: ptr(models.MemberID(99)),
	})
	assert.True(t, apperrors.IsNotFound(err), "unknown receiver, got %v", err)

	_, err = svc.Post(context.Background(), 1, &models.SendChatMessageRequest{
		Body: "hi", ReplyToID: ptr(42),
	})
	assert.True(t, apperrors.IsNotFound(err), "unknown reply target, got %v", err)
}

func TestPostDirectedMessage(t *testing.T) {
	members := newFakeMembers(member(1, "Asha"), member(2, "Mohan"))
	store := &fakeChat{}
	svc := NewChatService(store, members, &fakeHub{}, timeutil.FixedClock{T: time.Now()})

	msg, err := svc.Post(context.Background(), 1, &models.SendChatMessageRequest{
		Body: "just for you", ReceiverID: ptr(models.MemberID(2)),
	})
	require.NoError(t, err)
	require.NotNil(t, msg.ReceiverID)
	assert.Equal(t, models.MemberID(2), *msg.ReceiverID)
}

func TestListClampsLimit(t *testing.T) {
	store := &fakeChat{}
	for i := 0; i < 150; i++ {
		_ = store.Create(context.Background(), &models.ChatMessage{SenderID: 1, Body: "x"})
	}
	svc := NewChatService(store, newFakeMembers(member(1, "Asha")), &fakeHub{}, timeutil.FixedClock{T: time.Now()})

	got, err := svc.List(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Len(t, got, 100)

	got, err = svc.List(context.Background(), 1, 500)
	require.NoError(t, err)
	assert.Len(t, got, 100)
}
