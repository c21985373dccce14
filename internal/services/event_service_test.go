package services

import (
	"context"
	"testing"

	"family-backend/internal/apperrors"
	"family-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventStore struct {
	events []models.Event
}

func (f *fakeEventStore) Create(ctx context.Context, e *models.Event) error {
	e.ID = len(f.events) + 1
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeEventStore) Get(ctx context.Context, id int) (*models.Event, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			cp := f.events[i]
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("event not found")
}

func (f *fakeEventStore) List(ctx context.Context) ([]models.Event, error) {
	return f.events, nil
}

func (f *fakeEventStore) Update(ctx context.Context, e *models.Event) error {
	for i := range f.events {
		if f.events[i].ID == e.ID {
			f.events[i] = *e
			return nil
		}
	}
	return apperrors.NotFound("event not found")
}

func (f *fakeEventStore) Delete(ctx context.Context, id int) error {
	for i := range f.events {
		if f.events[i].ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("event not found")
}

type fakeBroadcasts struct {
	messages []string
}

func (f *fakeBroadcasts) CreateForAll(ctx context.Context, senderID *models.MemberID, ntype, message string) (int64, error) {
	f.messages = append(f.messages, message)
	return 3, nil
}

func TestCreateEventNotifiesEveryone(t *testing.T) {
	store := &fakeEventStore{}
	broadcasts := &fakeBroadcasts{}
	svc := NewEventService(store, broadcasts)

	e, err := svc.Create(context.Background(), 7, &models.CreateEventRequest{
		Title: "Family reunion", EventDate: "2026-09-10",
	})
	require.NoError(t, err)
	assert.Equal(t, models.EventTypeEvent, e.EventType, "empty type defaults to event")
	assert.Equal(t, 7, e.CreatedBy)

	require.Len(t, broadcasts.messages, 1)
	assert.Contains(t, broadcasts.messages[0], "Family reunion")
	assert.Contains(t, broadcasts.messages[0], "2026-09-10")
}

func TestCreateEventValidation(t *testing.T) {
	svc := NewEventService(&fakeEventStore{}, &fakeBroadcasts{})

	tests := []struct {
		name string
		req  models.CreateEventRequest
	}{
		{"missing title", models.CreateEventRequest{EventDate: "2026-09-10"}},
		{"bad date", models.CreateEventRequest{Title: "x", EventDate: "10/09/2026"}},
		{"bad type", models.CreateEventRequest{Title: "x", EventDate: "2026-09-10", EventType: "party"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, &tt.req)
			assert.True(t, apperrors.IsValidation(err), "got %v", err)
		})
	}
}

func TestUpdateEventRevalidates(t *testing.T) {
	store := &fakeEventStore{}
	svc := NewEventService(store, &fakeBroadcasts{})

	e, err := svc.Create(context.Background(), 1, &models.CreateEventRequest{
		Title: "Picnic", EventDate: "2026-09-10",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), e.ID, &models.UpdateEventRequest{EventDate: ptr("not-a-date")})
	assert.True(t, apperrors.IsValidation(err))

	got, err := svc.Update(context.Background(), e.ID, &models.UpdateEventRequest{Title: ptr("Beach picnic")})
	require.NoError(t, err)
	assert.Equal(t, "Beach picnic", got.Title)
	assert.Equal(t, "2026-09-10", got.EventDate)
}
