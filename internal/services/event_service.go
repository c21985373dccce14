package services

import (
	"context"
	"fmt"

	"family-backend/internal/apperrors"
	"family-backend/internal/models"
	"family-backend/internal/timeutil"
)

type eventStore interface {
	Create(ctx context.Context, e *models.Event) error
	Get(ctx context.Context, id int) (*models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Update(ctx context.Context, e *models.Event) error
	Delete(ctx context.Context, id int) error
}

type broadcastWriter interface {
	CreateForAll(ctx context.Context, senderID *models.MemberID, ntype, message string) (int64, error)
}

// EventService manages explicit calendar entries.
type EventService struct {
	Events        eventStore
	Notifications broadcastWriter
}

func NewEventService(events eventStore, notifications broadcastWriter) *EventService {
	return &EventService{Events: events, Notifications: notifications}
}

func validEventType(t string) bool {
	for _, v := range models.EventTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (s *EventService) validate(title, date, eventType string) error {
	if title == "" {
		return apperrors.Validation("title is required")
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return apperrors.Validation("invalid event date %q, want YYYY-MM-DD", date)
	}
	if !validEventType(eventType) {
		return apperrors.Validation("invalid event type %q", eventType)
	}
	return nil
}

// Create adds an event and notifies every member about it.
func (s *EventService) Create(ctx context.Context, createdBy int, req *models.CreateEventRequest) (*models.Event, error) {
	if req.EventType == "" {
		req.EventType = models.EventTypeEvent
	}
	if err := s.validate(req.Title, req.EventDate, req.EventType); err != nil {
		return nil, err
	}

	e := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
		EventType:   req.EventType,
		CreatedBy:   createdBy,
	}
	if err := s.Events.Create(ctx, e); err != nil {
		return nil, err
	}

	if _, err := s.Notifications.CreateForAll(ctx, nil, models.NotificationEvent,
		fmt.Sprintf("New event: %s on %s", e.Title, e.EventDate)); err != nil {
		return nil, err
	}
	return e, nil
}

// Get returns one event
func (s *EventService) Get(ctx context.Context, id int) (*models.Event, error) {
	return s.Events.Get(ctx, id)
}

// List returns all events ordered by date
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	return s.Events.List(ctx)
}

// Update edits an event. Only the creator or an admin may edit; the handler
// checks that with the loaded record.
func (s *EventService) Update(ctx context.Context, id int, req *models.UpdateEventRequest) (*models.Event, error) {
	e, err := s.Events.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = req.Description
	}
	if req.EventDate != nil {
		e.EventDate = *req.EventDate
	}
	if req.EventType != nil {
		e.EventType = *req.EventType
	}

	if err := s.validate(e.Title, e.EventDate, e.EventType); err != nil {
		return nil, err
	}
	if err := s.Events.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes an event
func (s *EventService) Delete(ctx context.Context, id int) error {
	return s.Events.Delete(ctx, id)
}
