package models

import "time"

// Event types for explicit calendar entries
const (
	EventTypeEvent   = "event"
	EventTypeHoliday = "holiday"
	EventTypeOther   = "other"
)

var EventTypes = []string{EventTypeEvent, EventTypeHoliday, EventTypeOther}

type Event struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	EventDate   string    `json:"event_date"`
	EventType   string    `json:"event_type"`
	CreatedBy   int       `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateEventRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	EventDate   string  `json:"event_date"`
	EventType   string  `json:"event_type"`
}

type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	EventDate   *string `json:"event_date"`
	EventType   *string `json:"event_type"`
}

// CalendarEntry is one row of the unified calendar feed: explicit events
// merged with projected birthdays and anniversaries, ordered by date.
type CalendarEntry struct {
	Date      string    `json:"date"`
	Type      string    `json:"type"` // birthday, anniversary, event, holiday, other
	Title     string    `json:"title"`
	DaysUntil int       `json:"days_until"`
	MemberID  *MemberID `json:"member_id,omitempty"`
	EventID   *int      `json:"event_id,omitempty"`
}

// Calendar feed entry types beyond the explicit event types
const (
	CalendarTypeBirthday    = "birthday"
	CalendarTypeAnniversary = "anniversary"
)
