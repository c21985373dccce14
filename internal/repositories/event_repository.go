package repositories

import (
	"context"

	"family-backend/internal/apperrors"
	"family-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository struct {
	DB *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{DB: db}
}

const eventColumns = `id, title, description, to_char(event_date, 'YYYY-MM-DD'), event_type, created_by, created_at, updated_at`

func scanEvent(row interface{ Scan(...interface{}) error }) (*models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.EventDate, &e.EventType, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a calendar event
func (r *EventRepository) Create(ctx context.Context, e *models.Event) error {
	query := `
		INSERT INTO events(title, description, event_date, event_type, created_by)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(ctx, query, e.Title, e.Description, e.EventDate, e.EventType, e.CreatedBy).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return translateErr(err, "event not found")
}

// Get retrieves an event by id
func (r *EventRepository) Get(ctx context.Context, id int) (*models.Event, error) {
	e, err := scanEvent(r.DB.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		return nil, translateErr(err, "event not found")
	}
	return e, nil
}

// List returns all events ordered by date
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY event_date`)
	if err != nil {
		return nil, translateErr(err, "")
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, translateErr(err, "")
		}
		events = append(events, *e)
	}
	return events, translateErr(rows.Err(), "")
}

// ListFrom returns events on or after the given date
func (r *EventRepository) ListFrom(ctx context.Context, fromDate string) ([]models.Event, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+eventColumns+` FROM events WHERE event_date >= $1 ORDER BY event_date`, fromDate)
	if err != nil {
		return nil, translateErr(err, "")
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, translateErr(err, "")
		}
		events = append(events, *e)
	}
	return events, translateErr(rows.Err(), "")
}

// Update writes the mutable fields of an event
func (r *EventRepository) Update(ctx context.Context, e *models.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, event_date = $4, event_type = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.DB.QueryRow(ctx, query, e.ID, e.Title, e.Description, e.EventDate, e.EventType).Scan(&e.UpdatedAt)
	return translateErr(err, "event not found")
}

// Delete removes an event
func (r *EventRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return translateErr(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("event not found")
	}
	return nil
}

// Count returns the total number of events
func (r *EventRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	return count, translateErr(err, "")
}
