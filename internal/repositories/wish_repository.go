package repositories

import (
	"context"
	"errors"

	"family-backend/internal/apperrors"
	"family-backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WishRepository struct {
	DB *pgxpool.Pool
}

func NewWishRepository(db *pgxpool.Pool) *WishRepository {
	return &WishRepository{DB: db}
}

// Create inserts a wish. The (sender, recipient, year) unique index is the
// integrity guard: a duplicate comes back as a conflict, never an overwrite.
func (r *WishRepository) Create(ctx context.Context, w *models.Wish) error {
	query := `
		INSERT INTO wishes(sender_id, recipient_id, year, message)
		VALUES($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(ctx, query, w.SenderID, w.RecipientID, w.Year, w.Message).
		Scan(&w.ID, &w.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperrors.Conflict("wish already sent to member %d for %d", w.RecipientID, w.Year)
	}
	return translateErr(err, "wish not found")
}

// ListByRecipient returns wishes received by a member for a given year
func (r *WishRepository) ListByRecipient(ctx context.Context, recipientID models.MemberID, year int) ([]models.Wish, error) {
	query := `
		SELECT id, sender_id, recipient_id, year, message, created_at
		FROM wishes
		WHERE recipient_id = $1 AND year = $2
		ORDER BY created_at
	`
	rows, err := r.DB.Query(ctx, query, recipientID, year)
	if err != nil {
		return nil, translateErr(err, "")
	}
	defer rows.Close()

	var wishes []models.Wish
	for rows.Next() {
		var w models.Wish
		if err := rows.Scan(&w.ID, &w.SenderID, &w.RecipientID, &w.Year, &w.Message, &w.CreatedAt); err != nil {
			return nil, translateErr(err, "")
		}
		wishes = append(wishes, w)
	}
	return wishes, translateErr(rows.Err(), "")
}

// ListBySender returns wishes a member has sent, newest first
func (r *WishRepository) ListBySender(ctx context.Context, senderID models.MemberID) ([]models.Wish, error) {
	query := `
		SELECT id, sender_id, recipient_id, year, message, created_at
		FROM wishes
		WHERE sender_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, senderID)
	if err != nil {
		return nil, translateErr(err, "")
	}
	defer rows.Close()

	var wishes []models.Wish
	for rows.Next() {
		var w models.Wish
		if err := rows.Scan(&w.ID, &w.SenderID, &w.RecipientID, &w.Year, &w.Message, &w.CreatedAt); err != nil {
			return nil, translateErr(err, "")
		}
		wishes = append(wishes, w)
	}
	return wishes, translateErr(rows.Err(), "")
}
