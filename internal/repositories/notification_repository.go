package repositories

import (
	"context"

	"family-backend/internal/apperrors"
	"family-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	DB *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

// Create inserts one notification
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications(recipient_id, sender_id, type, message, metadata)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(ctx, query, n.RecipientID, n.SenderID, n.Type, n.Message, n.Metadata).
		Scan(&n.ID, &n.CreatedAt)
	return translateErr(err, "notification not found")
}

// CreateForAll inserts one notification per family member, for admin
// broadcasts. Excludes deceased members.
func (r *NotificationRepository) CreateForAll(ctx context.Context, senderID *models.MemberID, ntype, message string) (int64, error) {
	query := `
		INSERT INTO notifications(recipient_id, sender_id, type, message)
		SELECT member_id, $1, $2, $3 FROM family_members WHERE death_date IS NULL
	`
	tag, err := r.DB.Exec(ctx, query, senderID, ntype, message)
	if err != nil {
		return 0, translateErr(err, "")
	}
	return tag.RowsAffected(), nil
}

// Get retrieves one notification
func (r *NotificationRepository) Get(ctx context.Context, id int) (*models.Notification, error) {
	query := `SELECT id, recipient_id, sender_id, type, message, metadata, is_read, created_at FROM notifications WHERE id = $1`
	var n models.Notification
	err := r.DB.QueryRow(ctx, query, id).
		Scan(&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.Message, &n.Metadata, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, translateErr(err, "notification not found")
	}
	return &n, nil
}

// ListByRecipient returns a member's notifications, newest first
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID models.MemberID) ([]models.Notification, error) {
	query := `
		SELECT id, recipient_id, sender_id, type, message, metadata, is_read, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, recipientID)
	if err != nil {
		return nil, translateErr(err, "")
	}
	defer rows.Close()

	var list []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.Message, &n.Metadata, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, translateErr(err, "")
		}
		list = append(list, n)
	}
	return list, translateErr(rows.Err(), "")
}

// MarkRead flips one notification to read
func (r *NotificationRepository) MarkRead(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return translateErr(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("notification not found")
	}
	return nil
}

// MarkAllRead flips every unread notification for a recipient
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID models.MemberID) (int64, error) {
	tag, err := r.DB.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND is_read = FALSE`, recipientID)
	if err != nil {
		return 0, translateErr(err, "")
	}
	return tag.RowsAffected(), nil
}

// Delete removes a notification
func (r *NotificationRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return translateErr(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("notification not found")
	}
	return nil
}

// CountUnread returns the unread count for a recipient
func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID models.MemberID) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`, recipientID).Scan(&count)
	return count, translateErr(err, "")
}
