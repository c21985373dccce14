package repositories

import (
	"context"

	"family-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ChatRepository struct {
	DB *pgxpool.Pool
}

func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{DB: db}
}

// Create inserts a chat message with its expiry stamp
func (r *ChatRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages(sender_id, receiver_id, reply_to_id, body, expires_at)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(ctx, query, msg.SenderID, msg.ReceiverID, msg.ReplyToID, msg.Body, msg.ExpiresAt).
		Scan(&msg.ID, &msg.CreatedAt)
	return translateErr(err, "message not found")
}

// Get retrieves a single unexpired message
func (r *ChatRepository) Get(ctx context.Context, id int) (*models.ChatMessage, error) {
	query := `
		SELECT id, sender_id, receiver_id, reply_to_id, body, created_at, expires_at
		FROM chat_messages
		WHERE id = $1 AND expires_at > NOW()
	`
	var msg models.ChatMessage
	err := r.DB.QueryRow(ctx, query, id).
		Scan(&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.ReplyToID, &msg.Body, &msg.CreatedAt, &msg.ExpiresAt)
	if err != nil {
		return nil, translateErr(err, "message not found")
	}
	return &msg, nil
}

// ListRecent returns unexpired messages visible to the given member:
// broadcasts plus messages sent by or directed to them. Oldest first.
func (r *ChatRepository) ListRecent(ctx context.Context, memberID models.MemberID, limit int) ([]models.ChatMessage, error) {
	query := `
		SELECT c.id, c.sender_id, m.name, c.receiver_id, c.reply_to_id, c.body, c.created_at, c.expires_at
		FROM chat_messages c
		JOIN family_members m ON m.member_id = c.sender_id
		WHERE c.expires_at > NOW()
		  AND (c.receiver_id IS NULL OR c.receiver_id = $1 OR c.sender_id = $1)
		ORDER BY c.created_at DESC
		LIMIT $2
	`
	rows, err := r.DB.Query(ctx, query, memberID, limit)
	if err != nil {
		return nil, translateErr(err, "")
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.SenderID, &msg.SenderName, &msg.ReceiverID, &msg.ReplyToID,
			&msg.Body, &msg.CreatedAt, &msg.ExpiresAt); err != nil {
			return nil, translateErr(err, "")
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr(err, "")
	}

	// reverse to chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// DeleteExpired removes messages past their TTL. Run periodically by the
// sweeper.
func (r *ChatRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM chat_messages WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, translateErr(err, "")
	}
	return tag.RowsAffected(), nil
}
