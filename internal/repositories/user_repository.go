package repositories

import (
	"context"

	"family-backend/internal/apperrors"
	"family-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, email, password_hash, name, is_admin, status, linked_member_id, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.IsAdmin, &u.Status, &u.LinkedMemberID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user account (always status pending)
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users(email, password_hash, name, is_admin, status, linked_member_id)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(ctx, query, u.Email, u.PasswordHash, u.Name, u.IsAdmin, u.Status, u.LinkedMemberID).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return translateErr(err, "user not found")
}

// Get retrieves a user by id
func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, translateErr(err, "user not found")
	}
	return u, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, translateErr(err, "user not found")
	}
	return u, nil
}

// List returns all users, newest first
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, translateErr(err, "")
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, translateErr(err, "")
		}
		users = append(users, *u)
	}
	return users, translateErr(rows.Err(), "")
}

// UpdateStatus moves a user between pending/approved/rejected
func (r *UserRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE users SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return translateErr(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("user not found")
	}
	return nil
}

// Count returns total users and the number still pending
func (r *UserRepository) Count(ctx context.Context) (total int, pending int, err error) {
	err = r.DB.QueryRow(ctx, `SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'pending') FROM users`).Scan(&total, &pending)
	return total, pending, translateErr(err, "")
}
