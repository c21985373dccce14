package repositories

import (
	"context"
	"time"

	"family-backend/internal/apperrors"
	"family-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FamilyMemberRepository struct {
	DB *pgxpool.Pool
}

func NewFamilyMemberRepository(db *pgxpool.Pool) *FamilyMemberRepository {
	return &FamilyMemberRepository{DB: db}
}

const memberColumns = `
	id, member_id, name, gender,
	to_char(birth_date, 'YYYY-MM-DD'),
	to_char(anniversary_date, 'YYYY-MM-DD'),
	to_char(death_date, 'YYYY-MM-DD'),
	parent_id, spouse_id, generation, avatar_url, avatar_key,
	last_active, current_path,
	session_time_today, session_time_monthly, session_time_yearly,
	created_at, updated_at
`

func scanMember(row interface{ Scan(...interface{}) error }) (*models.FamilyMember, error) {
	var m models.FamilyMember
	err := row.Scan(
		&m.ID, &m.MemberID, &m.Name, &m.Gender,
		&m.BirthDate, &m.AnniversaryDate, &m.DeathDate,
		&m.ParentID, &m.SpouseID, &m.Generation, &m.AvatarURL, &m.AvatarKey,
		&m.LastActive, &m.CurrentPath,
		&m.SessionToday, &m.SessionMonthly, &m.SessionYearly,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new family member
func (r *FamilyMemberRepository) Create(ctx context.Context, m *models.FamilyMember) error {
	query := `
		INSERT INTO family_members(member_id, name, gender, birth_date, anniversary_date, death_date,
			parent_id, spouse_id, generation, avatar_url, avatar_key)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRow(ctx, query,
		m.MemberID, m.Name, m.Gender, m.BirthDate, m.AnniversaryDate, m.DeathDate,
		m.ParentID, m.SpouseID, m.Generation, m.AvatarURL, m.AvatarKey,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)

	return translateErr(err, "family member not found")
}

// Get retrieves a member by its stable numeric member id
func (r *FamilyMemberRepository) Get(ctx context.Context, id models.MemberID) (*models.FamilyMember, error) {
	query := `SELECT ` + memberColumns + ` FROM family_members WHERE member_id = $1`

	m, err := scanMember(r.DB.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateErr(err, "family member not found")
	}
	return m, nil
}

// List returns all family members ordered by generation, then member id
func (r *FamilyMemberRepository) List(ctx context.Context) ([]models.FamilyMember, error) {
	query := `SELECT ` + memberColumns + ` FROM family_members ORDER BY generation, member_id`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, translateErr(err, "")
	}
	defer rows.Close()

	var members []models.FamilyMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, translateErr(err, "")
		}
		members = append(members, *m)
	}
	return members, translateErr(rows.Err(), "")
}

// ListByParent returns members whose parent_id equals the given member id
func (r *FamilyMemberRepository) ListByParent(ctx context.Context, parentID models.MemberID) ([]models.FamilyMember, error) {
	query := `SELECT ` + memberColumns + ` FROM family_members WHERE parent_id = $1 ORDER BY birth_date NULLS LAST, member_id`

	rows, err := r.DB.Query(ctx, query, parentID)
	if err != nil {
		return nil, translateErr(err, "")
	}
	defer rows.Close()

	var members []models.FamilyMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, translateErr(err, "")
		}
		members = append(members, *m)
	}
	return members, translateErr(rows.Err(), "")
}

// Update writes the mutable profile fields of a member
func (r *FamilyMemberRepository) Update(ctx context.Context, m *models.FamilyMember) error {
	query := `
		UPDATE family_members
		SET name = $2, gender = $3, birth_date = $4, anniversary_date = $5, death_date = $6,
			parent_id = $7, spouse_id = $8, generation = $9, avatar_url = $10, avatar_key = $11,
			updated_at = NOW()
		WHERE member_id = $1
		RETURNING updated_at
	`

	err := r.DB.QueryRow(ctx, query,
		m.MemberID, m.Name, m.Gender, m.BirthDate, m.AnniversaryDate, m.DeathDate,
		m.ParentID, m.SpouseID, m.Generation, m.AvatarURL, m.AvatarKey,
	).Scan(&m.UpdatedAt)

	return translateErr(err, "family member not found")
}

// SetSpouses links two members as spouses in one transaction so the
// relation can never be observed half-written.
func (r *FamilyMemberRepository) SetSpouses(ctx context.Context, a, b models.MemberID) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return translateErr(err, "")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE family_members SET spouse_id = $2, updated_at = NOW() WHERE member_id = $1`, a, b); err != nil {
		return translateErr(err, "")
	}
	if _, err := tx.Exec(ctx, `UPDATE family_members SET spouse_id = $2, updated_at = NOW() WHERE member_id = $1`, b, a); err != nil {
		return translateErr(err, "")
	}

	return translateErr(tx.Commit(ctx), "")
}

// ClearSpouses removes the symmetric spouse link between two members
func (r *FamilyMemberRepository) ClearSpouses(ctx context.Context, a, b models.MemberID) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return translateErr(err, "")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE family_members SET spouse_id = NULL, updated_at = NOW() WHERE member_id = $1 AND spouse_id = $2`, a, b); err != nil {
		return translateErr(err, "")
	}
	if _, err := tx.Exec(ctx, `UPDATE family_members SET spouse_id = NULL, updated_at = NOW() WHERE member_id = $1 AND spouse_id = $2`, b, a); err != nil {
		return translateErr(err, "")
	}

	return translateErr(tx.Commit(ctx), "")
}

// Delete removes a member and detaches any dangling references to it
func (r *FamilyMemberRepository) Delete(ctx context.Context, id models.MemberID) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return translateErr(err, "")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE family_members SET spouse_id = NULL WHERE spouse_id = $1`, id); err != nil {
		return translateErr(err, "")
	}
	if _, err := tx.Exec(ctx, `UPDATE family_members SET parent_id = NULL WHERE parent_id = $1`, id); err != nil {
		return translateErr(err, "")
	}

	tag, err := tx.Exec(ctx, `DELETE FROM family_members WHERE member_id = $1`, id)
	if err != nil {
		return translateErr(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("family member not found")
	}

	return translateErr(tx.Commit(ctx), "")
}

// UpdateActivity writes the activity tracking fields in one statement
// (last write wins under concurrent requests).
func (r *FamilyMemberRepository) UpdateActivity(ctx context.Context, id models.MemberID, lastActive time.Time, path string, today, monthly, yearly int64) error {
	query := `
		UPDATE family_members
		SET last_active = $2, current_path = $3,
			session_time_today = $4, session_time_monthly = $5, session_time_yearly = $6
		WHERE member_id = $1
	`
	_, err := r.DB.Exec(ctx, query, id, lastActive, path, today, monthly, yearly)
	return translateErr(err, "family member not found")
}

// ListRecentlyActive returns members active within the given window
func (r *FamilyMemberRepository) ListRecentlyActive(ctx context.Context, since time.Time, limit int) ([]models.FamilyMember, error) {
	query := `SELECT ` + memberColumns + ` FROM family_members WHERE last_active >= $1 ORDER BY last_active DESC LIMIT $2`

	rows, err := r.DB.Query(ctx, query, since, limit)
	if err != nil {
		return nil, translateErr(err, "")
	}
	defer rows.Close()

	var members []models.FamilyMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, translateErr(err, "")
		}
		members = append(members, *m)
	}
	return members, translateErr(rows.Err(), "")
}

// Count returns the total number of family members
func (r *FamilyMemberRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM family_members`).Scan(&count)
	return count, translateErr(err, "")
}
