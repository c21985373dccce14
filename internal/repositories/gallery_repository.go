package repositories

import (
	"context"
	"time"

	"family-backend/internal/apperrors"
	"family-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type GalleryRepository struct {
	DB *pgxpool.Pool
}

func NewGalleryRepository(db *pgxpool.Pool) *GalleryRepository {
	return &GalleryRepository{DB: db}
}

const galleryColumns = `id, url, object_key, caption, status, uploaded_by, tagged_member_id, moderated_by, moderated_at, created_at`

func scanImage(row interface{ Scan(...interface{}) error }) (*models.GalleryImage, error) {
	var img models.GalleryImage
	err := row.Scan(&img.ID, &img.URL, &img.ObjectKey, &img.Caption, &img.Status, &img.UploadedBy,
		&img.TaggedMember, &img.ModeratedBy, &img.ModeratedAt, &img.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// Create inserts a gallery image record (always pending)
func (r *GalleryRepository) Create(ctx context.Context, img *models.GalleryImage) error {
	query := `
		INSERT INTO gallery_images(url, object_key, caption, status, uploaded_by, tagged_member_id)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(ctx, query, img.URL, img.ObjectKey, img.Caption, img.Status, img.UploadedBy, img.TaggedMember).
		Scan(&img.ID, &img.CreatedAt)
	return translateErr(err, "image not found")
}

// Get retrieves an image by id
func (r *GalleryRepository) Get(ctx context.Context, id int) (*models.GalleryImage, error) {
	img, err := scanImage(r.DB.QueryRow(ctx, `SELECT `+galleryColumns+` FROM gallery_images WHERE id = $1`, id))
	if err != nil {
		return nil, translateErr(err, "image not found")
	}
	return img, nil
}

// ListByStatus returns images with the given moderation status, newest first
func (r *GalleryRepository) ListByStatus(ctx context.Context, status string) ([]models.GalleryImage, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+galleryColumns+` FROM gallery_images WHERE status = $1 ORDER BY created_at DESC`, status)
	if err != nil {
		return nil, translateErr(err, "")
	}
	defer rows.Close()

	var images []models.GalleryImage
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, translateErr(err, "")
		}
		images = append(images, *img)
	}
	return images, translateErr(rows.Err(), "")
}

// SetStatus records a moderation decision
func (r *GalleryRepository) SetStatus(ctx context.Context, id int, status string, moderatorID int, at time.Time) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE gallery_images SET status = $2, moderated_by = $3, moderated_at = $4 WHERE id = $1`,
		id, status, moderatorID, at)
	if err != nil {
		return translateErr(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("image not found")
	}
	return nil
}

// Delete removes an image record
func (r *GalleryRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM gallery_images WHERE id = $1`, id)
	if err != nil {
		return translateErr(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("image not found")
	}
	return nil
}

// CountByStatus returns approved and pending image counts
func (r *GalleryRepository) CountByStatus(ctx context.Context) (approved int, pending int, err error) {
	err = r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE status = 'approved'), COUNT(*) FILTER (WHERE status = 'pending') FROM gallery_images`).
		Scan(&approved, &pending)
	return approved, pending, translateErr(err, "")
}
