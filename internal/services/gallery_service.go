package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"family-backend/internal/apperrors"
	"family-backend/internal/models"
	"family-backend/internal/storage"
	"family-backend/internal/timeutil"

	"github.com/google/uuid"
)

type galleryStore interface {
	Create(ctx context.Context, img *models.GalleryImage) error
	Get(ctx context.Context, id int) (*models.GalleryImage, error)
	ListByStatus(ctx context.Context, status string) ([]models.GalleryImage, error)
	SetStatus(ctx context.Context, id int, status string, moderatorID int, at time.Time) error
	Delete(ctx context.Context, id int) error
}

// GalleryService runs the upload-then-moderate workflow. Every upload is
// born pending; approve and reject are terminal and admin-only (the handler
// enforces the admin part).
type GalleryService struct {
	images  galleryStore
	objects storage.ObjectStore
	clock   timeutil.Clock
}

func NewGalleryService(images galleryStore, objects storage.ObjectStore, clock timeutil.Clock) *GalleryService {
	return &GalleryService{images: images, objects: objects, clock: clock}
}

// Get returns a single image record
func (s *GalleryService) Get(ctx context.Context, id int) (*models.GalleryImage, error) {
	return s.images.Get(ctx, id)
}

// Upload stores the file in object storage and creates a pending record.
func (s *GalleryService) Upload(ctx context.Context, uploaderID int, filename, contentType string, body io.Reader, size int64, req *models.CreateGalleryImageRequest) (*models.GalleryImage, error) {
	ext := path.Ext(filename)
	key := fmt.Sprintf("gallery/%s%s", uuid.NewString(), ext)

	url, err := s.objects.Put(ctx, key, contentType, body, size)
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}

	img := &models.GalleryImage{
		URL:        url,
		ObjectKey:  key,
		Status:     models.GalleryStatusPending,
		UploadedBy: uploaderID,
	}
	if req != nil {
		img.Caption = req.Caption
		img.TaggedMember = req.TaggedMember
	}

	if err := s.images.Create(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

// ListApproved returns publicly visible images
func (s *GalleryService) ListApproved(ctx context.Context) ([]models.GalleryImage, error) {
	return s.images.ListByStatus(ctx, models.GalleryStatusApproved)
}

// ListPending returns the moderation queue
func (s *GalleryService) ListPending(ctx context.Context) ([]models.GalleryImage, error) {
	return s.images.ListByStatus(ctx, models.GalleryStatusPending)
}

// Approve moves a pending image to approved.
func (s *GalleryService) Approve(ctx context.Context, id int, moderatorID int) (*models.GalleryImage, error) {
	return s.moderate(ctx, id, moderatorID, models.GalleryStatusApproved)
}

// Reject moves a pending image to rejected.
func (s *GalleryService) Reject(ctx context.Context, id int, moderatorID int) (*models.GalleryImage, error) {
	return s.moderate(ctx, id, moderatorID, models.GalleryStatusRejected)
}

func (s *GalleryService) moderate(ctx context.Context, id, moderatorID int, status string) (*models.GalleryImage, error) {
	img, err := s.images.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// pending is the only state a moderation decision can leave; both
	// outcomes are terminal
	if img.Status != models.GalleryStatusPending {
		return nil, apperrors.State("image %d is already %s", id, img.Status)
	}

	now := s.clock.Now()
	if err := s.images.SetStatus(ctx, id, status, moderatorID, now); err != nil {
		return nil, err
	}

	img.Status = status
	img.ModeratedBy = &moderatorID
	img.ModeratedAt = &now
	return img, nil
}

// Delete removes the record and the stored object. Callers decide
// ownership/admin; the service just executes.
func (s *GalleryService) Delete(ctx context.Context, id int) error {
	img, err := s.images.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.images.Delete(ctx, id); err != nil {
		return err
	}

	// best effort: the record is authoritative, a stray object is harmless
	_ = s.objects.Delete(ctx, img.ObjectKey)
	return nil
}
