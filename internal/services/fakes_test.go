package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"family-backend/internal/apperrors"
	"family-backend/internal/models"
)

// fakeMembers is an in-memory member store shared by the service tests.
type fakeMembers struct {
	members []models.FamilyMember
}

func newFakeMembers(members ...models.FamilyMember) *fakeMembers {
	return &fakeMembers{members: members}
}

func (f *fakeMembers) find(id models.MemberID) *models.FamilyMember {
	for i := range f.members {
		if f.members[i].MemberID == id {
			return &f.members[i]
		}
	}
	return nil
}

func (f *fakeMembers) Create(ctx context.Context, m *models.FamilyMember) error {
	if f.find(m.MemberID) != nil {
		return apperrors.Conflict("member %d already exists", m.MemberID)
	}
	f.members = append(f.members, *m)
	return nil
}

func (f *fakeMembers) Get(ctx context.Context, id models.MemberID) (*models.FamilyMember, error) {
	if m := f.find(id); m != nil {
		cp := *m
		return &cp, nil
	}
	return nil, apperrors.NotFound("family member not found")
}

func (f *fakeMembers) List(ctx context.Context) ([]models.FamilyMember, error) {
	out := make([]models.FamilyMember, len(f.members))
	copy(out, f.members)
	return out, nil
}

func (f *fakeMembers) ListByParent(ctx context.Context, parentID models.MemberID) ([]models.FamilyMember, error) {
	var out []models.FamilyMember
	for i := range f.members {
		if f.members[i].ParentID != nil && *f.members[i].ParentID == parentID {
			out = append(out, f.members[i])
		}
	}
	return out, nil
}

func (f *fakeMembers) Update(ctx context.Context, m *models.FamilyMember) error {
	existing := f.find(m.MemberID)
	if existing == nil {
		return apperrors.NotFound("family member not found")
	}
	*existing = *m
	return nil
}

func (f *fakeMembers) SetSpouses(ctx context.Context, a, b models.MemberID) error {
	ma, mb := f.find(a), f.find(b)
	if ma == nil || mb == nil {
		return apperrors.NotFound("family member not found")
	}
	ma.SpouseID = &mb.MemberID
	mb.SpouseID = &ma.MemberID
	return nil
}

func (f *fakeMembers) ClearSpouses(ctx context.Context, a, b models.MemberID) error {
	if ma := f.find(a); ma != nil {
		ma.SpouseID = nil
	}
	if mb := f.find(b); mb != nil {
		mb.SpouseID = nil
	}
	return nil
}

func (f *fakeMembers) Delete(ctx context.Context, id models.MemberID) error {
	for i := range f.members {
		if f.members[i].MemberID == id {
			f.members = append(f.members[:i], f.members[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("family member not found")
}

func (f *fakeMembers) UpdateActivity(ctx context.Context, id models.MemberID, lastActive time.Time, path string, today, monthly, yearly int64) error {
	m := f.find(id)
	if m == nil {
		return apperrors.NotFound("family member not found")
	}
	t := lastActive
	m.LastActive = &t
	m.CurrentPath = &path
	m.SessionToday = today
	m.SessionMonthly = monthly
	m.SessionYearly = yearly
	return nil
}

func (f *fakeMembers) Count(ctx context.Context) (int, error) {
	return len(f.members), nil
}

func (f *fakeMembers) ListRecentlyActive(ctx context.Context, since time.Time, limit int) ([]models.FamilyMember, error) {
	var out []models.FamilyMember
	for _, m := range f.members {
		if m.LastActive != nil && m.LastActive.After(since) {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeWishes enforces the one-wish-per-year tuple like the real store.
type fakeWishes struct {
	wishes []models.Wish
}

func (f *fakeWishes) Create(ctx context.Context, w *models.Wish) error {
	for _, existing := range f.wishes {
		if existing.SenderID == w.SenderID && existing.RecipientID == w.RecipientID && existing.Year == w.Year {
			return apperrors.Conflict("wish already sent to member %d this year", w.RecipientID)
		}
	}
	w.ID = len(f.wishes) + 1
	f.wishes = append(f.wishes, *w)
	return nil
}

func (f *fakeWishes) ListByRecipient(ctx context.Context, recipientID models.MemberID, year int) ([]models.Wish, error) {
	var out []models.Wish
	for _, w := range f.wishes {
		if w.RecipientID == recipientID && w.Year == year {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWishes) ListBySender(ctx context.Context, senderID models.MemberID) ([]models.Wish, error) {
	var out []models.Wish
	for _, w := range f.wishes {
		if w.SenderID == senderID {
			out = append(out, w)
		}
	}
	return out, nil
}

type fakeNotifications struct {
	created []models.Notification
}

func (f *fakeNotifications) Create(ctx context.Context, n *models.Notification) error {
	n.ID = len(f.created) + 1
	f.created = append(f.created, *n)
	return nil
}

type fakeGallery struct {
	images []models.GalleryImage
}

func (f *fakeGallery) find(id int) *models.GalleryImage {
	for i := range f.images {
		if f.images[i].ID == id {
			return &f.images[i]
		}
	}
	return nil
}

func (f *fakeGallery) Create(ctx context.Context, img *models.GalleryImage) error {
	img.ID = len(f.images) + 1
	f.images = append(f.images, *img)
	return nil
}

func (f *fakeGallery) Get(ctx context.Context, id int) (*models.GalleryImage, error) {
	if img := f.find(id); img != nil {
		cp := *img
		return &cp, nil
	}
	return nil, apperrors.NotFound("image not found")
}

func (f *fakeGallery) ListByStatus(ctx context.Context, status string) ([]models.GalleryImage, error) {
	var out []models.GalleryImage
	for _, img := range f.images {
		if img.Status == status {
			out = append(out, img)
		}
	}
	return out, nil
}

func (f *fakeGallery) SetStatus(ctx context.Context, id int, status string, moderatorID int, at time.Time) error {
	img := f.find(id)
	if img == nil {
		return apperrors.NotFound("image not found")
	}
	img.Status = status
	img.ModeratedBy = &moderatorID
	t := at
	img.ModeratedAt = &t
	return nil
}

func (f *fakeGallery) CountByStatus(ctx context.Context) (int, int, error) {
	approved, pending := 0, 0
	for _, img := range f.images {
		switch img.Status {
		case models.GalleryStatusApproved:
			approved++
		case models.GalleryStatusPending:
			pending++
		}
	}
	return approved, pending, nil
}

func (f *fakeGallery) Delete(ctx context.Context, id int) error {
	for i := range f.images {
		if f.images[i].ID == id {
			f.images = append(f.images[:i], f.images[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("image not found")
}

// fakeObjects records object storage traffic without any real bucket.
type fakeObjects struct {
	puts    []string
	deletes []string
}

func (f *fakeObjects) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	f.puts = append(f.puts, key)
	return fmt.Sprintf("https://cdn.example.com/%s", key), nil
}

func (f *fakeObjects) Delete(ctx context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	return nil
}

type fakeEvents struct {
	events []models.Event
}

func (f *fakeEvents) Count(ctx context.Context) (int, error) {
	return len(f.events), nil
}

func (f *fakeEvents) ListFrom(ctx context.Context, fromDate string) ([]models.Event, error) {
	var out []models.Event
	for _, e := range f.events {
		if e.EventDate >= fromDate {
			out = append(out, e)
		}
	}
	return out, nil
}

func ptr[T any](v T) *T { return &v }

func member(id models.MemberID, name string, opts ...func(*models.FamilyMember)) models.FamilyMember {
	m := models.FamilyMember{MemberID: id, Name: name, Gender: "other"}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func withBirth(date string) func(*models.FamilyMember) {
	return func(m *models.FamilyMember) { m.BirthDate = &date }
}

func withDeath(date string) func(*models.FamilyMember) {
	return func(m *models.FamilyMember) { m.DeathDate = &date }
}

func withAnniversary(date string) func(*models.FamilyMember) {
	return func(m *models.FamilyMember) { m.AnniversaryDate = &date }
}

func withSpouse(id models.MemberID) func(*models.FamilyMember) {
	return func(m *models.FamilyMember) { m.SpouseID = &id }
}

func withParent(id models.MemberID) func(*models.FamilyMember) {
	return func(m *models.FamilyMember) { m.ParentID = &id }
}

func withGeneration(g int) func(*models.FamilyMember) {
	return func(m *models.FamilyMember) { m.Generation = g }
}
