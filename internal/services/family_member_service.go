package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"

	"family-backend/internal/apperrors"
	"family-backend/internal/models"
	"family-backend/internal/storage"
	"family-backend/internal/timeutil"

	"github.com/google/uuid"
)

// memberStore is the slice of the member repository the resolver needs.
type memberStore interface {
	Create(ctx context.Context, m *models.FamilyMember) error
	Get(ctx context.Context, id models.MemberID) (*models.FamilyMember, error)
	List(ctx context.Context) ([]models.FamilyMember, error)
	ListByParent(ctx context.Context, parentID models.MemberID) ([]models.FamilyMember, error)
	Update(ctx context.Context, m *models.FamilyMember) error
	SetSpouses(ctx context.Context, a, b models.MemberID) error
	ClearSpouses(ctx context.Context, a, b models.MemberID) error
	Delete(ctx context.Context, id models.MemberID) error
}

// FamilyMemberService owns the member registry and the relationship
// resolver. Traversal is bounded to immediate relations only; corrupted
// parent/spouse cycles can therefore never loop.
type FamilyMemberService struct {
	Members memberStore
	Objects storage.ObjectStore
}

func NewFamilyMemberService(members memberStore, objects storage.ObjectStore) *FamilyMemberService {
	return &FamilyMemberService{Members: members, Objects: objects}
}

func validGender(g string) bool {
	for _, v := range models.Genders {
		if v == g {
			return true
		}
	}
	return false
}

func validateDates(birth, anniversary, death *string) error {
	parse := func(label string, s *string) (ok bool, err error) {
		if s == nil || *s == "" {
			return false, nil
		}
		if _, perr := timeutil.ParseDate(*s); perr != nil {
			return false, apperrors.Validation("invalid %s date %q, want YYYY-MM-DD", label, *s)
		}
		return true, nil
	}

	hasBirth, err := parse("birth", birth)
	if err != nil {
		return err
	}
	if _, err := parse("anniversary", anniversary); err != nil {
		return err
	}
	hasDeath, err := parse("death", death)
	if err != nil {
		return err
	}

	if hasBirth && hasDeath {
		b, _ := timeutil.ParseDate(*birth)
		d, _ := timeutil.ParseDate(*death)
		if d.Before(b) {
			return apperrors.Validation("death date %s precedes birth date %s", *death, *birth)
		}
	}
	return nil
}

func (s *FamilyMemberService) validate(ctx context.Context, id models.MemberID, req *models.FamilyMember) error {
	if id <= 0 {
		return apperrors.Validation("member id must be a positive integer")
	}
	if req.Name == "" {
		return apperrors.Validation("name is required")
	}
	if req.Gender == "" {
		req.Gender = "other"
	}
	if !validGender(req.Gender) {
		return apperrors.Validation("invalid gender %q", req.Gender)
	}
	if req.Generation < 0 {
		return apperrors.Validation("generation must be non-negative")
	}
	if req.ParentID != nil && *req.ParentID == id {
		return apperrors.Validation("member %d cannot be its own parent", id)
	}
	if req.SpouseID != nil && *req.SpouseID == id {
		return apperrors.Validation("member %d cannot be its own spouse", id)
	}
	if err := validateDates(req.BirthDate, req.AnniversaryDate, req.DeathDate); err != nil {
		return err
	}

	// A parent link may arrive before the parent row when a tree is being
	// entered top-down from a sibling branch, so a missing parent is allowed.
	// When the parent does exist, generation must increase with descent.
	if req.ParentID != nil {
		if parent, err := s.Members.Get(ctx, *req.ParentID); err == nil {
			if req.Generation <= parent.Generation {
				return apperrors.Validation("generation %d must exceed parent generation %d", req.Generation, parent.Generation)
			}
		} else if !apperrors.IsNotFound(err) {
			return err
		}
	}

	// Spouse links are written symmetrically, so the other side must exist.
	if req.SpouseID != nil {
		spouse, err := s.Members.Get(ctx, *req.SpouseID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return apperrors.Validation("spouse member %d does not exist", *req.SpouseID)
			}
			return err
		}
		if spouse.SpouseID != nil && *spouse.SpouseID != id {
			return apperrors.Conflict("member %d is already married to member %d", *req.SpouseID, *spouse.SpouseID)
		}
	}
	return nil
}

// Create registers a new family member and, when a spouse is given, links
// both sides in the same call.
func (s *FamilyMemberService) Create(ctx context.Context, req *models.CreateFamilyMemberRequest) (*models.FamilyMember, error) {
	m := &models.FamilyMember{
		MemberID:        req.MemberID,
		Name:            req.Name,
		Gender:          req.Gender,
		BirthDate:       req.BirthDate,
		AnniversaryDate: req.AnniversaryDate,
		DeathDate:       req.DeathDate,
		ParentID:        req.ParentID,
		SpouseID:        req.SpouseID,
		Generation:      req.Generation,
	}
	if err := s.validate(ctx, req.MemberID, m); err != nil {
		return nil, err
	}

	if err := s.Members.Create(ctx, m); err != nil {
		return nil, err
	}

	if m.SpouseID != nil {
		if err := s.Members.SetSpouses(ctx, m.MemberID, *m.SpouseID); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Get returns one member by numeric id
func (s *FamilyMemberService) Get(ctx context.Context, id models.MemberID) (*models.FamilyMember, error) {
	return s.Members.Get(ctx, id)
}

// List returns the whole registry
func (s *FamilyMemberService) List(ctx context.Context) ([]models.FamilyMember, error) {
	return s.Members.List(ctx)
}

// Update edits a member. Spouse changes rewrite both sides of the old and
// new links.
func (s *FamilyMemberService) Update(ctx context.Context, id models.MemberID, req *models.UpdateFamilyMemberRequest) (*models.FamilyMember, error) {
	m, err := s.Members.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldSpouse := m.SpouseID

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Gender != nil {
		m.Gender = *req.Gender
	}
	if req.BirthDate != nil {
		m.BirthDate = req.BirthDate
	}
	if req.AnniversaryDate != nil {
		m.AnniversaryDate = req.AnniversaryDate
	}
	if req.DeathDate != nil {
		m.DeathDate = req.DeathDate
	}
	if req.ParentID != nil {
		m.ParentID = req.ParentID
	}
	if req.Generation != nil {
		m.Generation = *req.Generation
	}
	if req.SpouseID != nil {
		m.SpouseID = req.SpouseID
	}

	if err := s.validate(ctx, id, m); err != nil {
		return nil, err
	}

	if err := s.Members.Update(ctx, m); err != nil {
		return nil, err
	}

	if req.SpouseID != nil && (oldSpouse == nil || *oldSpouse != *req.SpouseID) {
		if oldSpouse != nil {
			if err := s.Members.ClearSpouses(ctx, id, *oldSpouse); err != nil {
				return nil, err
			}
		}
		if err := s.Members.SetSpouses(ctx, id, *req.SpouseID); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// SetAvatar stores a new profile image and swaps the member's URL/key pair.
// The previous object is removed after the row is updated.
func (s *FamilyMemberService) SetAvatar(ctx context.Context, id models.MemberID, filename, contentType string, body io.Reader, size int64) (*models.FamilyMember, error) {
	m, err := s.Members.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s%s", uuid.NewString(), path.Ext(filename))
	url, err := s.Objects.Put(ctx, key, contentType, body, size)
	if err != nil {
		return nil, apperrors.Unavailable(err)
	}

	oldKey := m.AvatarKey
	m.AvatarURL = &url
	m.AvatarKey = &key
	if err := s.Members.Update(ctx, m); err != nil {
		return nil, err
	}

	if oldKey != nil && *oldKey != "" {
		_ = s.Objects.Delete(ctx, *oldKey)
	}
	return m, nil
}

// Delete removes a member; the store detaches references pointing at it
func (s *FamilyMemberService) Delete(ctx context.Context, id models.MemberID) error {
	return s.Members.Delete(ctx, id)
}

// Relations resolves the immediate family of one member: the linked parent
// plus that parent's spouse, the spouse, and children (own plus the
// spouse's, for children linked through either side of the marriage).
// Dangling references resolve to empty, never to an error.
func (s *FamilyMemberService) Relations(ctx context.Context, id models.MemberID) (*models.Relations, error) {
	m, err := s.Members.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rel := &models.Relations{
		Parents:  []models.FamilyMember{},
		Children: []models.FamilyMember{},
	}

	if m.ParentID != nil {
		parent, err := s.Members.Get(ctx, *m.ParentID)
		switch {
		case err == nil:
			rel.Parents = append(rel.Parents, *parent)
			if parent.SpouseID != nil {
				if coParent, err := s.Members.Get(ctx, *parent.SpouseID); err == nil {
					rel.Parents = append(rel.Parents, *coParent)
				} else if !apperrors.IsNotFound(err) {
					return nil, err
				}
			}
		case apperrors.IsNotFound(err):
			// dangling parent reference
		default:
			return nil, err
		}
	}

	if m.SpouseID != nil {
		spouse, err := s.Members.Get(ctx, *m.SpouseID)
		switch {
		case err == nil:
			rel.Spouse = spouse
		case apperrors.IsNotFound(err):
			// dangling spouse reference
		default:
			return nil, err
		}
	}

	children, err := s.Members.ListByParent(ctx, id)
	if err != nil {
		return nil, err
	}
	seen := map[models.MemberID]bool{}
	for _, c := range children {
		seen[c.MemberID] = true
		rel.Children = append(rel.Children, c)
	}

	if rel.Spouse != nil {
		stepChildren, err := s.Members.ListByParent(ctx, rel.Spouse.MemberID)
		if err != nil {
			return nil, err
		}
		for _, c := range stepChildren {
			if !seen[c.MemberID] {
				rel.Children = append(rel.Children, c)
			}
		}
	}

	sortByBirth(rel.Children)
	return rel, nil
}

// sortByBirth orders members by birth date ascending; members without a
// parseable birth date sort last; ties break on numeric member id.
func sortByBirth(members []models.FamilyMember) {
	birth := func(m *models.FamilyMember) (int64, bool) {
		if m.BirthDate == nil || *m.BirthDate == "" {
			return 0, false
		}
		t, err := timeutil.ParseDate(*m.BirthDate)
		if err != nil {
			return 0, false
		}
		return t.Unix(), true
	}

	sort.SliceStable(members, func(i, j int) bool {
		bi, oki := birth(&members[i])
		bj, okj := birth(&members[j])
		if oki && okj && bi != bj {
			return bi < bj
		}
		if oki != okj {
			return oki
		}
		return members[i].MemberID < members[j].MemberID
	})
}
