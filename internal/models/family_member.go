package models

import "time"

// MemberID is the stable numeric key used for parent/spouse references.
// It is assigned by the application and is distinct from the row id the
// database hands out, so relations never join on the wrong key.
type MemberID int

// FamilyMember represents one person in the family tree
type FamilyMember struct {
	ID              int        `json:"id"`
	MemberID        MemberID   `json:"member_id"`
	Name            string     `json:"name"`
	Gender          string     `json:"gender"` // male, female, other
	BirthDate       *string    `json:"birth_date,omitempty"`
	AnniversaryDate *string    `json:"anniversary_date,omitempty"`
	DeathDate       *string    `json:"death_date,omitempty"`
	ParentID        *MemberID  `json:"parent_id,omitempty"`
	SpouseID        *MemberID  `json:"spouse_id,omitempty"`
	Generation      int        `json:"generation"`
	AvatarURL       *string    `json:"avatar_url,omitempty"`
	AvatarKey       *string    `json:"avatar_key,omitempty"`
	LastActive      *time.Time `json:"last_active,omitempty"`
	CurrentPath     *string    `json:"current_path,omitempty"`
	SessionToday    int64      `json:"session_time_today"`
	SessionMonthly  int64      `json:"session_time_monthly"`
	SessionYearly   int64      `json:"session_time_yearly"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Gender options for family members
var Genders = []string{"male", "female", "other"}

// Deceased reports whether a death date is recorded. Deceased members stay
// in the registry for memorial views but drop out of upcoming-occasion feeds.
func (m *FamilyMember) Deceased() bool {
	return m.DeathDate != nil && *m.DeathDate != ""
}

// Relations is the resolved immediate family of one member
type Relations struct {
	Parents  []FamilyMember `json:"parents"`
	Spouse   *FamilyMember  `json:"spouse"`
	Children []FamilyMember `json:"children"`
}

// CreateFamilyMemberRequest for registering a new family member
type CreateFamilyMemberRequest struct {
	MemberID        MemberID  `json:"member_id"`
	Name            string    `json:"name"`
	Gender          string    `json:"gender"`
	BirthDate       *string   `json:"birth_date"`
	AnniversaryDate *string   `json:"anniversary_date"`
	DeathDate       *string   `json:"death_date"`
	ParentID        *MemberID `json:"parent_id"`
	SpouseID        *MemberID `json:"spouse_id"`
	Generation      int       `json:"generation"`
}

// UpdateFamilyMemberRequest for editing a family member
type UpdateFamilyMemberRequest struct {
	Name            *string   `json:"name"`
	Gender          *string   `json:"gender"`
	BirthDate       *string   `json:"birth_date"`
	AnniversaryDate *string   `json:"anniversary_date"`
	DeathDate       *string   `json:"death_date"`
	ParentID        *MemberID `json:"parent_id"`
	SpouseID        *MemberID `json:"spouse_id"`
	Generation      *int      `json:"generation"`
}
