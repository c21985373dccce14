package models

import "time"

// Gallery moderation statuses. pending is the only initial state; approved
// and rejected are terminal.
const (
	GalleryStatusPending  = "pending"
	GalleryStatusApproved = "approved"
	GalleryStatusRejected = "rejected"
)

type GalleryImage struct {
	ID           int       `json:"id"`
	URL          string    `json:"url"`
	ObjectKey    string    `json:"object_key"`
	Caption      *string   `json:"caption,omitempty"`
	Status       string    `json:"status"`
	UploadedBy   int       `json:"uploaded_by"`
	TaggedMember *MemberID `json:"tagged_member_id,omitempty"`
	ModeratedBy  *int      `json:"moderated_by,omitempty"`
	ModeratedAt  *time.Time `json:"moderated_at,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateGalleryImageRequest struct {
	Caption      *string   `json:"caption"`
	TaggedMember *MemberID `json:"tagged_member_id"`
}
