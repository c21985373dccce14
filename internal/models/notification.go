package models

import "time"

// Notification types
const (
	NotificationBirthdayWish   = "birthday_wish"
	NotificationAdminBroadcast = "admin_broadcast"
	NotificationSystem         = "system"
	NotificationEvent          = "event"
)

type Notification struct {
	ID          int               `json:"id"`
	RecipientID MemberID          `json:"recipient_id"`
	SenderID    *MemberID         `json:"sender_id,omitempty"`
	Type        string            `json:"type"`
	Message     string            `json:"message"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	IsRead      bool              `json:"is_read"`
	CreatedAt   time.Time         `json:"created_at"`
}

type BroadcastRequest struct {
	Message string `json:"message"`
}
