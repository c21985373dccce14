package models

import "time"

// Wish is a birthday greeting. At most one wish per (sender, recipient, year);
// the store enforces the tuple with a unique index.
type Wish struct {
	ID          int       `json:"id"`
	SenderID    MemberID  `json:"sender_id"`
	RecipientID MemberID  `json:"recipient_id"`
	Year        int       `json:"year"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateWishRequest struct {
	RecipientID MemberID `json:"recipient_id"`
	Message     string   `json:"message"`
}
