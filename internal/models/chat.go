package models

import "time"

// ChatTTL is how long a chat message lives before the sweeper removes it.
const ChatTTL = 7 * 24 * time.Hour

type ChatMessage struct {
	ID         int       `json:"id"`
	SenderID   MemberID  `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	ReceiverID *MemberID `json:"receiver_id,omitempty"` // nil = group broadcast
	ReplyToID  *int      `json:"reply_to_id,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type SendChatMessageRequest struct {
	ReceiverID *MemberID `json:"receiver_id"`
	ReplyToID  *int      `json:"reply_to_id"`
	Body       string    `json:"body"`
}
