package models

import "time"

// User account statuses - a pending account cannot log in until approved
const (
	UserStatusPending  = "pending"
	UserStatusApproved = "approved"
	UserStatusRejected = "rejected"
)

type User struct {
	ID             int       `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Name           string    `json:"name"`
	IsAdmin        bool      `json:"is_admin"`
	Status         string    `json:"status"`
	LinkedMemberID *MemberID `json:"linked_member_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Email          string    `json:"email"`
	Password       string    `json:"password"`
	Name           string    `json:"name"`
	LinkedMemberID *MemberID `json:"linked_member_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
