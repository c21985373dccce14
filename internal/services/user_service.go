package services

import (
	"context"
	"strings"

	"family-backend/internal/apperrors"
	"family-backend/internal/auth"
	"family-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

type userStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}

// UserService handles registration, login and the pending/approved/rejected
// account gate.
type UserService struct {
	Users userStore
	JWT   *auth.JWTManager
}

func NewUserService(users userStore, jwtManager *auth.JWTManager) *UserService {
	return &UserService{Users: users, JWT: jwtManager}
}

// Register creates a pending account. An admin must approve it before the
// user can log in.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.Validation("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, apperrors.Validation("password must be at least 8 characters")
	}
	if req.Name == "" {
		return nil, apperrors.Validation("name is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:          email,
		PasswordHash:   string(hash),
		Name:           req.Name,
		Status:         models.UserStatusPending,
		LinkedMemberID: req.LinkedMemberID,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and issues a token for approved accounts.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Validation("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Validation("invalid email or password")
	}

	switch u.Status {
	case models.UserStatusApproved:
	case models.UserStatusPending:
		return nil, apperrors.State("account is pending approval")
	default:
		return nil, apperrors.State("account has been rejected")
	}

	token, err := s.JWT.Generate(u.ID, u.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: u}, nil
}

// Get returns one user
func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	return s.Users.Get(ctx, id)
}

// List returns all accounts (admin view)
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.Users.List(ctx)
}

// Approve moves a pending account to approved.
func (s *UserService) Approve(ctx context.Context, id int) error {
	return s.setStatus(ctx, id, models.UserStatusApproved)
}

// Reject moves a pending account to rejected.
func (s *UserService) Reject(ctx context.Context, id int) error {
	return s.setStatus(ctx, id, models.UserStatusRejected)
}

func (s *UserService) setStatus(ctx context.Context, id int, status string) error {
	u, err := s.Users.Get(ctx, id)
	if err != nil {
		return err
	}
	if u.Status != models.UserStatusPending {
		return apperrors.State("user %d is already %s", id, u.Status)
	}
	return s.Users.UpdateStatus(ctx, id, status)
}
