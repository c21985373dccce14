package services

import (
	"context"
	"testing"

	"family-backend/internal/apperrors"
	"family-backend/internal/auth"
	"family-backend/internal/config"
	"family-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	users []models.User
}

func (f *fakeUsers) find(id int) *models.User {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i]
		}
	}
	return nil
}

func (f *fakeUsers) Create(ctx context.Context, u *models.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return apperrors.Conflict("email already registered")
		}
	}
	u.ID = len(f.users) + 1
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeUsers) Get(ctx context.Context, id int) (*models.User, error) {
	if u := f.find(id); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, apperrors.NotFound("user not found")
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			cp := f.users[i]
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (f *fakeUsers) List(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeUsers) Count(ctx context.Context) (int, int, error) {
	pending := 0
	for _, u := range f.users {
		if u.Status == models.UserStatusPending {
			pending++
		}
	}
	return len(f.users), pending, nil
}

func (f *fakeUsers) UpdateStatus(ctx context.Context, id int, status string) error {
	u := f.find(id)
	if u == nil {
		return apperrors.NotFound("user not found")
	}
	u.Status = status
	return nil
}

func userFixture() (*UserService, *fakeUsers) {
	users := &fakeUsers{}
	jwt := auth.NewJWTManager(&config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpiryHour: 1}})
	return NewUserService(users, jwt), users
}

func TestRegisterCreatesPendingAccount(t *testing.T) {
	svc, _ := userFixture()

	u, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email: " Asha@Example.com ", Password: "sufficiently-long", Name: "Asha",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusPending, u.Status)
	assert.Equal(t, "asha@example.com", u.Email)
	assert.NotEqual(t, "sufficiently-long", u.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := userFixture()

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"missing email", models.RegisterRequest{Password: "longenough", Name: "A"}},
		{"not an email", models.RegisterRequest{Email: "nope", Password: "longenough", Name: "A"}},
		{"short password", models.RegisterRequest{Email: "a@b.com", Password: "short", Name: "A"}},
		{"missing name", models.RegisterRequest{Email: "a@b.com", Password: "longenough"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &tt.req)
			assert.True(t, apperrors.IsValidation(err), "got %v", err)
		})
	}
}

func TestLoginGatedOnApproval(t *testing.T) {
	svc, users := userFixture()

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email: "asha@example.com", Password: "sufficiently-long", Name: "Asha",
	})
	require.NoError(t, err)

	login := &models.LoginRequest{Email: "asha@example.com", Password: "sufficiently-long"}

	_, err = svc.Login(context.Background(), login)
	assert.True(t, apperrors.IsState(err), "pending account must not log in, got %v", err)

	require.NoError(t, svc.Approve(context.Background(), 1))

	resp, err := svc.Login(context.Background(), login)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "asha@example.com", resp.User.Email)

	users.find(1).Status = models.UserStatusRejected
	_, err = svc.Login(context.Background(), login)
	assert.True(t, apperrors.IsState(err))
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := userFixture()

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email: "asha@example.com", Password: "sufficiently-long", Name: "Asha",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Approve(context.Background(), 1))

	// unknown email and wrong password both come back as the same
	// validation error, not a not-found leak
	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "other@example.com", Password: "whatever"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "asha@example.com", Password: "wrong-password"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestModerationOnlyFromPending(t *testing.T) {
	svc, _ := userFixture()

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email: "asha@example.com", Password: "sufficiently-long", Name: "Asha",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Approve(context.Background(), 1))
	assert.True(t, apperrors.IsState(svc.Approve(context.Background(), 1)))
	assert.True(t, apperrors.IsState(svc.Reject(context.Background(), 1)))
}
