package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Sreekanth-25/Project-Tracker-Application/internal/model"
	"github.com/Sreekanth-25/Project-Tracker-Application/internal/util"
)

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type AuthService struct {
	users     UserStore
	jwtSecret string
}

func NewAuthService(users UserStore, jwtSecret string) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret}
}

// Register creates a user and immediately issues a token for it. The email
// uniqueness check lives in the store's constraint, not here.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    util.NowUTC(),
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateToken(u.ID, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password return the same error so callers cannot probe for accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", model.ErrInvalidCredentials
	}

	if !util.CheckPassword(password, u.PasswordHash) {
		return nil, "", model.ErrInvalidCredentials
	}

	token, err := util.GenerateToken(u.ID, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
