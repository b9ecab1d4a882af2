package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Lixing-Zhang/coffee-shop/internal/auth"
	"github.com/Lixing-Zhang/coffee-shop/internal/models"
	"github.com/Lixing-Zhang/coffee-shop/internal/repository"
)

// LoginResult is returned to a user who signed in.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenIssuer
	logger *slog.Logger
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenIssuer, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Login checks credentials and issues a bearer token. Unknown emails and
// wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*LoginResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := auth.ComparePassword(user.Password, req.Password); err != nil {
		s.logger.Warn("failed login", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, expires, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expires, User: user}, nil
}
