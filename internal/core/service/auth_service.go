package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/socialweb/social-api/internal/core/domain"
	"github.com/socialweb/social-api/internal/core/ports"
	"github.com/socialweb/social-api/internal/pkg/metrics"
)

// AuthService implements login and token refresh.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenIssuer
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Authenticate checks the password and issues a token. An unknown username and
// a wrong password produce the same error.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*ports.Token, error) {
	if username == "" || password == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		s.logger.Debug().Str("username", username).Msg("password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return token, nil
}

// Refresh re-issues a token from a still valid one. The identity store is not
// consulted.
func (s *AuthService) Refresh(_ context.Context, token string) (*ports.Token, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("refresh", "failure").Inc()
		return nil, err
	}

	refreshed, err := s.tokens.Issue(claims.UserID, claims.Username)
	if err != nil {
		return nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("refresh", "success").Inc()
	return refreshed, nil
}
