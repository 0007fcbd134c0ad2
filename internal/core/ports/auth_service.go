package ports

import (
	"context"
	"time"

	"github.com/socialweb/social-api/internal/core/domain"
)

// Token is a signed bearer credential and the identity it carries.
type Token struct {
	Value     string
	UserID    uint64
	Username  string
	ExpiresAt time.Time
}

// Claims is the verified content of a token.
type Claims struct {
	ID        string
	UserID    uint64
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies bearer tokens. Verification is stateless.
type TokenIssuer interface {
	Issue(userID uint64, username string) (*Token, error)
	// Verify returns domain.ErrInvalidToken for malformed, expired or
	// foreign-signed tokens.
	Verify(token string) (*Claims, error)
}

// AuthService verifies credentials and issues tokens.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*Token, error)
	Refresh(ctx context.Context, token string) (*Token, error)
}

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// UserService is the identity store use-case surface.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
}
