package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/socialweb/social-api/internal/core/domain"
	"github.com/socialweb/social-api/internal/core/ports"
	"github.com/socialweb/social-api/internal/infrastructure/token"
)

type stubUserRepo struct {
	users   map[string]*domain.User
	nextID  uint64
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(ctx context.Context, ids []uint64) ([]domain.User, error) {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, err := r.FindByID(ctx, id); err == nil {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *token.Issuer) {
	t.Helper()
	repo := newStubUserRepo()
	users := NewUserService(repo, zerolog.Nop())
	if _, err := users.Register(context.Background(), ports.RegisterInput{Username: "carol", Email: "carol@example.com", Password: "s3cret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	issuer := token.NewIssuer("secret", "social-api", time.Hour)
	return NewAuthService(repo, issuer, zerolog.Nop()), issuer
}

func TestUserService_Register_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "pass123"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	found, err := svc.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if found.Username != "alice" || found.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", found)
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "  ", Password: "pass"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for blank username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for missing password, got %v", err)
	}
}

func TestUserService_Register_Duplicate(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "pass"})
	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "pass2"})
	if !errors.Is(err, domain.ErrUserExists) || !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Register_UsernameIsCaseSensitive(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "pass"}); err != nil {
		t.Fatalf("register bob: %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "Bob", Password: "pass"}); err != nil {
		t.Fatalf("register Bob: %v", err)
	}
}

func TestUserService_Register_LookupFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection refused")
	svc := NewUserService(repo, zerolog.Nop())

	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "eve", Password: "pass"})
	if err == nil || errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	svc, issuer := newAuthFixture(t)

	tok, err := svc.Authenticate(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if tok.Value == "" || tok.Username != "carol" {
		t.Fatalf("unexpected token: %+v", tok)
	}

	claims, err := issuer.Verify(tok.Value)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Username != "carol" {
		t.Fatalf("expected embedded username carol, got %s", claims.Username)
	}
}

func TestAuthService_Authenticate_InvalidPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.Authenticate(context.Background(), "carol", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_UnknownUserLooksLikeBadPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Authenticate(context.Background(), "ghost", "pass")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown user must not be reported as not found")
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc, issuer := newAuthFixture(t)

	first, err := svc.Authenticate(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), first.Value)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.Value == first.Value {
		t.Fatalf("expected a new token")
	}

	claims, err := issuer.Verify(refreshed.Value)
	if err != nil {
		t.Fatalf("refreshed token invalid: %v", err)
	}
	if claims.Username != "carol" || claims.UserID != first.UserID {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.Refresh(context.Background(), "garbage"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected authentication error, got %v", err)
	}
}
