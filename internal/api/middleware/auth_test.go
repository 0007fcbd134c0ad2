package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/socialweb/social-api/internal/api/handler"
	"github.com/socialweb/social-api/internal/infrastructure/token"
)

func newIssuer() *token.Issuer {
	return token.NewIssuer("secret", "social-api", time.Hour)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	issuer := newIssuer()
	tok, err := issuer.Issue(42, "alice")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Value)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(issuer)
	next := mw(func(c echo.Context) error {
		called = true
		if c.Get(handler.ContextUserID) != uint64(42) {
			t.Fatalf("user id not set")
		}
		if c.Get(handler.ContextUsername) != "alice" {
			t.Fatalf("username not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := next(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	foreign, err := token.NewIssuer("other-secret", "social-api", time.Hour).Issue(1, "mallory")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc"},
		{"no token", "Bearer"},
		{"malformed token", "Bearer not-a-token"},
		{"foreign signature", "Bearer " + foreign.Value},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			mw := Auth(newIssuer())
			next := mw(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := next(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
