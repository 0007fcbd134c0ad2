// Package token issues and verifies HS256 bearer tokens.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/socialweb/social-api/internal/core/domain"
	"github.com/socialweb/social-api/internal/core/ports"
)

const defaultTTL = 24 * time.Hour

// claims carries the identity as uid and username; sub repeats the uid as a
// string for generic JWT consumers.
type claims struct {
	UID      uint64 `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issuer implements ports.TokenIssuer with a shared HMAC secret.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer. A non-positive ttl falls back to 24h.
func NewIssuer(secret, issuer string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Issuer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// Issue signs a fresh token for the given identity.
func (i *Issuer) Issue(userID uint64, username string) (*ports.Token, error) {
	now := i.now()
	exp := now.Add(i.ttl)

	c := claims{
		UID:      userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(userID, 10),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &ports.Token{
		Value:     signed,
		UserID:    userID,
		Username:  username,
		ExpiresAt: exp.UTC(),
	}, nil
}

// Verify checks signature, algorithm and expiry and returns the claims.
func (i *Issuer) Verify(raw string) (*ports.Claims, error) {
	var c claims
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}

	tkn, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}, opts...)
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	if c.UID == 0 || c.Username == "" {
		return nil, domain.ErrInvalidToken
	}
	if c.Subject != "" && c.Subject != strconv.FormatUint(c.UID, 10) {
		return nil, domain.ErrInvalidToken
	}

	out := &ports.Claims{
		ID:       c.ID,
		UserID:   c.UID,
		Username: c.Username,
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out, nil
}

// IsInvalid reports whether err came from Verify rejecting a token.
func IsInvalid(err error) bool {
	return errors.Is(err, domain.ErrInvalidToken)
}
