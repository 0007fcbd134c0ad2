package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxPostLength is the maximum post content length in characters.
const MaxPostLength = 1000

// Post is a content item authored by a user.
type Post struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Author    UserRef   `json:"author"`
}

// ValidatePostContent enforces the 1..MaxPostLength character bound.
func ValidatePostContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return NewValidationError("content", "must not be empty")
	}
	if utf8.RuneCountInString(content) > MaxPostLength {
		return NewValidationError("content", "must be at most 1000 characters")
	}
	return nil
}
