package domain

import (
	"strings"
	"time"
)

// Comment is a reply attached to a post.
type Comment struct {
	ID          uint64    `json:"id"`
	PostID      uint64    `json:"postId"`
	CommentText string    `json:"commentText"`
	CreatedAt   time.Time `json:"createdAt"`
	Author      UserRef   `json:"author"`
}

// ValidateCommentText rejects empty comments.
func ValidateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return NewValidationError("commentText", "must not be empty")
	}
	return nil
}
