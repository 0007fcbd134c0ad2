package domain

import "time"

// User models a registered account.
type User struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Ref returns the public reference to u.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Username: u.Username}
}
