package mysql

import (
	"time"

	"github.com/socialweb/social-api/internal/core/domain"
)

type userRecord struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"type:varchar(64) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin;not null;uniqueIndex"`
	Email        string    `gorm:"type:varchar(255)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userRecord) TableName() string { return "users" }

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

// friendshipRecord.PendingKey holds the participant pair while the request is
// PENDING and NULL afterwards, so the unique index allows one open request per
// pair and any number of closed ones.
type friendshipRecord struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement"`
	RequesterID uint64     `gorm:"not null;index"`
	Requester   userRecord `gorm:"foreignKey:RequesterID"`
	AddresseeID uint64     `gorm:"not null;index"`
	Addressee   userRecord `gorm:"foreignKey:AddresseeID"`
	Status      string     `gorm:"type:varchar(16);not null;index"`
	PendingKey  *string    `gorm:"type:varchar(64);uniqueIndex"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

func (friendshipRecord) TableName() string { return "friendships" }

func (r *friendshipRecord) toDomain() domain.Friendship {
	return domain.Friendship{
		ID:        r.ID,
		Requester: domain.UserRef{ID: r.RequesterID, Username: r.Requester.Username},
		Addressee: domain.UserRef{ID: r.AddresseeID, Username: r.Addressee.Username},
		Status:    domain.FriendshipStatus(r.Status),
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

type postRecord struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement"`
	Content   string     `gorm:"type:varchar(1000);not null"`
	CreatedAt time.Time  `gorm:"not null;index"`
	AuthorID  uint64     `gorm:"not null;index"`
	Author    userRecord `gorm:"foreignKey:AuthorID"`
}

func (postRecord) TableName() string { return "posts" }

func (r *postRecord) toDomain() domain.Post {
	return domain.Post{
		ID:        r.ID,
		Content:   r.Content,
		CreatedAt: r.CreatedAt.UTC(),
		Author:    domain.UserRef{ID: r.AuthorID, Username: r.Author.Username},
	}
}

type commentRecord struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement"`
	PostID      uint64     `gorm:"not null;index"`
	Post        postRecord `gorm:"foreignKey:PostID"`
	CommentText string     `gorm:"type:text;not null"`
	CreatedAt   time.Time  `gorm:"not null;index"`
	AuthorID    uint64     `gorm:"not null;index"`
	Author      userRecord `gorm:"foreignKey:AuthorID"`
}

func (commentRecord) TableName() string { return "comments" }

func (r *commentRecord) toDomain() domain.Comment {
	return domain.Comment{
		ID:          r.ID,
		PostID:      r.PostID,
		CommentText: r.CommentText,
		CreatedAt:   r.CreatedAt.UTC(),
		Author:      domain.UserRef{ID: r.AuthorID, Username: r.Author.Username},
	}
}
