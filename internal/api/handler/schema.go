package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Token string `json:"token"`
}

type friendRequestRequest struct {
	AddresseeID uint64 `json:"addresseeId" validate:"required,gt=0"`
}

type createPostRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

type createCommentRequest struct {
	PostID      uint64 `json:"postId"      validate:"required,gt=0"`
	CommentText string `json:"commentText" validate:"required"`
}

// --- Response types ---

type userResponse struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	UserID    uint64    `json:"userId"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type userRefResponse struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

type friendshipResponse struct {
	ID        uint64          `json:"id"`
	Requester userRefResponse `json:"requester"`
	Addressee userRefResponse `json:"addressee"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type friendshipEventResponse struct {
	FriendshipID uint64    `json:"friendshipId"`
	ActorID      uint64    `json:"actorId"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurredAt"`
}

type postResponse struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    uint64    `json:"userId"`
	Username  string    `json:"username"`
}

type commentResponse struct {
	ID          uint64    `json:"id"`
	CommentText string    `json:"commentText"`
	CreatedAt   time.Time `json:"createdAt"`
	PostID      uint64    `json:"postId"`
	UserID      uint64    `json:"userId"`
	Username    string    `json:"username"`
}
