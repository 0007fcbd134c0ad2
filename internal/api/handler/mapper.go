package handler

import (
	"github.com/socialweb/social-api/internal/core/domain"
	"github.com/socialweb/social-api/internal/core/ports"
)

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}
	return out
}

func toTokenResponse(t *ports.Token) tokenResponse {
	return tokenResponse{
		Token:     t.Value,
		UserID:    t.UserID,
		Username:  t.Username,
		ExpiresAt: t.ExpiresAt,
	}
}

func toUserRef(r domain.UserRef) userRefResponse {
	return userRefResponse{ID: r.ID, Username: r.Username}
}

func toFriendshipResponse(f *domain.Friendship) friendshipResponse {
	return friendshipResponse{
		ID:        f.ID,
		Requester: toUserRef(f.Requester),
		Addressee: toUserRef(f.Addressee),
		Status:    string(f.Status),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func toFriendshipResponses(fs []domain.Friendship) []friendshipResponse {
	out := make([]friendshipResponse, len(fs))
	for i := range fs {
		out[i] = toFriendshipResponse(&fs[i])
	}
	return out
}

func toFriendshipEventResponses(events []domain.FriendshipEvent) []friendshipEventResponse {
	out := make([]friendshipEventResponse, len(events))
	for i, e := range events {
		out[i] = friendshipEventResponse{
			FriendshipID: e.FriendshipID,
			ActorID:      e.ActorID,
			Status:       string(e.Status),
			OccurredAt:   e.OccurredAt,
		}
	}
	return out
}

func toPostResponse(p *domain.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UserID:    p.Author.ID,
		Username:  p.Author.Username,
	}
}

func toPostResponses(posts []domain.Post) []postResponse {
	out := make([]postResponse, len(posts))
	for i := range posts {
		out[i] = toPostResponse(&posts[i])
	}
	return out
}

func toCommentResponse(cm *domain.Comment) commentResponse {
	return commentResponse{
		ID:          cm.ID,
		CommentText: cm.CommentText,
		CreatedAt:   cm.CreatedAt,
		PostID:      cm.PostID,
		UserID:      cm.Author.ID,
		Username:    cm.Author.Username,
	}
}

func toCommentResponses(comments []domain.Comment) []commentResponse {
	out := make([]commentResponse, len(comments))
	for i := range comments {
		out[i] = toCommentResponse(&comments[i])
	}
	return out
}
