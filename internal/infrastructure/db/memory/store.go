// Package memory provides process-local implementations of the repository
// ports. It backs DB_DRIVER=memory and the API tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/socialweb/social-api/internal/core/domain"
)

// Store holds every table behind a single lock.
type Store struct {
	mu sync.RWMutex

	users       map[uint64]domain.User
	friendships map[uint64]domain.Friendship
	posts       map[uint64]domain.Post
	comments    map[uint64]domain.Comment

	nextUser, nextFriendship, nextPost, nextComment uint64
}

func NewStore() *Store {
	return &Store{
		users:       make(map[uint64]domain.User),
		friendships: make(map[uint64]domain.Friendship),
		posts:       make(map[uint64]domain.Post),
		comments:    make(map[uint64]domain.Comment),
	}
}

func (s *Store) Users() *UserRepository             { return &UserRepository{s: s} }
func (s *Store) Friendships() *FriendshipRepository { return &FriendshipRepository{s: s} }
func (s *Store) Posts() *PostRepository             { return &PostRepository{s: s} }
func (s *Store) Comments() *CommentRepository       { return &CommentRepository{s: s} }

// UserRepository implements ports.UserRepository.
type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.s.nextUser++
	u := *user
	u.ID = r.s.nextUser
	r.s.users[u.ID] = u
	return &u, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id uint64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByIDs(_ context.Context, ids []uint64) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepository) List(_ context.Context) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FriendshipRepository implements ports.FriendshipRepository.
type FriendshipRepository struct{ s *Store }

func (r *FriendshipRepository) Create(_ context.Context, f *domain.Friendship) (*domain.Friendship, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := domain.PairKey(f.Requester.ID, f.Addressee.ID)
	for _, existing := range r.s.friendships {
		if existing.Status == domain.FriendshipPending &&
			domain.PairKey(existing.Requester.ID, existing.Addressee.ID) == key {
			return nil, domain.ErrDuplicateRequest
		}
	}
	r.s.nextFriendship++
	created := *f
	created.ID = r.s.nextFriendship
	r.s.friendships[created.ID] = created
	return &created, nil
}

func (r *FriendshipRepository) FindByID(_ context.Context, id uint64) (*domain.Friendship, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	f, ok := r.s.friendships[id]
	if !ok {
		return nil, domain.ErrFriendshipNotFound
	}
	return &f, nil
}

func (r *FriendshipRepository) FindBetween(_ context.Context, a, b uint64) ([]domain.Friendship, error) {
	return r.filter(func(f domain.Friendship) bool {
		return (f.Requester.ID == a && f.Addressee.ID == b) || (f.Requester.ID == b && f.Addressee.ID == a)
	}), nil
}

func (r *FriendshipRepository) UpdateStatus(_ context.Context, id uint64, from, to domain.FriendshipStatus) (*domain.Friendship, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := r.s.friendships[id]
	if !ok {
		return nil, domain.ErrFriendshipNotFound
	}
	if f.Status != from {
		return nil, domain.ErrInvalidTransition
	}
	f.Status = to
	f.UpdatedAt = time.Now().UTC()
	r.s.friendships[id] = f
	return &f, nil
}

func (r *FriendshipRepository) ListAccepted(_ context.Context, userID uint64) ([]domain.Friendship, error) {
	return r.filter(func(f domain.Friendship) bool {
		return f.Status == domain.FriendshipAccepted && f.Involves(userID)
	}), nil
}

func (r *FriendshipRepository) ListPendingFor(_ context.Context, userID uint64) ([]domain.Friendship, error) {
	return r.filter(func(f domain.Friendship) bool {
		return f.Status == domain.FriendshipPending && f.Addressee.ID == userID
	}), nil
}

// filter returns matching records in id order.
func (r *FriendshipRepository) filter(keep func(domain.Friendship) bool) []domain.Friendship {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Friendship, 0)
	for _, f := range r.s.friendships {
		if keep(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PostRepository implements ports.PostRepository.
type PostRepository struct{ s *Store }

func (r *PostRepository) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextPost++
	created := *p
	created.ID = r.s.nextPost
	r.s.posts[created.ID] = created
	return &created, nil
}

func (r *PostRepository) FindByID(_ context.Context, id uint64) (*domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return &p, nil
}

func (r *PostRepository) List(_ context.Context, page domain.Page) ([]domain.Post, error) {
	return r.newestFirst(page, func(domain.Post) bool { return true }), nil
}

func (r *PostRepository) ListByAuthor(_ context.Context, authorID uint64, page domain.Page) ([]domain.Post, error) {
	return r.newestFirst(page, func(p domain.Post) bool { return p.Author.ID == authorID }), nil
}

func (r *PostRepository) newestFirst(page domain.Page, keep func(domain.Post) bool) []domain.Post {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Post, 0)
	for _, p := range r.s.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return paginate(out, page)
}

// CommentRepository implements ports.CommentRepository.
type CommentRepository struct{ s *Store }

func (r *CommentRepository) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[c.PostID]; !ok {
		return nil, domain.ErrPostNotFound
	}
	r.s.nextComment++
	created := *c
	created.ID = r.s.nextComment
	r.s.comments[created.ID] = created
	return &created, nil
}

func (r *CommentRepository) ListByPost(_ context.Context, postID uint64) ([]domain.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Comment, 0)
	for _, c := range r.s.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func paginate[T any](items []T, page domain.Page) []T {
	if page.Offset >= len(items) {
		return items[:0]
	}
	items = items[page.Offset:]
	if page.Limit > 0 && page.Limit < len(items) {
		items = items[:page.Limit]
	}
	return items
}
