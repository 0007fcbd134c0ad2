package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialweb/social-api/internal/core/domain"
	"github.com/socialweb/social-api/internal/core/ports/mocks"
)

// authed returns a context carrying the identity the Auth middleware would set.
func authed(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, uid uint64, username string) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(ContextUserID, uid)
	c.Set(ContextUsername, username)
	return c
}

func sampleFriendship(status domain.FriendshipStatus) *domain.Friendship {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Friendship{
		ID:        7,
		Requester: domain.UserRef{ID: 1, Username: "alice"},
		Addressee: domain.UserRef{ID: 2, Username: "bob"},
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestFriendshipHandler_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockFriendshipService(ctrl)
	h := NewFriendshipHandler(svc)
	e := newTestEcho()

	svc.EXPECT().SendRequest(gomock.Any(), uint64(1), uint64(2)).Return(sampleFriendship(domain.FriendshipPending), nil)

	rec := httptest.NewRecorder()
	c := authed(e, jsonRequest(http.MethodPost, "/api/friendships", `{"addresseeId":2}`), rec, 1, "alice")

	require.NoError(t, h.Send(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp friendshipResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "alice", resp.Requester.Username)
	assert.Equal(t, "bob", resp.Addressee.Username)
}

func TestFriendshipHandler_Send_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		setup   func(*mocks.MockFriendshipService)
		wantErr error
	}{
		{
			name:    "missing addressee",
			body:    `{}`,
			setup:   func(*mocks.MockFriendshipService) {},
			wantErr: domain.ErrValidation,
		},
		{
			name: "duplicate",
			body: `{"addresseeId":2}`,
			setup: func(m *mocks.MockFriendshipService) {
				m.EXPECT().SendRequest(gomock.Any(), uint64(1), uint64(2)).Return(nil, domain.ErrDuplicateRequest)
			},
			wantErr: domain.ErrConflict,
		},
		{
			name: "unknown addressee",
			body: `{"addresseeId":99}`,
			setup: func(m *mocks.MockFriendshipService) {
				m.EXPECT().SendRequest(gomock.Any(), uint64(1), uint64(99)).Return(nil, domain.ErrUserNotFound)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockFriendshipService(ctrl)
			tt.setup(svc)

			c := authed(newTestEcho(), jsonRequest(http.MethodPost, "/api/friendships", tt.body), httptest.NewRecorder(), 1, "alice")
			assert.ErrorIs(t, NewFriendshipHandler(svc).Send(c), tt.wantErr)
		})
	}
}

func TestFriendshipHandler_Send_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewFriendshipHandler(mocks.NewMockFriendshipService(ctrl))
	e := newTestEcho()

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/friendships", `{"addresseeId":2}`), httptest.NewRecorder())

	var he *echo.HTTPError
	require.True(t, errors.As(h.Send(c), &he))
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestFriendshipHandler_AcceptReject(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockFriendshipService(ctrl)
	h := NewFriendshipHandler(svc)
	e := newTestEcho()

	svc.EXPECT().Accept(gomock.Any(), uint64(2), uint64(7)).Return(sampleFriendship(domain.FriendshipAccepted), nil)
	svc.EXPECT().Reject(gomock.Any(), uint64(2), uint64(7)).Return(nil, domain.ErrInvalidTransition)

	rec := httptest.NewRecorder()
	c := authed(e, httptest.NewRequest(http.MethodPut, "/", nil), rec, 2, "bob")
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Accept(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ACCEPTED"`)

	c = authed(e, httptest.NewRequest(http.MethodPut, "/", nil), httptest.NewRecorder(), 2, "bob")
	c.SetParamNames("id")
	c.SetParamValues("7")
	assert.ErrorIs(t, h.Reject(c), domain.ErrInvalidTransition)
}

func TestFriendshipHandler_Accept_BadID(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewFriendshipHandler(mocks.NewMockFriendshipService(ctrl))

	c := authed(newTestEcho(), httptest.NewRequest(http.MethodPut, "/", nil), httptest.NewRecorder(), 2, "bob")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	assert.ErrorIs(t, h.Accept(c), domain.ErrValidation)
}

func TestFriendshipHandler_PendingAndEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockFriendshipService(ctrl)
	h := NewFriendshipHandler(svc)
	e := newTestEcho()

	svc.EXPECT().PendingFor(gomock.Any(), uint64(2)).Return([]domain.Friendship{*sampleFriendship(domain.FriendshipPending)}, nil)
	svc.EXPECT().History(gomock.Any(), uint64(7)).Return([]domain.FriendshipEvent{
		{FriendshipID: 7, ActorID: 1, Status: domain.FriendshipPending},
		{FriendshipID: 7, ActorID: 2, Status: domain.FriendshipAccepted},
	}, nil)

	rec := httptest.NewRecorder()
	require.NoError(t, h.Pending(authed(e, httptest.NewRequest(http.MethodGet, "/", nil), rec, 2, "bob")))
	var pending []friendshipResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, uint64(7), pending[0].ID)

	rec = httptest.NewRecorder()
	c := authed(e, httptest.NewRequest(http.MethodGet, "/", nil), rec, 2, "bob")
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Events(c))
	var events []friendshipEventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, "ACCEPTED", events[1].Status)
}

func TestUserHandler_Friends(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockFriendshipService(ctrl)
	users := &stubUserService{}
	h := NewUserHandler(users, svc)

	svc.EXPECT().FriendsOf(gomock.Any(), uint64(1)).Return([]domain.User{{ID: 2, Username: "bob"}}, nil)
	svc.EXPECT().FriendsOf(gomock.Any(), uint64(9)).Return(nil, domain.ErrUserNotFound)

	rec := httptest.NewRecorder()
	c := newTestEcho().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Friends(c))
	var friends []userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &friends))
	require.Len(t, friends, 1)
	assert.Equal(t, "bob", friends[0].Username)

	c = newTestEcho().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("9")
	assert.ErrorIs(t, h.Friends(c), domain.ErrUserNotFound)
}
