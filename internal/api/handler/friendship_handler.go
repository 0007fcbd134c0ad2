package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/socialweb/social-api/internal/core/domain"
	"github.com/socialweb/social-api/internal/core/ports"
)

// FriendshipHandler handles the friend request workflow.
type FriendshipHandler struct {
	service ports.FriendshipService
}

func NewFriendshipHandler(service ports.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{service: service}
}

// Send handles POST /api/friendships. The caller is the requester.
//
// @Summary      Send a friend request
// @Tags         friendships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      friendRequestRequest  true  "Addressee"
// @Success      201   {object}  friendshipResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/friendships [post]
func (h *FriendshipHandler) Send(c echo.Context) error {
	uid, _, err := currentUser(c)
	if err != nil {
		return err
	}

	var req friendRequestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	f, err := h.service.SendRequest(c.Request().Context(), uid, req.AddresseeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toFriendshipResponse(f))
}

// Accept handles PUT /api/friendships/:id/accept.
//
// @Summary      Accept a friend request
// @Tags         friendships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Friendship id"
// @Success      200  {object}  friendshipResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/friendships/{id}/accept [put]
func (h *FriendshipHandler) Accept(c echo.Context) error {
	return h.respond(c, h.service.Accept)
}

// Reject handles PUT /api/friendships/:id/reject.
//
// @Summary      Reject a friend request
// @Tags         friendships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Friendship id"
// @Success      200  {object}  friendshipResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/friendships/{id}/reject [put]
func (h *FriendshipHandler) Reject(c echo.Context) error {
	return h.respond(c, h.service.Reject)
}

func (h *FriendshipHandler) respond(c echo.Context, transition func(context.Context, uint64, uint64) (*domain.Friendship, error)) error {
	uid, _, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	f, err := transition(c.Request().Context(), uid, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFriendshipResponse(f))
}

// Pending handles GET /api/friendships/pending.
//
// @Summary      List incoming friend requests
// @Tags         friendships
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   friendshipResponse
// @Router       /api/friendships/pending [get]
func (h *FriendshipHandler) Pending(c echo.Context) error {
	uid, _, err := currentUser(c)
	if err != nil {
		return err
	}
	pending, err := h.service.PendingFor(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFriendshipResponses(pending))
}

// Events handles GET /api/friendships/:id/events.
//
// @Summary      Audit trail of a friendship
// @Tags         friendships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Friendship id"
// @Success      200  {array}   friendshipEventResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/friendships/{id}/events [get]
func (h *FriendshipHandler) Events(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	events, err := h.service.History(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFriendshipEventResponses(events))
}
