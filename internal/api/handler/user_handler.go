package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/socialweb/social-api/internal/core/ports"
)

// UserHandler serves identity lookups and friend lists.
type UserHandler struct {
	users       ports.UserService
	friendships ports.FriendshipService
}

func NewUserHandler(users ports.UserService, friendships ports.FriendshipService) *UserHandler {
	return &UserHandler{users: users, friendships: friendships}
}

// List handles GET /api/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// GetByUsername handles GET /api/users/by-username/:username.
//
// @Summary      Get a user by username
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username (case-sensitive)"
// @Success      200       {object}  userResponse
// @Failure      404       {object}  errorResponse
// @Router       /api/users/by-username/{username} [get]
func (h *UserHandler) GetByUsername(c echo.Context) error {
	user, err := h.users.FindByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Friends handles GET /api/users/:id/friends.
//
// @Summary      List a user's friends
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {array}   userResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id}/friends [get]
func (h *UserHandler) Friends(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	friends, err := h.friendships.FriendsOf(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(friends))
}
