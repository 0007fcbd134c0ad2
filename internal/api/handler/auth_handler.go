package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/socialweb/social-api/internal/core/ports"
)

type AuthHandler struct {
	users ports.UserService
	auth  ports.AuthService
}

func NewAuthHandler(users ports.UserService, auth ports.AuthService) *AuthHandler {
	return &AuthHandler{users: users, auth: auth}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.auth.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTokenResponse(token))
}

// Refresh exchanges a valid token for a new one with a fresh expiry. The token
// is read from the body, falling back to the Authorization header.
//
// @Summary      Refresh a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  false  "Token to refresh"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	raw := req.Token
	if raw == "" {
		raw = bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	}
	if raw == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	token, err := h.auth.Refresh(c.Request().Context(), raw)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTokenResponse(token))
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
