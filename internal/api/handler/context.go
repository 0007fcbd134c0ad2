package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/socialweb/social-api/internal/core/domain"
)

// Context keys set by the Auth middleware.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// currentUser returns the verified caller injected by the Auth middleware.
// A missing id means the route was mounted without the middleware.
func currentUser(c echo.Context) (uint64, string, error) {
	uid, _ := c.Get(ContextUserID).(uint64)
	if uid == 0 {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	username, _ := c.Get(ContextUsername).(string)
	return uid, username, nil
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}

// pageParams reads the optional limit and offset query parameters.
func pageParams(c echo.Context) (domain.Page, error) {
	var page domain.Page
	err := echo.QueryParamsBinder(c).
		Int("limit", &page.Limit).
		Int("offset", &page.Offset).
		BindError()
	if err != nil {
		return page, domain.NewValidationError("limit/offset", "must be integers")
	}
	if page.Limit < 0 || page.Offset < 0 {
		return page, domain.NewValidationError("limit/offset", "must not be negative")
	}
	return page.Normalize(), nil
}

// bindAndValidate decodes the JSON body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
