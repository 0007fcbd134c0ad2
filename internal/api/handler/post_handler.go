package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/socialweb/social-api/internal/core/ports"
)

// PostHandler serves posts, the global feed and user walls.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// Create handles POST /api/posts. The caller is the author.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post content (1-1000 characters)"
// @Success      201   {object}  postResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	uid, _, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.Create(c.Request().Context(), ports.CreatePostInput{
		AuthorID: uid,
		Content:  req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPostResponse(post))
}

// Feed handles GET /api/posts.
//
// @Summary      Global feed, newest first
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (max 100, 0 = all)"
// @Param        offset  query     int  false  "Posts to skip"
// @Success      200     {array}   postResponse
// @Failure      422     {object}  errorResponse
// @Router       /api/posts [get]
func (h *PostHandler) Feed(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	posts, err := h.service.Feed(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}

// Get handles GET /api/posts/:id.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	post, err := h.service.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Wall handles GET /api/posts/user/:userId.
//
// @Summary      A user's posts, newest first
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      int  true   "Author id"
// @Param        limit   query     int  false  "Page size (max 100, 0 = all)"
// @Param        offset  query     int  false  "Posts to skip"
// @Success      200     {array}   postResponse
// @Failure      404     {object}  errorResponse
// @Router       /api/posts/user/{userId} [get]
func (h *PostHandler) Wall(c echo.Context) error {
	authorID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	posts, err := h.service.WallOf(c.Request().Context(), authorID, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}
