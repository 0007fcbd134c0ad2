package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/socialweb/social-api/internal/core/ports"
)

type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// Create handles POST /api/comments. The caller is the author.
//
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCommentRequest  true  "Comment"
// @Success      201   {object}  commentResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	uid, _, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.service.Create(c.Request().Context(), ports.CreateCommentInput{
		PostID:   req.PostID,
		AuthorID: uid,
		Text:     req.CommentText,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// ListByPost handles GET /api/comments/post/:postId.
//
// @Summary      Comments on a post, oldest first
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path      int  true  "Post id"
// @Success      200     {array}   commentResponse
// @Failure      404     {object}  errorResponse
// @Router       /api/comments/post/{postId} [get]
func (h *CommentHandler) ListByPost(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return err
	}
	comments, err := h.service.CommentsOf(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCommentResponses(comments))
}
