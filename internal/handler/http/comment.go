package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"team-project-api/internal/dto"
	"team-project-api/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	comment, err := h.commentService.Get(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewCommentResponse(comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, "UpdateComment", err)
		return
	}
	comment, err := h.commentService.Update(c.Request.Context(), id, req.Content)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewCommentResponse(comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.commentService.Delete(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.MessageResponse{Message: "Comment deleted successfully"})
}
