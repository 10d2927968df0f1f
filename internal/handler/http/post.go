package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"team-project-api/internal/domain"
	"team-project-api/internal/dto"
	"team-project-api/internal/service"
)

// PostHandler 封装了帖子以及帖子下评论的 HTTP 处理逻辑
type PostHandler struct {
	postService    *service.PostService
	commentService *service.CommentService
}

func NewPostHandler(postService *service.PostService, commentService *service.CommentService) *PostHandler {
	return &PostHandler{postService: postService, commentService: commentService}
}

// List 处理 GET /posts
func (h *PostHandler) List(c *gin.Context) {
	page := parsePage(c)
	posts, total, err := h.postService.List(c.Request.Context(), page)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	pageResponse(c, dto.NewPostResponses(posts), page, total)
}

// Get 处理 GET /posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	post, err := h.postService.Get(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewPostResponse(post))
}

// Update 处理 PUT /posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, "UpdatePost", err)
		return
	}

	post, err := h.postService.Update(c.Request.Context(), id, domain.PostUpdate{Title: req.Title, Content: req.Content})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewPostResponse(post))
}

// Delete 处理 DELETE /posts/:id，级联删除评论
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.postService.Delete(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.MessageResponse{Message: "Post deleted successfully"})
}

// ListComments 处理 GET /posts/:id/comments
func (h *PostHandler) ListComments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	page := parsePage(c)
	comments, total, err := h.commentService.ListByPost(c.Request.Context(), id, page)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	pageResponse(c, dto.NewCommentResponses(comments), page, total)
}

// CreateComment 处理 POST /posts/:id/comments
func (h *PostHandler) CreateComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, "CreateComment", err)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), id, req.UserID, req.Content)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, dto.NewCommentResponse(comment))
}
