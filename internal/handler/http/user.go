package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"team-project-api/internal/dto"
	"team-project-api/internal/service"
)

// UserHandler 封装了用户以及用户名下帖子的 HTTP 处理逻辑
type UserHandler struct {
	userService *service.UserService
	postService *service.PostService
}

// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(userService *service.UserService, postService *service.PostService) *UserHandler {
	return &UserHandler{userService: userService, postService: postService}
}

// List 处理 GET /users
func (h *UserHandler) List(c *gin.Context) {
	page := parsePage(c)
	users, total, err := h.userService.List(c.Request.Context(), page)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	pageResponse(c, dto.NewUserResponses(users), page, total)
}

// Create 处理 POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	// 1. 绑定并验证输入 JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, "CreateUser", err)
		return
	}

	// 2. 调用 Service 层创建用户
	user, err := h.userService.Create(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	// 3. 成功响应，不包含密码哈希
	logrus.WithField("user_id", user.ID).Info("Handler.CreateUser: User created")
	SuccessResponse(c, http.StatusCreated, dto.NewUserResponse(user))
}

// Get 处理 GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewUserResponse(user))
}

// Update 处理 PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, "UpdateUser", err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, service.UserUpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.NewUserResponse(user))
}

// Delete 处理 DELETE /users/:id，级联删除帖子和评论
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}

// ListPosts 处理 GET /users/:id/posts
func (h *UserHandler) ListPosts(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	page := parsePage(c)
	posts, total, err := h.postService.ListByUser(c.Request.Context(), id, page)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	pageResponse(c, dto.NewPostResponses(posts), page, total)
}

// CreatePost 处理 POST /users/:id/posts
func (h *UserHandler) CreatePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, "CreatePost", err)
		return
	}

	post, err := h.postService.Create(c.Request.Context(), id, req.Title, req.Content)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, dto.NewPostResponse(post))
}

