package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"team-project-api/internal/dto"
	"team-project-api/internal/service"
)

// AuthHandler 封装了与用户认证相关的 HTTP 处理逻辑
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login 处理用户登录请求
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	// 1. 绑定并验证输入 JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, "Login", err)
		return
	}

	// 2. 调用 Service 层处理登录逻辑
	token, expiresAt, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	// 3. 登录成功响应
	logrus.WithField("username", req.Username).Info("Handler.Login: User logged in successfully")
	c.JSON(http.StatusOK, dto.LoginResponse{
		Message:   "Login successful",
		Token:     token,
		ExpiresAt: expiresAt,
	})
}
