package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"team-project-api/internal/dto"
	"team-project-api/internal/service"
)

// HandleServiceError 把服务层错误映射为 HTTP 状态码
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicateUser):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrServiceUnavailable):
		ErrorResponse(c, http.StatusServiceUnavailable, err.Error())
	default:
		// Log the internal error for debugging
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// handleBindError 处理请求体绑定或校验失败
func handleBindError(c *gin.Context, handler string, err error) {
	logrus.WithError(err).Warnf("Handler.%s: Invalid input format", handler)
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid input", Details: err.Error()})
}
