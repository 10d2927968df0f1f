package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"team-project-api/internal/service"
)

type SystemHandler struct {
	info          AppInfo
	systemService *service.SystemService
}

func NewSystemHandler(info AppInfo, systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{info: info, systemService: systemService}
}

// Root 处理 GET /，返回 API 简介和常用链接
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Welcome to " + h.info.Name + " API",
		"version":   h.info.Version,
		"health":    "/health",
		"info":      "/system/info",
		"api":       "/api/v1",
		"timestamp": timestamp(),
	})
}

func (h *SystemHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        h.info.Name,
		"description": h.info.Description,
		"version":     h.info.Version,
		"debug":       h.info.Debug,
		"environment": h.info.Environment,
		"database": gin.H{
			"host":     h.info.DBHost,
			"port":     h.info.DBPort,
			"database": h.info.DBName,
		},
		"timestamp": timestamp(),
	})
}

func (h *SystemHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": h.info.Version,
		"name":    h.info.Name,
	})
}

// Status 处理 GET /system/status；实体计数来自后台刷新的缓存，未就绪时为 "unknown"
func (h *SystemHandler) Status(c *gin.Context) {
	body := gin.H{
		"status":         "running",
		"environment":    h.info.Environment,
		"debug_mode":     h.info.Debug,
		"uptime_seconds": int64(h.systemService.Uptime() / time.Second),
		"timestamp":      timestamp(),
	}
	if counts, ok := h.systemService.EntityCounts(c.Request.Context()); ok {
		body["entities"] = counts
	} else {
		body["entities"] = "unknown"
	}
	c.JSON(http.StatusOK, body)
}
