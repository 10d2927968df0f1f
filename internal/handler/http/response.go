package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"team-project-api/internal/domain"
	"team-project-api/internal/dto"
)

func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, dto.ErrorResponse{Error: message})
}

func SuccessResponse(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

func pageResponse(c *gin.Context, data interface{}, page domain.Page, total int64) {
	c.JSON(http.StatusOK, dto.PageResponse{Data: data, Page: page.Number, Limit: page.Size, Total: total})
}

// parseID 解析路径参数中的正整数 ID，失败时已写入 400 响应
func parseID(c *gin.Context, param string) (uint, bool) {
	raw := c.Param(param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 || uint64(uint(id)) != id {
		ErrorResponse(c, http.StatusBadRequest, "Invalid "+param+": must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// parsePage 读取 page 和 limit 查询参数，非法值回退为默认值
func parsePage(c *gin.Context) domain.Page {
	number, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("limit"))
	return domain.NewPage(number, size)
}
