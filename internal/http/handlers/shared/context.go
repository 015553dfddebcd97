package shared

import (
	"strconv"
	"strings"

	"github.com/think41/catalog/internal/http/response"

	"github.com/gin-gonic/gin"
)

// BindJSON 解析 JSON 请求体，失败时以 failMsg 返回 400。
func BindJSON(c *gin.Context, dest interface{}, failMsg string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		RespondError(c, response.CodeBadRequest, failMsg, err)
		return false
	}
	return true
}

// QueryBool 读取布尔查询参数，无法解析时为 false。
func QueryBool(c *gin.Context, key string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return err == nil && value
}

// QueryInt 读取整数查询参数，缺省或无法解析时返回 fallback。
func QueryInt(c *gin.Context, key string, fallback int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
