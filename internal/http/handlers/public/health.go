package public

import (
	"context"
	"time"

	"github.com/think41/catalog/internal/http/response"

	"github.com/gin-gonic/gin"
)

const healthPingTimeout = 2 * time.Second

// GetAPIInfo 接口概览
func (h *Handler) GetAPIInfo(c *gin.Context) {
	c.JSON(response.CodeOK, gin.H{
		"success": true,
		"message": h.Config.App.Name,
		"version": h.Config.App.Version,
		"endpoints": gin.H{
			"products":            "/api/products",
			"categories":          "/api/categories",
			"brands":              "/api/brands",
			"departments":         "/api/departments",
			"distributionCenters": "/api/distribution-centers",
			"health":              "/api/health",
		},
	})
}

// GetHealth 健康检查；存储不可用时返回 503
func (h *Handler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()
	if err := h.Ping(ctx); err != nil {
		respondError(c, response.CodeUnavailable, "Database is unavailable", err)
		return
	}
	c.JSON(response.CodeOK, gin.H{
		"success":   true,
		"message":   "API is running properly",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}
