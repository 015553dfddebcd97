package admin

import (
	handlershared "github.com/think41/catalog/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func respondServiceError(c *gin.Context, err error, fallbackCode int, msg string) {
	handlershared.RespondServiceError(c, err, fallbackCode, msg)
}

func bindJSON(c *gin.Context, dest interface{}, failMsg string) bool {
	return handlershared.BindJSON(c, dest, failMsg)
}
