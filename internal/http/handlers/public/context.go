package public

import (
	handlershared "github.com/think41/catalog/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func respondServiceError(c *gin.Context, err error, fallbackCode int, fallbackMsg string) {
	handlershared.RespondServiceError(c, err, fallbackCode, fallbackMsg)
}
