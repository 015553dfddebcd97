package shared

import (
	"errors"

	"github.com/think41/catalog/internal/http/response"
	"github.com/think41/catalog/internal/listquery"
	"github.com/think41/catalog/internal/logger"
	"github.com/think41/catalog/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// debugDetails 开发模式下 500 响应附带错误详情
var debugDetails bool

// SetDebugDetails 设置是否在 500 响应中返回错误详情
func SetDebugDetails(enabled bool) {
	debugDetails = enabled
}

// RespondError 返回错误响应；4xx 附带原因，5xx 记录日志且仅在开发模式附带原因。
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil && appErr.Internal() {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message, appErr.Detail(debugDetails))
}

// notFoundMessages 业务不存在错误到响应消息
var notFoundMessages = []struct {
	target error
	msg    string
}{
	{service.ErrProductNotFound, "Product not found"},
	{service.ErrCategoryNotFound, "Category not found"},
	{service.ErrBrandNotFound, "Brand not found"},
	{service.ErrDepartmentNotFound, "Department not found"},
	{service.ErrDistributionCenterNotFound, "Distribution center not found"},
}

// clientErrors 归类为 400 的业务错误
var clientErrors = []error{
	service.ErrSKUExists,
	service.ErrProductIDExists,
	service.ErrSlugExists,
	service.ErrNameExists,
}

// RespondServiceError 按错误类型映射响应；fallbackMsg 为动作失败消息，如 "Error creating product"。
// fallbackCode 为未识别错误的状态码。
func RespondServiceError(c *gin.Context, err error, fallbackCode int, fallbackMsg string) {
	for _, rule := range notFoundMessages {
		if errors.Is(err, rule.target) {
			RespondError(c, response.CodeNotFound, rule.msg, nil)
			return
		}
	}

	var inUse *service.DepartmentInUseError
	if errors.As(err, &inUse) {
		RespondError(c, response.CodeBadRequest, inUse.Error(), nil)
		return
	}

	var validation *service.ValidationError
	var fieldErr *listquery.FieldError
	if errors.As(err, &validation) || errors.As(err, &fieldErr) {
		RespondError(c, response.CodeBadRequest, fallbackMsg, err)
		return
	}
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			RespondError(c, response.CodeBadRequest, fallbackMsg, err)
			return
		}
	}

	switch {
	case errors.Is(err, service.ErrMigrationRunning):
		RespondError(c, response.CodeConflict, "Migration is already running", nil)
	case errors.Is(err, service.ErrQueueUnavailable):
		RespondError(c, response.CodeUnavailable, "Task queue is unavailable", err)
	default:
		RespondError(c, fallbackCode, fallbackMsg, err)
	}
}
