package response

// AppError 带状态码的接口错误
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Internal 是否为服务端错误
func (e *AppError) Internal() bool {
	return e.Code >= CodeInternal
}

// Detail 对外可见的错误原因；服务端错误仅在 exposeInternal 时返回
func (e *AppError) Detail(exposeInternal bool) string {
	if e.Err == nil {
		return ""
	}
	if e.Internal() && !exposeInternal {
		return ""
	}
	return e.Err.Error()
}

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
