package response

import (
	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`           // 是否成功
	Message string      `json:"message,omitempty"` // 提示消息
	Data    interface{} `json:"data,omitempty"`    // 数据内容
}

// PageResponse 分页响应结构
type PageResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Department interface{} `json:"department,omitempty"`
	Pagination Pagination  `json:"pagination"`
}

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Pagination 分页信息
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNext      bool  `json:"hasNext"`
	HasPrev      bool  `json:"hasPrev"`
}

// NewPagination 根据请求页码计算分页信息，页码越界时不做截断
func NewPagination(page, limit int, total int64) Pagination {
	var totalPages int64
	if limit > 0 {
		totalPages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
		HasNext:      int64(page) < totalPages,
		HasPrev:      page > 1,
	}
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(CodeOK, Response{Success: true, Data: data})
}

// SuccessWithMsg 成功响应（自定义消息）
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(CodeOK, Response{Success: true, Message: msg, Data: data})
}

// Created 创建成功响应
func Created(c *gin.Context, msg string, data interface{}) {
	c.JSON(CodeCreated, Response{Success: true, Message: msg, Data: data})
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(CodeOK, PageResponse{Success: true, Data: data, Pagination: pagination})
}

// SuccessWithDepartmentPage 部门商品分页响应（附带部门摘要）
func SuccessWithDepartmentPage(c *gin.Context, data interface{}, department interface{}, pagination Pagination) {
	c.JSON(CodeOK, PageResponse{Success: true, Data: data, Department: department, Pagination: pagination})
}

// Error 错误响应，detail 为空时省略 error 字段
func Error(c *gin.Context, statusCode int, msg string, detail string) {
	c.JSON(statusCode, ErrorResponse{
		Success:   false,
		Message:   msg,
		Error:     detail,
		RequestID: requestID(c),
	})
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg, "")
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg, "")
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
