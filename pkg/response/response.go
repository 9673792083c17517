package response

import (
	"errors"
	"net/http"

	"poco-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// 对外错误文案固定，不暴露内部错误细节
const (
	MsgMissingFields      = "Missing required fields"
	MsgInvalidInput       = "Invalid input"
	MsgDuplicateEmail     = "User already exists"
	MsgDuplicateRequest   = "Friend request already exists"
	MsgInvalidCredentials = "Invalid email or password"
	MsgNotFound           = "Not found"
	MsgInternalError      = "Internal server error"
)

// ErrorBody 错误响应结构
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody 仅含提示信息的响应结构
type MessageBody struct {
	Message string `json:"message"`
}

// OK 200
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message 仅返回提示信息
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, MessageBody{Message: message})
}

// Error 错误响应
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: message})
}

// MissingFields 请求体缺少必填字段
func MissingFields(c *gin.Context) {
	Error(c, http.StatusBadRequest, MsgMissingFields)
}

// BadRequest 400错误
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Status 将业务错误映射为HTTP状态码与对外文案
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		return http.StatusBadRequest, MsgDuplicateEmail
	case errors.Is(err, service.ErrDuplicateRequest):
		return http.StatusBadRequest, MsgDuplicateRequest
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, MsgInvalidInput
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, MsgInvalidCredentials
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, MsgNotFound
	default:
		return http.StatusInternalServerError, MsgInternalError
	}
}

// FromError 按业务错误写出错误响应，原始错误挂到 gin.Context 供请求日志记录
func FromError(c *gin.Context, err error) {
	_ = c.Error(err)
	status, message := Status(err)
	Error(c, status, message)
}
