package service

import "errors"

// 业务层通用错误，handler 可根据错误类型映射到合适的 HTTP 状态码。
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateRequest   = errors.New("friend request already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound 预留：当前没有操作返回它
	ErrNotFound       = errors.New("not found")
	ErrStorageFailure = errors.New("storage failure")
)
