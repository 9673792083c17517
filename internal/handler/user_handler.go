package handler

import (
	"net/http"

	"poco-backend/internal/service"
	"poco-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(s *service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// Home 欢迎信息
func (h *UserHandler) Home(c *gin.Context) {
	response.Message(c, http.StatusOK, "Welcome to the Poco Backend API!")
}

// ListUsers 用户列表
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, users)
}

// Register 用户注册
func (h *UserHandler) Register(c *gin.Context) {
	type req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.MissingFields(c)
		return
	}
	id, err := h.service.Register(c.Request.Context(), r.Name, r.Email, r.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "User registered successfully!",
		"user_id": id,
	})
}

// Login 用户登录
func (h *UserHandler) Login(c *gin.Context) {
	type req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.MissingFields(c)
		return
	}
	identity, err := h.service.Authenticate(c.Request.Context(), r.Email, r.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{
		"message": "Login successful!",
		"user_id": identity.ID,
		"name":    identity.Name,
	})
}
