package handler

import (
	"net/http"

	"poco-backend/internal/service"
	"poco-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// FriendHandler 好友关系处理器
type FriendHandler struct {
	service *service.FriendService
}

// NewFriendHandler 创建FriendHandler实例
func NewFriendHandler(s *service.FriendService) *FriendHandler {
	return &FriendHandler{service: s}
}

type friendPair struct {
	UserID   uint `json:"user_id" binding:"required"`
	FriendID uint `json:"friend_id" binding:"required"`
}

// SendRequest 发送好友请求，user_id 为发起方
func (h *FriendHandler) SendRequest(c *gin.Context) {
	var r friendPair
	if err := c.ShouldBindJSON(&r); err != nil {
		response.MissingFields(c)
		return
	}
	if err := h.service.SendRequest(c.Request.Context(), r.UserID, r.FriendID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Friend request sent!")
}

// Accept 接受好友请求，user_id 为接受方，friend_id 为当初的发起方
func (h *FriendHandler) Accept(c *gin.Context) {
	var r friendPair
	if err := c.ShouldBindJSON(&r); err != nil {
		response.MissingFields(c)
		return
	}
	accepted, err := h.service.Accept(c.Request.Context(), r.UserID, r.FriendID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{
		"message":  "Friend request accepted!",
		"accepted": accepted,
	})
}

// ListFriends 好友列表
func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		response.BadRequest(c, "Invalid user id")
		return
	}
	friends, err := h.service.ListFriends(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, friends)
}
