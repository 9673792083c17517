package handler

import (
	"poco-backend/internal/service"
	"poco-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// MessageHandler 消息处理器
type MessageHandler struct {
	service *service.MessageService
}

// NewMessageHandler 创建MessageHandler实例
func NewMessageHandler(s *service.MessageService) *MessageHandler {
	return &MessageHandler{service: s}
}

// Send 发送消息
func (h *MessageHandler) Send(c *gin.Context) {
	type req struct {
		SenderID   uint   `json:"sender_id" binding:"required"`
		ReceiverID uint   `json:"receiver_id" binding:"required"`
		Message    string `json:"message" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.MissingFields(c)
		return
	}

	id, err := h.service.Send(c.Request.Context(), r.SenderID, r.ReceiverID, r.Message)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, gin.H{
		"message":    "Message sent!",
		"message_id": id,
	})
}

// Conversation 获取两人之间的消息记录
func (h *MessageHandler) Conversation(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		response.BadRequest(c, "Invalid user id")
		return
	}
	friendID, ok := pathID(c, "friendId")
	if !ok {
		response.BadRequest(c, "Invalid friend id")
		return
	}

	messages, err := h.service.Conversation(c.Request.Context(), userID, friendID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, messages)
}
