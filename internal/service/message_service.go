package service

import (
	"context"
	"fmt"

	"poco-backend/internal/model"
	"poco-backend/internal/repository"
	"poco-backend/pkg/db"
	"poco-backend/pkg/logger"
	"poco-backend/pkg/metrics"

	"go.uber.org/zap"
)

// MessageService 消息服务
type MessageService struct {
	messageRepo *repository.MessageRepository
}

// NewMessageService 创建MessageService实例
func NewMessageService(messageRepo *repository.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// Send 发送私聊消息，返回消息ID
func (s *MessageService) Send(ctx context.Context, senderID, receiverID uint, body string) (uint, error) {
	if senderID == 0 || receiverID == 0 || body == "" {
		return 0, fmt.Errorf("%w: sender_id, receiver_id and message are required", ErrInvalidInput)
	}

	message := &model.Message{SenderID: senderID, ReceiverID: receiverID, Body: body}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		if db.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: unknown user", ErrInvalidInput)
		}
		logger.Error("保存消息失败",
			zap.Uint("sender_id", senderID), zap.Uint("receiver_id", receiverID), zap.Error(err))
		return 0, fmt.Errorf("%w: create message", ErrStorageFailure)
	}

	metrics.MessagesSentTotal.Inc()
	return message.ID, nil
}

// Conversation 获取两人之间的全部消息，按时间升序
func (s *MessageService) Conversation(ctx context.Context, userID, otherID uint) ([]model.MessageView, error) {
	messages, err := s.messageRepo.Conversation(ctx, userID, otherID)
	if err != nil {
		logger.Error("查询会话失败",
			zap.Uint("user_id", userID), zap.Uint("other_id", otherID), zap.Error(err))
		return nil, fmt.Errorf("%w: load conversation", ErrStorageFailure)
	}
	return messages, nil
}
