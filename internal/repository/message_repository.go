package repository

import (
	"context"

	"poco-backend/internal/model"
	"poco-backend/pkg/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MessageRepository 消息数据仓储
type MessageRepository struct {
	orm *gorm.DB
}

// NewMessageRepository 创建MessageRepository实例
func NewMessageRepository(orm *gorm.DB) *MessageRepository {
	return &MessageRepository{orm: orm}
}

// Create 插入消息，时间戳在插入时写入
func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	return db.WithConn(ctx, r.orm, func(conn *gorm.DB) error {
		return conn.Create(message).Error
	})
}

// Conversation 获取两个用户之间的全部消息（双向），按时间升序
// 同一时间戳按ID排序，保持插入顺序
func (r *MessageRepository) Conversation(ctx context.Context, userID, otherID uint) ([]model.MessageView, error) {
	messages := make([]model.MessageView, 0)
	err := db.WithConn(ctx, r.orm, func(conn *gorm.DB) error {
		return conn.Model(&model.Message{}).
			Select("sender_id", "receiver_id", "message", "timestamp").
			Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
				userID, otherID, otherID, userID).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
			Scan(&messages).Error
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}
