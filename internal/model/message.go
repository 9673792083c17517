package model

import (
	"time"
)

// Message 私聊消息，创建后不可修改
// Timestamp 由服务端在插入时写入
type Message struct {
	ID         uint      `gorm:"primaryKey"`
	SenderID   uint      `gorm:"not null;index:idx_messages_pair,priority:1"`
	ReceiverID uint      `gorm:"not null;index:idx_messages_pair,priority:2"`
	Body       string    `gorm:"column:message;type:text;not null"`
	Timestamp  time.Time `gorm:"column:timestamp;not null;autoCreateTime;index"`

	Sender   User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Message) TableName() string { return "messages" }

// MessageView 会话中的一条消息
type MessageView struct {
	SenderID   uint      `json:"sender_id"`
	ReceiverID uint      `json:"receiver_id"`
	Body       string    `json:"message" gorm:"column:message"`
	Timestamp  time.Time `json:"timestamp"`
}
