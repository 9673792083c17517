package repository

import (
	"context"

	"poco-backend/internal/model"
	"poco-backend/pkg/db"

	"gorm.io/gorm"
)

// FriendRepository 好友关系数据仓储
type FriendRepository struct {
	orm *gorm.DB
}

// NewFriendRepository 创建FriendRepository实例
func NewFriendRepository(orm *gorm.DB) *FriendRepository {
	return &FriendRepository{orm: orm}
}

// Create 插入一条好友关系
// 同一有序对重复插入会违反唯一索引 idx_friends_pair
func (r *FriendRepository) Create(ctx context.Context, edge *model.FriendEdge) error {
	return db.WithConn(ctx, r.orm, func(conn *gorm.DB) error {
		return conn.Create(edge).Error
	})
}

// Accept 将 requester -> accepter 的待处理请求改为已接受，返回受影响行数
func (r *FriendRepository) Accept(ctx context.Context, requesterID, accepterID uint) (int64, error) {
	var affected int64
	err := db.WithConn(ctx, r.orm, func(conn *gorm.DB) error {
		result := conn.Model(&model.FriendEdge{}).
			Where("user_id = ? AND friend_id = ? AND status = ?", requesterID, accepterID, model.FriendStatusPending).
			Update("status", model.FriendStatusAccepted)
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}

// ListFriends 列出与 userID 存在已接受关系的用户（双向，去重，不含自己）
func (r *FriendRepository) ListFriends(ctx context.Context, userID uint) ([]model.UserView, error) {
	friends := make([]model.UserView, 0)
	err := db.WithConn(ctx, r.orm, func(conn *gorm.DB) error {
		return conn.Table("users AS u").
			Distinct("u.id", "u.name", "u.email").
			Joins("JOIN friends f ON (f.user_id = ? AND f.friend_id = u.id) OR (f.friend_id = ? AND f.user_id = u.id)", userID, userID).
			Where("f.status = ? AND u.id <> ?", model.FriendStatusAccepted, userID).
			Order("u.id ASC").
			Scan(&friends).Error
	})
	if err != nil {
		return nil, err
	}
	return friends, nil
}
