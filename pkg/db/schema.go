package db

import (
	"fmt"

	"poco-backend/internal/model"

	"gorm.io/gorm"
)

// SchemaModels 按依赖顺序列出的全部表
func SchemaModels() []interface{} {
	return []interface{}{&model.User{}, &model.FriendEdge{}, &model.Message{}}
}

// EnsureSchema 幂等地创建 users / friends / messages 表及其约束
// 表已存在时不做任何破坏性修改，可在每次启动时调用
func EnsureSchema(orm *gorm.DB) error {
	if orm == nil {
		return fmt.Errorf("数据库未初始化")
	}
	if err := orm.AutoMigrate(SchemaModels()...); err != nil {
		return fmt.Errorf("自动迁移失败: %w", err)
	}
	return nil
}
