package repository

import (
	"context"

	"poco-backend/internal/model"
	"poco-backend/pkg/db"

	"gorm.io/gorm"
)

// UserRepository 用户数据仓储
type UserRepository struct {
	orm *gorm.DB
}

// NewUserRepository 创建UserRepository实例
func NewUserRepository(orm *gorm.DB) *UserRepository {
	return &UserRepository{orm: orm}
}

// Create 插入用户，成功后回填ID
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return db.WithConn(ctx, r.orm, func(conn *gorm.DB) error {
		return conn.Create(user).Error
	})
}

// GetByEmail 按邮箱查询，不存在时返回 gorm.ErrRecordNotFound
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := db.WithConn(ctx, r.orm, func(conn *gorm.DB) error {
		return conn.Where("email = ?", email).Take(&u).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List 列出全部用户（不含密码列）
func (r *UserRepository) List(ctx context.Context) ([]model.UserView, error) {
	users := make([]model.UserView, 0)
	err := db.WithConn(ctx, r.orm, func(conn *gorm.DB) error {
		return conn.Model(&model.User{}).
			Select("id", "name", "email").
			Order("id ASC").
			Scan(&users).Error
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}
