package service

import (
	"context"
	"errors"
	"fmt"

	"poco-backend/internal/model"
	"poco-backend/internal/repository"
	"poco-backend/pkg/db"
	"poco-backend/pkg/logger"
	"poco-backend/pkg/metrics"
	"poco-backend/pkg/password"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register 注册，返回新用户ID
func (s *UserService) Register(ctx context.Context, name, email, plainPassword string) (uint, error) {
	if name == "" || email == "" || plainPassword == "" {
		return 0, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	// 密码哈希
	hash, err := password.Hash(plainPassword)
	if errors.Is(err, password.ErrTooLong) {
		return 0, fmt.Errorf("%w: password too long", ErrInvalidInput)
	}
	if err != nil {
		logger.Error("密码哈希失败", zap.Error(err))
		return 0, fmt.Errorf("%w: hash password", ErrStorageFailure)
	}

	user := &model.User{Name: name, Email: email, Password: hash}
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsDuplicateKey(err) {
			logger.Info("注册邮箱已存在", zap.String("email", email))
			return 0, ErrDuplicateEmail
		}
		logger.Error("创建用户失败", zap.String("email", email), zap.Error(err))
		return 0, fmt.Errorf("%w: create user", ErrStorageFailure)
	}

	metrics.UsersRegisteredTotal.Inc()
	logger.Info("用户注册成功", zap.Uint("user_id", user.ID))
	return user.ID, nil
}

// Authenticate 校验邮箱与密码
// 邮箱不存在与密码错误对外返回同一个错误，原因仅记录在日志中
func (s *UserService) Authenticate(ctx context.Context, email, plainPassword string) (*model.Identity, error) {
	if email == "" || plainPassword == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Info("登录失败：邮箱不存在", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		logger.Error("查询用户失败", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("%w: lookup user", ErrStorageFailure)
	}

	if err := password.Verify(plainPassword, u.Password); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			logger.Info("登录失败：密码错误", zap.Uint("user_id", u.ID))
		} else {
			logger.Warn("登录失败：密码哈希无法校验", zap.Uint("user_id", u.ID), zap.Error(err))
		}
		return nil, ErrInvalidCredentials
	}
	return &model.Identity{ID: u.ID, Name: u.Name}, nil
}

// ListUsers 列出全部用户
func (s *UserService) ListUsers(ctx context.Context) ([]model.UserView, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		logger.Error("查询用户列表失败", zap.Error(err))
		return nil, fmt.Errorf("%w: list users", ErrStorageFailure)
	}
	return users, nil
}
