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

// FriendService 好友关系服务
type FriendService struct {
	repo *repository.FriendRepository
}

// NewFriendService 创建FriendService实例
func NewFriendService(repo *repository.FriendRepository) *FriendService {
	return &FriendService{repo: repo}
}

// SendRequest 发起好友请求，新建一条 pending 关系
func (s *FriendService) SendRequest(ctx context.Context, userID, friendID uint) error {
	if userID == 0 || friendID == 0 {
		return fmt.Errorf("%w: user_id and friend_id are required", ErrInvalidInput)
	}
	if userID == friendID {
		return fmt.Errorf("%w: cannot befriend yourself", ErrInvalidInput)
	}

	edge := &model.FriendEdge{UserID: userID, FriendID: friendID, Status: model.FriendStatusPending}
	if err := s.repo.Create(ctx, edge); err != nil {
		switch {
		case db.IsDuplicateKey(err):
			return ErrDuplicateRequest
		case db.IsForeignKeyViolation(err):
			return fmt.Errorf("%w: unknown user", ErrInvalidInput)
		}
		logger.Error("创建好友请求失败",
			zap.Uint("user_id", userID), zap.Uint("friend_id", friendID), zap.Error(err))
		return fmt.Errorf("%w: create friend request", ErrStorageFailure)
	}

	metrics.FriendRequestsSentTotal.Inc()
	return nil
}

// Accept 接受 requester 发给 accepter 的待处理请求
// 没有匹配的请求时不报错，返回 false
func (s *FriendService) Accept(ctx context.Context, accepterID, requesterID uint) (bool, error) {
	if accepterID == 0 || requesterID == 0 {
		return false, fmt.Errorf("%w: user_id and friend_id are required", ErrInvalidInput)
	}

	affected, err := s.repo.Accept(ctx, requesterID, accepterID)
	if err != nil {
		logger.Error("接受好友请求失败",
			zap.Uint("accepter_id", accepterID), zap.Uint("requester_id", requesterID), zap.Error(err))
		return false, fmt.Errorf("%w: accept friend request", ErrStorageFailure)
	}
	if affected == 0 {
		logger.Debug("没有可接受的好友请求",
			zap.Uint("accepter_id", accepterID), zap.Uint("requester_id", requesterID))
		return false, nil
	}

	metrics.FriendRequestsAcceptedTotal.Inc()
	return true, nil
}

// ListFriends 好友列表
func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]model.UserView, error) {
	friends, err := s.repo.ListFriends(ctx, userID)
	if err != nil {
		logger.Error("查询好友列表失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: list friends", ErrStorageFailure)
	}
	return friends, nil
}
