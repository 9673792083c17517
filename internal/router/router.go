package router

import (
	"net/http"

	"poco-backend/internal/handler"
	"poco-backend/internal/repository"
	"poco-backend/internal/service"
	"poco-backend/pkg/logger"
	"poco-backend/pkg/metrics"
	"poco-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handlers 路由用到的全部处理器
type Handlers struct {
	User    *handler.UserHandler
	Friend  *handler.FriendHandler
	Message *handler.MessageHandler
}

// NewHandlers 基于同一个数据库句柄组装仓储、服务与处理器
func NewHandlers(orm *gorm.DB) Handlers {
	userRepo := repository.NewUserRepository(orm)
	friendRepo := repository.NewFriendRepository(orm)
	messageRepo := repository.NewMessageRepository(orm)

	return Handlers{
		User:    handler.NewUserHandler(service.NewUserService(userRepo)),
		Friend:  handler.NewFriendHandler(service.NewFriendService(friendRepo)),
		Message: handler.NewMessageHandler(service.NewMessageService(messageRepo)),
	}
}

// Setup 创建Gin路由
func Setup(h Handlers) *gin.Engine {
	router := gin.New()

	router.Use(logger.RequestID())
	router.Use(logger.RequestLogger())
	router.Use(logger.Recovery())
	router.Use(metrics.GinMiddleware())

	router.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, response.MsgNotFound)
	})

	// 基础路由
	router.GET("/", h.User.Home)
	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// 用户
	router.GET("/users", h.User.ListUsers)
	router.POST("/users", h.User.Register)
	router.POST("/login", h.User.Login)

	// 好友
	router.POST("/friend-request", h.Friend.SendRequest)
	router.POST("/friend-request/accept", h.Friend.Accept)
	router.GET("/friends/:userId", h.Friend.ListFriends)

	// 消息
	router.POST("/messages", h.Message.Send)
	router.GET("/messages/:userId/:friendId", h.Message.Conversation)

	return router
}
