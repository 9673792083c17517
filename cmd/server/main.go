package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"poco-backend/config"
	"poco-backend/internal/router"
	dbPkg "poco-backend/pkg/db"
	"poco-backend/pkg/logger"
	"poco-backend/pkg/password"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	cfg := config.LoadConfig()

	// 2. 初始化日志系统
	logger.InitLogger(cfg.Log)
	defer logger.Sync()

	logger.Info("=== Poco 后端启动 ===")
	logger.WithFields(map[string]interface{}{
		"port":                 cfg.Server.Port,
		"database_driver":      cfg.Database.Driver,
		"database_host":        cfg.Database.Host,
		"database_port":        cfg.Database.Port,
		"database_name":        cfg.Database.Database,
		"log_level":            cfg.Log.Level,
		"cors_allowed_origins": cfg.CORS.AllowedOrigins,
	}).Info("服务器配置信息")

	password.SetCost(cfg.Password.Cost)

	// 3. 初始化数据库连接
	if _, err := dbPkg.InitDB(cfg.Database); err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	orm := dbPkg.GetDB()
	defer func() {
		if err := dbPkg.CloseDB(); err != nil {
			logger.Error("关闭数据库连接失败", zap.Error(err))
		}
	}()
	logger.Info("数据库连接成功")

	// 3.1 建表（幂等）
	if err := dbPkg.EnsureSchema(orm); err != nil {
		logger.Fatal("初始化表结构失败", zap.Error(err))
	}
	logger.Info("表结构就绪")

	// 4. 设置Gin模式
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	} else if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 5. 创建Gin路由
	engine := router.Setup(router.NewHandlers(orm))

	// 6. 创建HTTP服务器，CORS 包在最外层
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", logger.RequestIDHeader},
		ExposedHeaders: []string{logger.RequestIDHeader},
	})
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      c.Handler(engine),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 7. 启动HTTP服务器
	go func() {
		logger.Info("HTTP服务器启动", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP服务器启动失败", zap.Error(err))
		}
	}()

	// 8. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP服务器关闭失败", zap.Error(err))
	}

	logger.Info("服务器已安全关闭")
}
