package handler

import (
	"net/http"

	"poco-backend/pkg/db"
	"poco-backend/pkg/logger"
	"poco-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Health 存储连通性检查
func Health(c *gin.Context) {
	if err := db.HealthCheck(c.Request.Context()); err != nil {
		logger.Warn("健康检查失败", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	response.OK(c, gin.H{"status": "ok"})
}
