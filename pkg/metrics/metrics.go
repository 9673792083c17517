package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HttpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
	HttpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	UsersRegisteredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "poco_users_registered_total",
		Help: "Total number of registered users",
	})
	FriendRequestsSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "poco_friend_requests_sent_total",
		Help: "Total number of friend requests created",
	})
	FriendRequestsAcceptedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "poco_friend_requests_accepted_total",
		Help: "Total number of friend requests moved to accepted",
	})
	MessagesSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "poco_messages_sent_total",
		Help: "Total number of direct messages stored",
	})
)

func init() {
	prometheus.MustRegister(
		HttpRequestsTotal, HttpRequestDuration,
		UsersRegisteredTotal, FriendRequestsSentTotal, FriendRequestsAcceptedTotal, MessagesSentTotal,
	)
}

// GinMiddleware 统计基础请求指标，供 Prometheus 拉取。
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := strconv.Itoa(c.Writer.Status())
		// 未匹配路由统一归为一个标签，避免路径基数无限增长
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		labels := prometheus.Labels{"method": c.Request.Method, "path": path, "status": status}
		HttpRequestsTotal.With(labels).Inc()
		HttpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	}
}

// Handler 暴露 /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
