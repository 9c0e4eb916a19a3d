package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ==================== 指标定义 ====================

var (
	// OrdersCreatedTotal 成功下单计数
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fc_orders_created_total",
		Help: "Total number of orders created",
	})

	// CheckoutFailedTotal 下单失败计数，按原因分类
	CheckoutFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fc_checkout_failed_total",
		Help: "Total number of failed checkout attempts",
	}, []string{"reason"})

	// OrderStatusChangedTotal 订单状态流转计数
	OrderStatusChangedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fc_order_status_changed_total",
		Help: "Total number of order status transitions",
	}, []string{"status"})

	// HTTPRequestDuration 请求延迟
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fc_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	// HTTPRequestsTotal 请求总数
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fc_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

// ==================== Gin 中间件 ====================

// Metrics 请求指标采集中间件
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// 用路由模板做标签，避免 /orders/123 之类的高基数
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())

		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
