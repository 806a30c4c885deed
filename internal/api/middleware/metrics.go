package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"learner-results/backend/pkg/metrics"
)

// Metrics 按路由模板记录请求数与耗时；未匹配路由统一记为 unmatched
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(route, c.Request.Method, strconv.Itoa(c.Writer.Status()), start)
	}
}
