package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"chupchup_backend/internal/platform/metrics"
)

// unmatchedRoute labels requests that matched no registered route, so static
// paths do not explode label cardinality.
const unmatchedRoute = "unmatched"

// Metrics records request count and latency per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		method := c.Request.Method

		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
