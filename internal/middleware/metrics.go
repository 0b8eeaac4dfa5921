package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edupanel/admissions-api/internal/service"
)

// Metrics records per-request duration and status counts. The scrape
// endpoint itself is excluded so it does not inflate its own series.
func Metrics(metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil || c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		// Unregistered paths fall back to the raw URL so 404s still count.
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
