package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"booking-gateway-server/services"
)

// UnmatchedPath is the label for requests that hit no registered route.
// Scanner traffic all lands in this one bucket instead of growing the
// endpoint map per probed path.
const UnmatchedPath = "<unmatched>"

// MetricsMiddleware feeds the usage meter: request counted before the handler
// runs, completion (status + latency) after. Metering never fails a request.
func MetricsMiddleware(meter *services.UsageMeter) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = UnmatchedPath
		}
		method := c.Request.Method

		meter.RecordRequest(method, path)
		start := time.Now()

		c.Next()

		meter.RecordCompletion(method, path, c.Writer.Status(), time.Since(start).Milliseconds())
	}
}
