package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/floorsheet/internal/logger"
)

// RequestLogger writes one structured line per request once it completes:
// method, path, matched route, status, latency and the request id set by
// RequestID.
//
//	{"level":"info","component":"http","request_id":"…","method":"GET","path":"/api/v1/brokers","status":200,"latency_ms":3,"message":"http_request"}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		l := logger.For("http")
		evt := l.Info()
		if status >= 500 {
			evt = l.Error()
		} else if status >= 400 {
			evt = l.Warn()
		}
		evt.Str("request_id", requestID(c)).
			Str("method", method).
			Str("path", path).
			Str("route", c.FullPath()).
			Int("status", status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}
