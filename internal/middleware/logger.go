package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/finny/internal/logger"
)

// RequestLogger is a Gin middleware that logs method, path, status code,
// request latency, and request ID (if available).
//
// Errors attached with c.Error are included so failed upstream calls are visible in logs
// even though clients only see a generic message.
//
// Example log output:
//
//	{"level":"info","request_id":"123e...","method":"GET","path":"/api/data/AAPL","status":200,"latency_ms":215,"message":"http_request"}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		evt := logger.L().Info()
		if status >= 500 {
			evt = logger.L().Error()
		}
		if len(c.Errors) > 0 {
			evt = evt.Str("errors", c.Errors.String())
		}

		evt.
			Str("request_id", GetRequestID(c)).
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
