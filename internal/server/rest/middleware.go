package rest

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeabtsegataye/equb-system/internal/logging"
)

// requestLogger logs one line per request. Bodies, cookies and headers are
// never logged.
func requestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		l.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}
