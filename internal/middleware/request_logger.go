package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pedroShimpa/chessdb-api/internal/logger"
)

// RequestLogger logs one line per request. Errors attached with c.Error are
// logged at error level.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		if len(c.Errors) > 0 {
			log.Error("request failed", append(fields, "error", c.Errors.String())...)
			return
		}
		log.Info("request", fields...)
	}
}
