package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/christianrafael21/hoopscout/internal/platform/ctxutil"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

// RequestLogger writes one line per API call once the chain has finished, so the
// actor set by auth and any domain error attached by the handler are included.
// 5xx log at error, 4xx at warn.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	log = log.With("component", "RequestLogger")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if c.FullPath() == "" {
			fields = append(fields, "path", c.Request.URL.Path)
		}
		fields = append(fields, ctxutil.CallerFields(c.Request.Context())...)
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("api request", fields...)
		case status >= 400:
			log.Warn("api request", fields...)
		default:
			log.Info("api request", fields...)
		}
	}
}
