package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestLogger attaches a request id and a request-scoped logger to the
// request context and logs the outcome of each request.
func RequestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request
		rid := req.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Header("X-Request-ID", rid)

		logger := base.With().
			Str("request_id", rid).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Str("remote_ip", c.ClientIP()).
			Logger()
		c.Request = req.WithContext(logger.WithContext(req.Context()))

		c.Next()

		status := c.Writer.Status()
		duration := time.Since(start)
		if status >= 500 {
			logger.Error().Int("status", status).Dur("duration", duration).Msg("http request failed")
			return
		}
		logger.Info().Int("status", status).Dur("duration", duration).Msg("http request served")
	}
}
