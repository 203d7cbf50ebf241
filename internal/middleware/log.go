package middleware

import (
	"log/slog"
	"time"

	"expense-api/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger writes one structured line per request and tags the response
// with a request id (reusing an incoming X-Request-ID when present).
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	log = logging.WithComponent(log, logging.ComponentHTTP)

	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(logging.FieldRequestID, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			logging.FieldRequestID, requestID,
			logging.FieldMethod, c.Request.Method,
			logging.FieldPath, c.Request.URL.Path,
			logging.FieldStatus, status,
			logging.FieldDuration, time.Since(start).Milliseconds(),
			logging.FieldClientIP, c.ClientIP(),
		}
		if user, ok := CurrentUser(c); ok {
			attrs = append(attrs, logging.FieldUserID, user.ID)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, logging.FieldError, c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("request", attrs...)
		case status >= 400:
			log.Warn("request", attrs...)
		default:
			log.Info("request", attrs...)
		}
	}
}
