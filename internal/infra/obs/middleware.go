package obs

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type (
	requestIDKey struct{}
	loggerKey    struct{}
)

// Middleware wires per-request observability: every request gets an ID
// and a logger carrying it, so calendar and rule handlers down the chain
// log with the same correlation fields.
type Middleware struct {
	Logger *slog.Logger
}

// RequestID honors an inbound X-Request-ID or mints one, echoes it on
// the response, and stores a request-scoped logger in the context.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		ctx := context.WithValue(c.Request.Context(), requestIDKey{}, id)
		if m.Logger != nil {
			ctx = context.WithValue(ctx, loggerKey{}, m.Logger.With("request_id", id))
		}
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// AccessLog emits one line per request through the request-scoped
// logger, tagging the property the calendar routes operate on.
func (m Middleware) AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log := LoggerFromContext(c.Request.Context())
		if log == nil {
			return
		}
		attrs := []any{
			"method", c.Request.Method,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if propertyID := c.Param("id"); propertyID != "" {
			attrs = append(attrs, "property_id", propertyID)
		}
		if c.Writer.Status() >= 500 {
			log.Error("request", attrs...)
			return
		}
		log.Info("request", attrs...)
	}
}

// RequestIDFromContext returns the correlation ID set by RequestID, or
// empty outside a request.
func RequestIDFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(requestIDKey{}).(string); ok {
		return s
	}
	return ""
}

// LoggerFromContext returns the request-scoped logger, or nil when the
// middleware was configured without one.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return nil
}
