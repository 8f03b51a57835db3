package middlewares

import (
	"log/slog"
	"time"

	"github.com/geocoder89/restaurantos/internal/actorctx"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Writer.Header().Set(requestIDHeader, id)
		c.Set(CtxRequestID, id)

		c.Next()
	}
}

func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path // fallback (e.g. 404)
		}
		method := c.Request.Method

		c.Next()

		reqID, _ := c.Get(CtxRequestID)

		attrs := []any{
			"method", method,
			"route", route,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"request_id", reqID,
		}

		if reason := c.GetString(CtxGuard); reason != "" {
			attrs = append(attrs, "guard", reason)
		}
		if id, ok := actorctx.UserIDFrom(c.Request.Context()); ok {
			attrs = append(attrs, "user_id", id)
		}

		log.InfoContext(c.Request.Context(), "http_request", attrs...)
	}
}
