package middlewares

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/geocoder89/restaurantos/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

type RateLimitObserver interface {
	ObserveRateLimited()
}

// RateLimit enforces the limiter for a key derived from the request. Limiter
// errors (e.g. Redis down) are logged and the request goes through.
func RateLimit(l ratelimit.Limiter, keyFn func(*gin.Context) string, obs RateLimitObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)
		if key == "" {
			key = "ip:" + clientIP(c)
		}

		res, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			slog.Default().WarnContext(c.Request.Context(), "rate_limiter_unavailable", "err", err)
			c.Next()
			return
		}

		if !res.Allowed {
			if obs != nil {
				obs.ObserveRateLimited()
			}
			retryAfter := int(math.Ceil(res.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(retryAfter, 0)))
			abortWithError(c, http.StatusTooManyRequests, "rate_limited", "Too many requests. Please try again shortly.")
			return
		}

		c.Next()
	}
}

// for unauthenticated endpoints: rate limit by IP
func KeyByIP(c *gin.Context) string {
	return "ip:" + clientIP(c)
}

// For authenticated endpoints: rate limit by user id if available
func KeyByUserOrIP(c *gin.Context) string {
	if id, ok := UserIDFromContext(c); ok {
		return "user:" + id
	}
	return KeyByIP(c)
}

func clientIP(c *gin.Context) string {
	ip := c.ClientIP()

	host, _, err := net.SplitHostPort(ip)
	if err == nil && host != "" {
		return host
	}
	return ip
}
