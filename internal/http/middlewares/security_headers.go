package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultCSP = "default-src 'none'; frame-ancestors 'none'"

// paths whose responses depend on who is signed in
var privatePrefixes = []string{"/auth/", "/dashboard", "/api/"}

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", defaultCSP)

		for _, p := range privatePrefixes {
			if strings.HasPrefix(c.Request.URL.Path, p) {
				c.Header("Cache-Control", "no-store")
				break
			}
		}

		c.Next()
	}
}
