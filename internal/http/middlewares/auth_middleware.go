package middlewares

import (
	"net/http"
	"strings"

	"github.com/geocoder89/restaurantos/internal/auth"
	"github.com/geocoder89/restaurantos/internal/session"
	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

type SessionLookup interface {
	Lookup(sid string) (*session.Store, bool)
}

// AuthMiddleware lets API clients present the token handed out at login
// instead of the session cookie.
type AuthMiddleware struct {
	jwt      TokenVerifier
	sessions SessionLookup
}

func NewAuthMiddleware(jwt TokenVerifier, sessions SessionLookup) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, sessions: sessions}
}

// RequireAuth accepts a bearer token only while the session it was minted
// for still holds it; logout or a later login invalidates it.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortWithError(c, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if raw == "" {
			abortWithError(c, http.StatusUnauthorized, "unauthorized", "Missing or invalid access token")
			return
		}

		claims, err := m.jwt.VerifyAccessToken(raw)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "unauthorized", "Invalid or expired access token")
			return
		}

		store, ok := m.sessions.Lookup(claims.SessionID())
		if !ok || !store.Authenticated() || store.Token() != raw {
			abortWithError(c, http.StatusUnauthorized, "session_ended", "Session has ended, sign in again")
			return
		}

		BindSession(c, store, claims.SessionID())

		c.Next()
	}
}
