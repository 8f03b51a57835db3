package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/geocoder89/restaurantos/internal/actorctx"
	"github.com/geocoder89/restaurantos/internal/config"
	"github.com/geocoder89/restaurantos/internal/session"
	"github.com/gin-gonic/gin"
)

const SessionCookie = "session_id"

type CookieOptions struct {
	MaxAge time.Duration
	Secure bool
}

// SessionCookieOptions keeps the cookie lifetime equal to the registry's idle TTL.
func SessionCookieOptions(cfg config.Config) CookieOptions {
	return CookieOptions{MaxAge: cfg.SessionIdleTTL(), Secure: cfg.Env == "prod"}
}

type SessionMiddleware struct {
	registry *session.Registry
	cookie   CookieOptions
}

func NewSessionMiddleware(registry *session.Registry, cookie CookieOptions) *SessionMiddleware {
	return &SessionMiddleware{registry: registry, cookie: cookie}
}

// LoadSession resolves the client's session store from its cookie and puts it
// on the context. Clients without a live session get an empty detached store.
func (m *SessionMiddleware) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, _ := c.Cookie(SessionCookie)

		store, sid := m.registry.Open(sid)
		if sid != "" {
			// Open slid the idle expiry; move the browser's copy with it
			SetSessionCookie(c, sid, m.cookie)
		}
		BindSession(c, store, sid)

		c.Next()
	}
}

// SetSessionCookie replaces any session cookie already queued on the response.
func SetSessionCookie(c *gin.Context, sid string, opts CookieOptions) {
	dropQueuedSessionCookie(c)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, sid, int(opts.MaxAge.Seconds()), "/", "", opts.Secure, true)
}

func ClearSessionCookie(c *gin.Context, opts CookieOptions) {
	dropQueuedSessionCookie(c)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", opts.Secure, true)
}

func dropQueuedSessionCookie(c *gin.Context) {
	h := c.Writer.Header()

	var kept []string
	for _, v := range h.Values("Set-Cookie") {
		if !strings.HasPrefix(v, SessionCookie+"=") {
			kept = append(kept, v)
		}
	}

	h.Del("Set-Cookie")
	for _, v := range kept {
		h.Add("Set-Cookie", v)
	}
}

// BindSession makes store the session for the rest of the request.
func BindSession(c *gin.Context, store *session.Store, sid string) {
	c.Set(ctxSessionKey, store)
	c.Set(ctxSessionIDKey, sid)

	u, ok := store.Current()
	if !ok {
		return
	}

	c.Set(ctxUserIDKey, u.ID)
	c.Request = c.Request.WithContext(actorctx.WithActor(c.Request.Context(), u))
}

// SessionFromContext never returns nil; without LoadSession the store is empty.
func SessionFromContext(c *gin.Context) *session.Store {
	if v, ok := c.Get(ctxSessionKey); ok {
		if s, ok := v.(*session.Store); ok && s != nil {
			return s
		}
	}

	s := session.NewStore()
	c.Set(ctxSessionKey, s)
	return s
}

// SessionIDFromContext is empty while the store is not registered.
func SessionIDFromContext(c *gin.Context) string {
	return c.GetString(ctxSessionIDKey)
}

func UserIDFromContext(c *gin.Context) (string, bool) {
	id := c.GetString(ctxUserIDKey)
	return id, id != ""
}
