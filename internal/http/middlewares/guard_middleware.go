package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/geocoder89/restaurantos/internal/guard"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type DecisionObserver interface {
	ObserveGuard(outcome, reason string)
}

// GuardNavigation runs the route guard against the session bound by
// LoadSession. Only navigations (GET/HEAD) are guarded, so a signed-in user
// can still post the login form. A redirect ends the request with 302.
func GuardNavigation(g *guard.Guard, obs DecisionObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m := c.Request.Method; m != http.MethodGet && m != http.MethodHead {
			c.Next()
			return
		}

		store := SessionFromContext(c)
		d := g.Evaluate(c.Request.URL.Path, store)

		c.Set(CtxGuard, string(d.Reason))

		trace.SpanFromContext(c.Request.Context()).SetAttributes(
			attribute.String("guard.outcome", d.Outcome.String()),
			attribute.String("guard.reason", string(d.Reason)),
		)
		if obs != nil {
			obs.ObserveGuard(d.Outcome.String(), string(d.Reason))
		}

		if d.Outcome == guard.Redirect {
			slog.Default().DebugContext(c.Request.Context(), "guard_redirect",
				"path", c.Request.URL.Path,
				"location", d.Location,
				"reason", string(d.Reason),
			)
			c.Redirect(http.StatusFound, d.Location)
			c.Abort()
			return
		}

		c.Next()
	}
}
