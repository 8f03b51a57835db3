package http

import (
	"log/slog"
	"time"

	"github.com/geocoder89/restaurantos/internal/access"
	"github.com/geocoder89/restaurantos/internal/auth"
	"github.com/geocoder89/restaurantos/internal/config"
	"github.com/geocoder89/restaurantos/internal/domain/user"
	"github.com/geocoder89/restaurantos/internal/guard"
	"github.com/geocoder89/restaurantos/internal/http/handlers"
	"github.com/geocoder89/restaurantos/internal/http/middlewares"
	"github.com/geocoder89/restaurantos/internal/observability"
	"github.com/geocoder89/restaurantos/internal/ratelimit"
	"github.com/geocoder89/restaurantos/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps are the long-lived collaborators main builds. Nil fields get
// in-process defaults, which is what the tests rely on.
type Deps struct {
	Roster   *user.Roster
	Sessions *session.Registry
	Tokens   *auth.Manager
	Limiter  ratelimit.Limiter
	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
	Ready    func() error
}

func (d Deps) withDefaults(cfg config.Config) Deps {
	if d.Roster == nil {
		d.Roster = user.DefaultRoster()
	}
	if d.Sessions == nil {
		d.Sessions = session.NewRegistry(cfg.SessionIdleTTL())
	}
	if d.Tokens == nil {
		d.Tokens = auth.NewManager(cfg.JWTSecret, cfg.AccessTTL())
	}
	if d.Limiter == nil {
		d.Limiter = ratelimit.NewMemory(cfg.RateLimit.Requests, cfg.RateLimitWindow())
	}
	if d.Prom == nil {
		reg := prometheus.NewRegistry()
		d.Prom = observability.NewProm(reg)
		d.Prom.RegisterActiveSessions(reg, d.Sessions.Active)
		d.Gatherer = reg
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	return d
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	deps = deps.withDefaults(cfg)
	policy := access.Standard()

	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(deps.Prom.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))

	// every request gets a session store, then the guard decides on navigations
	sessions := middlewares.NewSessionMiddleware(deps.Sessions, middlewares.SessionCookieOptions(cfg))
	r.Use(sessions.LoadSession())
	r.Use(middlewares.GuardNavigation(guard.New(policy), deps.Prom))

	// health
	h := handlers.NewHealthHandler(deps.Ready)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{Timeout: 5 * time.Second})))

	pages := handlers.NewPagesHandler(policy, deps.Roster)
	authHandler := handlers.NewAuthHandler(
		auth.NewAuthenticator(deps.Roster),
		deps.Tokens,
		deps.Sessions,
		policy,
		deps.Prom,
		cfg,
	)

	// public pages
	r.GET(guard.HomePath, pages.Public("home"))
	r.GET(guard.AboutPath, pages.Public("about"))
	r.GET(guard.ContactPath, pages.Public("contact"))
	r.GET(guard.RegisterPath, pages.Public("register"))
	r.GET(guard.LoginPath, pages.Public("login"))

	r.POST(guard.LoginPath, middlewares.RequireJSON(), authHandler.Login)
	r.POST("/auth/logout", authHandler.Logout)

	// dashboard, gated by GuardNavigation above
	dash := r.Group(access.DashboardRoot)
	dash.GET("", pages.Dashboard("dashboard"))
	dash.GET("/orders", pages.Dashboard("orders"))
	dash.GET("/orders/new", pages.Dashboard("orders.new"))
	dash.GET("/orders/kitchen", pages.Dashboard("orders.kitchen"))
	dash.GET("/menu", pages.Dashboard("menu"))
	dash.GET("/staff", pages.Dashboard("staff"))
	dash.GET("/settings", pages.Dashboard("settings"))

	// token clients
	authMW := middlewares.NewAuthMiddleware(deps.Tokens, deps.Sessions)
	api := r.Group("/api", authMW.RequireAuth(), middlewares.RateLimit(deps.Limiter, middlewares.KeyByUserOrIP, deps.Prom))
	api.GET("/me", pages.Me)
	api.POST("/logout", authHandler.Logout)

	return r
}
