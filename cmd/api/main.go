package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/geocoder89/restaurantos/internal/config"
	httpx "github.com/geocoder89/restaurantos/internal/http"
	"github.com/geocoder89/restaurantos/internal/observability"
	"github.com/geocoder89/restaurantos/internal/ratelimit"
	"github.com/geocoder89/restaurantos/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		observability.NewLogger("dev").Error("config invalid", "err", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.OTel)
	if err != nil {
		log.Error("tracer init failed", "err", err)
		os.Exit(1)
	}

	sessions := session.NewRegistry(cfg.SessionIdleTTL())
	go sweepSessions(ctx, sessions, cfg.SessionIdleTTL())

	deps := httpx.Deps{Sessions: sessions}

	var shuttingDown atomic.Bool
	var pingRedis func() error

	switch cfg.RateLimit.Backend {
	case "redis":
		rdb := ratelimit.NewRedisClient(ratelimit.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		deps.Limiter = ratelimit.NewRedis(rdb, "restaurantos:rl", cfg.RateLimit.Requests, cfg.RateLimitWindow())
		pingRedis = func() error {
			pingCtx, cancel := config.WithTimeout(500 * time.Millisecond)
			defer cancel()
			return rdb.Ping(pingCtx).Err()
		}
	default:
		deps.Limiter = ratelimit.NewMemory(cfg.RateLimit.Requests, cfg.RateLimitWindow())
	}

	deps.Ready = func() error {
		if shuttingDown.Load() {
			return errors.New("shutting down")
		}
		if pingRedis != nil {
			return pingRedis()
		}
		return nil
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deps.Prom = observability.NewProm(reg)
	deps.Prom.RegisterActiveSessions(reg, sessions.Active)
	deps.Gatherer = reg

	router := httpx.NewRouter(log, cfg, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "rate_limit_backend", cfg.RateLimit.Backend)
		err := srv.ListenAndServe()

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	<-ctx.Done()
	shuttingDown.Store(true)
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		shutdownCtx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}
		if err := shutdownTracer(shutdownCtx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

// sweepSessions evicts idle session ids so the registry does not grow with
// abandoned cookies.
func sweepSessions(ctx context.Context, sessions *session.Registry, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every / 2)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			sessions.Sweep()
		}
	}
}
