package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	// access
	GuardDecisions *prometheus.CounterVec
	Logins         *prometheus.CounterVec
	RateLimited    prometheus.Counter
}

func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "restaurantos",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "restaurantos",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "restaurantos",
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
			[]string{"method", "route"},
		),
		GuardDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "restaurantos",
				Subsystem: "guard",
				Name:      "decisions_total",
				Help:      "Route guard decisions by outcome and reason.",
			},
			[]string{"outcome", "reason"},
		),
		Logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "restaurantos",
				Subsystem: "auth",
				Name:      "logins_total",
				Help:      "Login attempts by result.",
			},
			[]string{"result"}, // result=success|failure
		),
		RateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "restaurantos",
				Subsystem: "api",
				Name:      "rate_limited_total",
				Help:      "API requests rejected by the rate limiter.",
			},
		),
	}
	reg.MustRegister(p.RequestsTotal, p.RequestsDuration, p.InFlight, p.GuardDecisions, p.Logins, p.RateLimited)

	return p
}

// RegisterActiveSessions exposes the session registry size as a gauge.
func (p *Prom) RegisterActiveSessions(reg prometheus.Registerer, active func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "restaurantos",
			Subsystem: "sessions",
			Name:      "active",
			Help:      "Session ids currently held in memory.",
		},
		func() float64 { return float64(active()) },
	))
}

func (p *Prom) ObserveGuard(outcome, reason string) {
	p.GuardDecisions.WithLabelValues(outcome, reason).Inc()
}

func (p *Prom) ObserveLogin(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	p.Logins.WithLabelValues(result).Inc()
}

func (p *Prom) ObserveRateLimited() {
	p.RateLimited.Inc()
}

func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		// unmatched paths share one label so scanners cannot blow up cardinality
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method
		p.InFlight.WithLabelValues(method, route).Inc()
		defer p.InFlight.WithLabelValues(method, route).Dec()

		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		secs := time.Since(start).Seconds()

		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(secs)
	}
}
