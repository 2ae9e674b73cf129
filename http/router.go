package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"deal-calculator/service"
)

type RouterConfig struct {
	Service        *service.DealService
	Limiter        *RateLimiter
	Logger         *zap.Logger
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter wires the deal API. Calculation routes are rate limited per
// client; health and metrics are not.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger.Named("http")
	dealHandler := NewDealHandler(cfg.Service, log)
	benchmarkHandler := NewBenchmarkHandler(cfg.Service, log)

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(log))
	r.Use(middleware.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/deal", func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(RateLimitMiddleware(cfg.Limiter, log))
		}
		r.Post("/calculate", dealHandler.Calculate)
		r.Post("/metrics", dealHandler.Metrics)
		r.Post("/monte-carlo", dealHandler.MonteCarlo)

		r.Get("/benchmarks", benchmarkHandler.List)
		r.Get("/benchmarks/{industry}", benchmarkHandler.Get)
		r.Post("/benchmarks/compare", benchmarkHandler.Compare)
	})

	return r
}
