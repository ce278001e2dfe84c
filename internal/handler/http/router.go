package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ahmedwebmail/online-shop/internal/domain"
	"github.com/ahmedwebmail/online-shop/internal/service"
	"github.com/ahmedwebmail/online-shop/pkg/health"
	"github.com/ahmedwebmail/online-shop/pkg/middleware"
)

// RouterConfig carries the HTTP-surface settings the router needs.
type RouterConfig struct {
	Environment       string
	CORSOrigins       []string
	RateLimitRPS      int
	RateLimitBurst    int
	CacheMaxAge       int
	TracingEnabled    bool
	PprofAllowedCIDRs []string
}

// NewRouter creates a chi router with all catalog service routes registered.
func NewRouter(
	cfg RouterConfig,
	brandService *service.CatalogService[domain.Brand, *domain.Brand],
	categoryService *service.CatalogService[domain.Category, *domain.Category],
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSOrigins
	corsCfg.Environment = cfg.Environment

	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	if cfg.TracingEnabled {
		r.Use(middleware.Tracing("catalog"))
	}
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("catalog"))
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))
	}

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	if cfg.Environment == "development" {
		middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)
	}

	brandHandler := NewResourceHandler(brandService, domain.KindBrand, logger)
	categoryHandler := NewResourceHandler(categoryService, domain.KindCategory, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		if cfg.CacheMaxAge > 0 {
			r.Use(middleware.CacheControl(cfg.CacheMaxAge))
		}

		registerResourceRoutes(r, domain.KindBrand, brandHandler)
		registerResourceRoutes(r, domain.KindCategory, categoryHandler)
	})

	return r
}

// registerResourceRoutes mounts the five verb-prefixed routes for one kind:
// /{kind}-list, /create-{kind}, /select-{kind}/{slug}, /update-{kind}/{slug},
// /delete-{kind}/{slug}.
func registerResourceRoutes[T any, P domain.DocumentPtr[T]](r chi.Router, kind string, h *ResourceHandler[T, P]) {
	r.Get("/"+kind+"-list", h.List)
	r.Post("/create-"+kind, h.Create)
	r.Get("/select-"+kind+"/{slug}", h.Get)
	r.Put("/update-"+kind+"/{slug}", h.Update)
	r.Delete("/delete-"+kind+"/{slug}", h.Delete)
}

// ContentTypeJSON sets the JSON content type on every response.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
