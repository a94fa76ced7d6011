package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-tms-api/internal/config"
	"go-tms-api/internal/handler"
	"go-tms-api/internal/middleware"
)

// ResourceRoutes is implemented by every generic resource handler.
type ResourceRoutes interface {
	Pattern() string
	Routes(r chi.Router)
}

type Handlers struct {
	Auth      *handler.AuthHandler
	Audit     *handler.AuditHandler
	Events    *handler.EventsHandler
	Resources []ResourceRoutes
	Metrics   *middleware.Metrics
	// MetricsHandler serves the Prometheus exposition format.
	MetricsHandler http.Handler
	// Health reports readiness of backing services.
	Health func(r *http.Request) error
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	if h.Metrics != nil {
		r.Use(h.Metrics.Handler)
	}
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)
	if cfg.MaxBodyBytes > 0 {
		r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	}

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if h.Health != nil {
			if err := h.Health(req); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if h.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", h.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		// The event stream is long-lived and hijacks the connection, so it
		// stays outside the request timeout.
		if h.Events != nil {
			api.With(authMiddleware.RequireAuth).Get("/events", h.Events.Stream)
		}

		api.Group(func(timed chi.Router) {
			timed.Use(middleware.Timeout(cfg.RequestTimeout))

			timed.Route("/login", func(login chi.Router) {
				login.Post("/token", h.Auth.Login)
				login.With(authMiddleware.RequireAuth).Put("/password", h.Auth.ChangePassword)
				login.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
			})
			timed.Post("/register/manual", h.Auth.Register)

			timed.Group(func(protected chi.Router) {
				protected.Use(authMiddleware.RequireAuth)

				if h.Audit != nil {
					protected.Get("/audit", h.Audit.List)
				}
				for _, resource := range h.Resources {
					protected.Route(resource.Pattern(), resource.Routes)
				}
			})
		})
	})

	return r
}
