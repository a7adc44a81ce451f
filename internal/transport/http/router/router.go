package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/scms-platform/identity-service/internal/application/identity"
	"github.com/scms-platform/identity-service/internal/transport/http/handlers"
	"github.com/scms-platform/identity-service/internal/transport/http/middleware"
	"github.com/scms-platform/identity-service/internal/transport/http/response"
)

// Deps carries everything the HTTP surface needs. The metrics handler is
// injected so the router stays ignorant of the prometheus registry.
type Deps struct {
	Service        *identity.Service
	Verifier       middleware.TokenVerifier
	Metrics        *middleware.Metrics
	MetricsHandler http.Handler
	ServiceName    string
}

// New assembles the full route tree.
func New(deps Deps) http.Handler {
	auth := handlers.NewAuthHandler(deps.Service, deps.Metrics)
	users := handlers.NewUserHandler(deps.Service)
	health := handlers.NewHealthHandler(deps.ServiceName)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Instrument(routePattern))
	}

	r.Post("/register", auth.Register)
	r.Post("/login", auth.Login)
	r.Post("/logout", auth.Logout)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health.Health)
		r.Get("/users/{id}", users.GetUser)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Verifier, response.WriteError))
			r.Get("/protected-data", auth.Protected)
		})
	})

	r.Get("/healthz", health.Liveness)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	return r
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}
