package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/perfumaria/catalog-api/internal/auth"
	"github.com/perfumaria/catalog-api/internal/catalog/products"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	AuthHandler     *auth.Handler
	AuthMiddleware  *auth.Middleware
	ProductsHandler *products.Handler
}

// NewRouter constructs the chi.Router with catalog API defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		params.AuthHandler.MountPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(params.AuthMiddleware.RequireAuth)
			params.AuthHandler.MountProtectedRoutes(r)
			params.ProductsHandler.MountRoutes(r)
		})
	})

	return r
}
