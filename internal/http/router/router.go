package router

import (
	"github.com/go-chi/chi/v5"

	"userhub/internal/http/handlers/health"
	userhandler "userhub/internal/http/handlers/user"
	"userhub/internal/http/responses"
	"userhub/internal/logging"
)

func NewRouter(
	logger logging.Logger,
	corsOrigins []string,
	healthHandler *health.Handler,
	userHandler *userhandler.Handler,
) chi.Router {
	r := chi.NewRouter()

	useBaseMiddlewares(r, logger.With("component", "http"), corsOrigins)

	r.Get("/health", healthHandler.Check)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Post("/", userHandler.Create)
		r.Get("/{id}", userHandler.GetByID)
		r.Put("/{id}", userHandler.Update)
		r.Delete("/{id}", userHandler.Delete)
	})

	r.NotFound(responses.WriteNotFound)
	r.MethodNotAllowed(responses.WriteMethodNotAllowed)

	return r
}
