package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/vaultpass/passgen-go/internal/handler"
	"github.com/vaultpass/passgen-go/internal/metrics"
	"github.com/vaultpass/passgen-go/internal/middleware"
)

// RouterDeps are the collaborators the router wires together.
// Metrics is optional.
type RouterDeps struct {
	Logger    *slog.Logger
	Generator *handler.GeneratorHandler
	Metrics   *metrics.Metrics
}

// NewRouter builds the HTTP routes and middleware chain.
func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS())

	r.Get("/health", handler.HandleHealth)
	r.Post("/generate-password", deps.Generator.HandleGenerate)

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	return r
}
