// Package http exposes the URL use case over HTTP/JSON.
// Use case errors are mapped to statuses in one place, see renderError.
package http

import (
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/vadimbarashkov/tinyurl-service/pkg/middleware/recoverer"
	"go.uber.org/zap"
)

// NewRouter returns a chi router serving the API under /api/v1 and
// short URI redirects at the root.
func NewRouter(httpLogger *httplog.Logger, logger *zap.Logger, urlUseCase urlUseCase) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(httpLogger))
	r.Use(recoverer.New(logger))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	h := newURLHandler(urlUseCase, validator.New())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", handlePing)
		r.Get("/stats", h.getTotalStats)

		r.Route("/shorten", func(r chi.Router) {
			r.Post("/", h.shortenURL)

			r.Route("/{shortURI}", func(r chi.Router) {
				r.Get("/", h.resolveShortURI)
				r.Delete("/", h.deleteShortURI)
				r.Get("/stats", h.getURLStats)
			})
		})
	})

	r.Get("/{shortURI}", h.redirect)

	return r
}
