package chi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/bookstore-catalog/author"
	"github.com/marcelsud/bookstore-catalog/book"
	"github.com/marcelsud/bookstore-catalog/category"
	"github.com/marcelsud/bookstore-catalog/metrics"
	"github.com/marcelsud/bookstore-catalog/routes"
	"github.com/rs/zerolog"
)

// Handlers assembles the full routing table. The registry rejects a bad
// declaration here, at startup, before the server ever listens. The
// exporter is optional; without it no metrics middleware or endpoint is
// installed.
func Handlers(logger zerolog.Logger, exporter *metrics.OTelExporter, authors author.UseCase, categories category.UseCase, books book.UseCase) (*chi.Mux, error) {
	registry, err := routes.NewRegistry(
		authorRoutes(authors, logger),
		categoryRoutes(categories, logger),
		bookRoutes(books, logger),
	)
	if err != nil {
		return nil, fmt.Errorf("building route table: %w", err)
	}

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	if exporter != nil {
		r.Use(exporter.Middleware)
		r.Method(http.MethodGet, "/metrics", exporter.Handler())
	}

	registry.Mount(r)

	r.Get("/api", func(w http.ResponseWriter, req *http.Request) {
		respondJSON(w, logger, http.StatusOK, messageResponse{Message: "API is running!"})
	})
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeEnvelope(w, logger, http.StatusNotFound, "Resource not found")
	})

	return r, nil
}
