package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/biztime/internal/http/company"
	"github.com/MrJamesThe3rd/biztime/internal/http/export"
	"github.com/MrJamesThe3rd/biztime/internal/http/importcsv"
	"github.com/MrJamesThe3rd/biztime/internal/http/industry"
	"github.com/MrJamesThe3rd/biztime/internal/http/invoice"
	"github.com/MrJamesThe3rd/biztime/internal/http/render"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	AllowedOrigins []string
	// JWTSecret enables the bearer guard on mutating requests when set.
	JWTSecret string
}

func New(
	opts Options,
	db Pinger,
	companies *company.Handler,
	industries *industry.Handler,
	invoices *invoice.Handler,
	imports *importcsv.Handler,
	exports *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/health", health(db))

	router.Group(func(r chi.Router) {
		if opts.JWTSecret != "" {
			r.Use(RequireToken(opts.JWTSecret))
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))

			r.Route("/companies", companies.Routes)
			r.Route("/industries", industries.Routes)
			r.Route("/invoices", invoices.Routes)
		})

		r.Route("/companies/import", func(r chi.Router) {
			r.Use(middleware.AllowContentType("multipart/form-data"))
			imports.Routes(r)
		})

		r.Route("/export", exports.Routes)
	})

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		render.Fail(w, http.StatusNotFound, "not found")
	})

	return router
}

func health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			render.Fail(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}

		render.JSON(w, http.StatusOK, render.Envelope{"status": "ok"})
	}
}
