package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/acme/ledgerboard/internal/http/auth"
	"github.com/acme/ledgerboard/internal/http/customer"
	"github.com/acme/ledgerboard/internal/http/dashboard"
	"github.com/acme/ledgerboard/internal/http/invoice"
	"github.com/acme/ledgerboard/internal/http/render"
)

func New(
	allowedOrigins []string,
	gate func(http.Handler) http.Handler,
	authH *auth.Handler,
	dashboardH *dashboard.Handler,
	invoicesH *invoice.Handler,
	customersH *customer.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Origin", "Content-Type"},
		ExposedHeaders:   []string{render.HeaderRevalidateVersion, render.HeaderRevalidatedPath},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(gate)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Post("/login", authH.Login)

	router.Route("/dashboard", func(r chi.Router) {
		dashboardH.Routes(r)

		r.Post("/logout", authH.Logout)

		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/x-www-form-urlencoded", "multipart/form-data"))
			invoicesH.Routes(r)
		})

		r.Route("/customers", customersH.Routes)
	})

	return router
}
