package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/accounter-io/accounter/internal/http/charge"
	"github.com/accounter-io/accounter/internal/http/client"
	"github.com/accounter-io/accounter/internal/http/importcsv"
	"github.com/accounter-io/accounter/internal/http/matching"
	"github.com/accounter-io/accounter/internal/http/middleware"
)

func New(
	chargesV1 *charge.Handler,
	clientsV1 *client.Handler,
	matchingV1 *matching.Handler,
	importV1 *importcsv.Handler,
	jwtSecret string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(jwtSecret))

		r.Route("/charges", func(r chi.Router) {
			chargesV1.Routes(r)
		})

		r.Route("/clients", func(r chi.Router) {
			clientsV1.Routes(r)
		})

		r.Route("/matching", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			matchingV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)
	})

	return router
}
