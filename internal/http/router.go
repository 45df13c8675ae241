package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	internalauth "github.com/frostdesk/frostdesk/internal/auth"
	authhttp "github.com/frostdesk/frostdesk/internal/http/auth"
	categoryhttp "github.com/frostdesk/frostdesk/internal/http/category"
	clienthttp "github.com/frostdesk/frostdesk/internal/http/client"
	collaboratorhttp "github.com/frostdesk/frostdesk/internal/http/collaborator"
	exporthttp "github.com/frostdesk/frostdesk/internal/http/export"
	financialhttp "github.com/frostdesk/frostdesk/internal/http/financial"
	importcsvhttp "github.com/frostdesk/frostdesk/internal/http/importcsv"
	inventoryhttp "github.com/frostdesk/frostdesk/internal/http/inventory"
	messaginghttp "github.com/frostdesk/frostdesk/internal/http/messaging"
	"github.com/frostdesk/frostdesk/internal/http/middleware"
	settingshttp "github.com/frostdesk/frostdesk/internal/http/settings"
	tickethttp "github.com/frostdesk/frostdesk/internal/http/ticket"
)

type Handlers struct {
	Auth          *authhttp.Handler
	Clients       *clienthttp.Handler
	Collaborators *collaboratorhttp.Handler
	Categories    *categoryhttp.Handler
	Inventory     *inventoryhttp.Handler
	Tickets       *tickethttp.Handler
	Financial     *financialhttp.Handler
	Messaging     *messaginghttp.Handler
	Settings      *settingshttp.Handler
	Import        *importcsvhttp.Handler
	Export        *exporthttp.Handler
}

func New(issuer *internalauth.TokenIssuer, corsOrigins []string, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			h.Auth.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(issuer))

			r.Route("/me", h.Auth.ProfileRoutes)

			r.Route("/clients", func(r chi.Router) {
				h.Clients.Routes(r)
			})

			r.Route("/collaborators", h.Collaborators.Routes)
			r.Route("/categories", h.Categories.Routes)
			r.Route("/inventory", h.Inventory.Routes)

			r.Route("/services", func(r chi.Router) {
				h.Tickets.Routes(r)
			})

			r.Route("/financial", func(r chi.Router) {
				h.Financial.Routes(r)
			})

			r.Route("/messages", h.Messaging.Routes)
			r.Route("/settings", h.Settings.Routes)
			r.Route("/import", h.Import.Routes)
			r.Route("/export", h.Export.Routes)
		})
	})

	return router
}
