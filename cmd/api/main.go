package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/frostdesk/frostdesk/internal/auth"
	authStore "github.com/frostdesk/frostdesk/internal/auth/store"
	"github.com/frostdesk/frostdesk/internal/category"
	categoryStore "github.com/frostdesk/frostdesk/internal/category/store"
	"github.com/frostdesk/frostdesk/internal/client"
	clientStore "github.com/frostdesk/frostdesk/internal/client/store"
	"github.com/frostdesk/frostdesk/internal/collaborator"
	collaboratorStore "github.com/frostdesk/frostdesk/internal/collaborator/store"
	"github.com/frostdesk/frostdesk/internal/config"
	"github.com/frostdesk/frostdesk/internal/database"
	"github.com/frostdesk/frostdesk/internal/export"
	"github.com/frostdesk/frostdesk/internal/financial"
	financialStore "github.com/frostdesk/frostdesk/internal/financial/store"
	appHttp "github.com/frostdesk/frostdesk/internal/http"
	authHandler "github.com/frostdesk/frostdesk/internal/http/auth"
	categoryHandler "github.com/frostdesk/frostdesk/internal/http/category"
	clientHandler "github.com/frostdesk/frostdesk/internal/http/client"
	collaboratorHandler "github.com/frostdesk/frostdesk/internal/http/collaborator"
	exportHandler "github.com/frostdesk/frostdesk/internal/http/export"
	financialHandler "github.com/frostdesk/frostdesk/internal/http/financial"
	importHandler "github.com/frostdesk/frostdesk/internal/http/importcsv"
	inventoryHandler "github.com/frostdesk/frostdesk/internal/http/inventory"
	messagingHandler "github.com/frostdesk/frostdesk/internal/http/messaging"
	settingsHandler "github.com/frostdesk/frostdesk/internal/http/settings"
	ticketHandler "github.com/frostdesk/frostdesk/internal/http/ticket"
	"github.com/frostdesk/frostdesk/internal/importer"
	"github.com/frostdesk/frostdesk/internal/inventory"
	inventoryStore "github.com/frostdesk/frostdesk/internal/inventory/store"
	"github.com/frostdesk/frostdesk/internal/messaging"
	messagingStore "github.com/frostdesk/frostdesk/internal/messaging/store"
	"github.com/frostdesk/frostdesk/internal/settings"
	settingsStore "github.com/frostdesk/frostdesk/internal/settings/store"
	"github.com/frostdesk/frostdesk/internal/ticket"
	ticketStore "github.com/frostdesk/frostdesk/internal/ticket/store"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), cfg.DB.MaxOpenConns, cfg.DB.MaxIdleConns)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	var (
		authService         = auth.NewService(authStore.New(db), issuer, cfg.Auth.ResetTTL)
		clientService       = client.NewService(clientStore.New(db))
		collaboratorService = collaborator.NewService(collaboratorStore.New(db))
		categoryService     = category.NewService(categoryStore.New(db))
		inventoryService    = inventory.NewService(inventoryStore.New(db))
		financialService    = financial.NewService(financialStore.New(db))
		ticketService       = ticket.NewService(ticketStore.New(db), clientService)
		messagingService    = messaging.NewService(messagingStore.New(db))
		settingsService     = settings.NewService(settingsStore.New(db))
		importService       = importer.NewService()
		exportService       = export.NewService(financialService, clientService)
	)

	router := appHttp.New(issuer, cfg.Server.CORSOrigins, appHttp.Handlers{
		Auth:          authHandler.NewHandler(authService),
		Clients:       clientHandler.NewHandler(clientService, ticketService, messagingService),
		Collaborators: collaboratorHandler.NewHandler(collaboratorService),
		Categories:    categoryHandler.NewHandler(categoryService),
		Inventory:     inventoryHandler.NewHandler(inventoryService),
		Tickets:       ticketHandler.NewHandler(ticketService),
		Financial:     financialHandler.NewHandler(financialService, clientService, ticketService),
		Messaging:     messagingHandler.NewHandler(messagingService),
		Settings:      settingsHandler.NewHandler(settingsService),
		Import:        importHandler.NewHandler(importService, clientService),
		Export:        exportHandler.NewHandler(exportService),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
