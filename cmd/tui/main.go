package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/frostdesk/frostdesk/cmd/tui/internal/view"
	"github.com/frostdesk/frostdesk/internal/auth"
	authStore "github.com/frostdesk/frostdesk/internal/auth/store"
	"github.com/frostdesk/frostdesk/internal/client"
	clientStore "github.com/frostdesk/frostdesk/internal/client/store"
	"github.com/frostdesk/frostdesk/internal/collaborator"
	collaboratorStore "github.com/frostdesk/frostdesk/internal/collaborator/store"
	"github.com/frostdesk/frostdesk/internal/config"
	"github.com/frostdesk/frostdesk/internal/database"
	"github.com/frostdesk/frostdesk/internal/financial"
	financialStore "github.com/frostdesk/frostdesk/internal/financial/store"
	"github.com/frostdesk/frostdesk/internal/inventory"
	inventoryStore "github.com/frostdesk/frostdesk/internal/inventory/store"
	"github.com/frostdesk/frostdesk/internal/ticket"
	ticketStore "github.com/frostdesk/frostdesk/internal/ticket/store"
)

type model struct {
	ticketService       *ticket.Service
	inventoryService    *inventory.Service
	clientService       *client.Service
	collaboratorService *collaborator.Service
	financialService    *financial.Service
	companyID           uuid.UUID

	currentView View

	ticketsView   view.TicketsModel
	composeView   view.ComposeModel
	clientsView   view.ClientsModel
	dashboardView view.DashboardModel
}

type View int

const (
	ViewMenu      View = 0
	ViewTickets   View = 1
	ViewClients   View = 2
	ViewDashboard View = 3
	ViewCompose   View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.TUI.Email == "" || cfg.TUI.Password == "" {
		slog.Error("TUI_EMAIL and TUI_PASSWORD must be set")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), cfg.DB.MaxOpenConns, cfg.DB.MaxIdleConns)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authSvc := auth.NewService(authStore.New(db), issuer, cfg.Auth.ResetTTL)

	// The console talks to the database directly, so the company scope
	// comes from a sign-in at startup rather than a bearer token.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, user, err := authSvc.SignIn(ctx, cfg.TUI.Email, cfg.TUI.Password)
	if err != nil {
		slog.Error("failed to sign in", "error", err)
		os.Exit(1)
	}

	clientSvc := client.NewService(clientStore.New(db))
	collaboratorSvc := collaborator.NewService(collaboratorStore.New(db))
	inventorySvc := inventory.NewService(inventoryStore.New(db))
	financialSvc := financial.NewService(financialStore.New(db))
	ticketSvc := ticket.NewService(ticketStore.New(db), clientSvc)

	return model{
		ticketService:       ticketSvc,
		inventoryService:    inventorySvc,
		clientService:       clientSvc,
		collaboratorService: collaboratorSvc,
		financialService:    financialSvc,
		companyID:           user.CompanyID,
		currentView:         ViewMenu,
		ticketsView:         view.NewTicketsModel(ticketSvc, user.CompanyID),
		clientsView:         view.NewClientsModel(clientSvc, user.CompanyID),
		dashboardView:       view.NewDashboardModel(financialSvc, user.CompanyID),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewTickets
				m.ticketsView = view.NewTicketsModel(m.ticketService, m.companyID)

				return m, m.ticketsView.Init()
			case "2":
				m.currentView = ViewClients
				m.clientsView = view.NewClientsModel(m.clientService, m.companyID)

				return m, m.clientsView.Init()
			case "3":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.financialService, m.companyID)

				return m, m.dashboardView.Init()
			}
		}
	case view.OpenComposeMsg:
		m.currentView = ViewCompose
		m.composeView = view.NewComposeModel(
			m.ticketService, m.inventoryService, m.clientService,
			m.collaboratorService, m.companyID, msg.Ticket,
		)

		return m, m.composeView.Init()
	case view.BackMsg:
		// Compose returns to the ticket list it was opened from; all
		// other views return to the menu.
		if m.currentView == ViewCompose {
			m.currentView = ViewTickets
			m.ticketsView = view.NewTicketsModel(m.ticketService, m.companyID)

			return m, m.ticketsView.Init()
		}

		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewTickets:
		var newModel tea.Model
		newModel, cmd = m.ticketsView.Update(msg)
		m.ticketsView = newModel.(view.TicketsModel)
	case ViewCompose:
		var newModel tea.Model
		newModel, cmd = m.composeView.Update(msg)
		m.composeView = newModel.(view.ComposeModel)
	case ViewClients:
		var newModel tea.Model
		newModel, cmd = m.clientsView.Update(msg)
		m.clientsView = newModel.(view.ClientsModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"FrostDesk TUI\n\n" +
				"1. Service Tickets\n" +
				"2. Clients\n" +
				"3. Financial Dashboard\n\n" +
				"q. Quit",
		)
	case ViewTickets:
		return m.ticketsView.View()
	case ViewCompose:
		return m.composeView.View()
	case ViewClients:
		return m.clientsView.View()
	case ViewDashboard:
		return m.dashboardView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
