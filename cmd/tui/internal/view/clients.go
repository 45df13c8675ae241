package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/client"
)

type clientsState int

const (
	clientsStateBrowse clientsState = iota
	clientsStateSearch
)

type ClientsModel struct {
	CommonModel
	clientService *client.Service
	companyID     uuid.UUID

	state   clientsState
	table   table.Model
	clients []*client.Client
	form    *huh.Form

	search  string
	loading bool
	err     error

	formSearch string
}

func NewClientsModel(clientSvc *client.Service, companyID uuid.UUID) ClientsModel {
	columns := []table.Column{
		{Title: "Name", Width: 30},
		{Title: "Phone", Width: 16},
		{Title: "City", Width: 20},
		{Title: "District", Width: 20},
		{Title: "Reminders", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ClientsModel{
		clientService: clientSvc,
		companyID:     companyID,
		table:         t,
	}
}

func (m ClientsModel) Title() string { return "Clients" }
func (m ClientsModel) ShortHelp() string {
	if m.state == clientsStateSearch {
		return "Enter: search | Esc: cancel"
	}
	return "Esc: back | /: search | r: refresh"
}

func (m ClientsModel) Init() tea.Cmd {
	return m.loadClientsCmd()
}

func (m ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadClientsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.clients = msg.clients
		m.refreshTable()
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case clientsStateBrowse:
		return m.updateBrowse(msg)
	case clientsStateSearch:
		return m.updateSearch(msg)
	}

	return m, nil
}

func (m ClientsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadClientsCmd()
		case "/":
			return m.enterSearchMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ClientsModel) enterSearchMode() (tea.Model, tea.Cmd) {
	m.formSearch = m.search

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("search").
				Title("Search by name or phone").
				Value(&m.formSearch),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = clientsStateSearch
	m.table.Blur()
	return m, m.form.Init()
}

func (m ClientsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = clientsStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.search = m.formSearch
	m.state = clientsStateBrowse
	m.form = nil
	m.table.Focus()
	m.loading = true
	return m, m.loadClientsCmd()
}

func (m ClientsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading clients...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("%d clients", len(m.clients))
	if m.search != "" {
		header = fmt.Sprintf("%d clients matching %s", len(m.clients), activeStyle(m.search))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == clientsStateSearch && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ClientsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.clients))
	for _, c := range m.clients {
		reminders := "no"
		if c.SendMaintenanceReminders {
			reminders = "yes"
		}
		rows = append(rows, table.Row{
			c.FullName,
			c.Phone,
			c.City,
			c.District,
			reminders,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadClientsMsg struct {
	clients []*client.Client
	err     error
}

func (m ClientsModel) loadClientsCmd() tea.Cmd {
	search := m.search

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		clients, err := m.clientService.List(ctx, m.companyID, search)
		return loadClientsMsg{clients: clients, err: err}
	}
}
