package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/ticket"
)

type ticketsState int

const (
	ticketsStateBrowse ticketsState = iota
	ticketsStateConfirmDelete
)

// OpenComposeMsg asks the root model to open the compose screen, either
// blank or pre-filled from an existing ticket.
type OpenComposeMsg struct {
	Ticket *ticket.Ticket
}

type TicketsModel struct {
	CommonModel
	ticketService *ticket.Service
	companyID     uuid.UUID

	state   ticketsState
	table   table.Model
	tickets []*ticket.Ticket
	confirm *huh.Form

	dateFilterIdx int

	filter  ticket.ListFilter
	loading bool
	err     error
	status  string

	formDelete bool
}

func NewTicketsModel(ticketSvc *ticket.Service, companyID uuid.UUID) TicketsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 16},
		{Title: "Client", Width: 28},
		{Title: "Collaborator", Width: 20},
		{Title: "Total", Width: 10},
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

	return TicketsModel{
		ticketService: ticketSvc,
		companyID:     companyID,
		table:         t,
		filter:        ticket.ListFilter{},
	}
}

func (m TicketsModel) Title() string { return "Service Tickets" }
func (m TicketsModel) ShortHelp() string {
	if m.state == ticketsStateConfirmDelete {
		return "Confirm deletion"
	}
	return "Esc: back | n: new | e: edit | x: delete | d: date filter | r: refresh"
}

func (m TicketsModel) Init() tea.Cmd {
	return m.loadTicketsCmd()
}

func (m TicketsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTicketsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.tickets = msg.tickets
		m.refreshTable()
		return m, nil

	case ticketDeleteMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
		} else {
			m.status = "Ticket deleted"
		}
		return m, m.loadTicketsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case ticketsStateBrowse:
		return m.updateBrowse(msg)
	case ticketsStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m TicketsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadTicketsCmd()
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % 3
			m.applyFilter()
			return m, m.loadTicketsCmd()
		case "n":
			return m, func() tea.Msg { return OpenComposeMsg{} }
		case "e":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.tickets) {
				return m, nil
			}
			t := m.tickets[idx]
			return m, func() tea.Msg { return OpenComposeMsg{Ticket: t} }
		case "x":
			return m.enterConfirmDelete()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m TicketsModel) enterConfirmDelete() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.tickets) {
		return m, nil
	}

	m.formDelete = false
	m.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("delete").
				Title("Delete this service ticket?").
				Description("Its material lines are removed with it.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.formDelete),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = ticketsStateConfirmDelete
	m.table.Blur()
	return m, m.confirm.Init()
}

func (m TicketsModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = ticketsStateBrowse
			m.confirm = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}

	if m.confirm.State != huh.StateCompleted {
		return m, cmd
	}

	deleteIt := m.formDelete
	m.state = ticketsStateBrowse
	m.confirm = nil
	m.table.Focus()

	if !deleteIt {
		return m, nil
	}

	return m, m.deleteCmd()
}

func (m TicketsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading service tickets...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	dateLabels := []string{"All Time", "This Month", "Last Month"}

	header := fmt.Sprintf("Filter: [d] Date: %s", activeStyle(dateLabels[m.dateFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == ticketsStateConfirmDelete && m.confirm != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.confirm.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *TicketsModel) applyFilter() {
	now := time.Now()
	switch m.dateFilterIdx {
	case 1:
		s := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		e := s.AddDate(0, 1, 0).Add(-time.Nanosecond)
		m.filter.StartDate = &s
		m.filter.EndDate = &e
	case 2:
		s := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		e := s.AddDate(0, 1, 0).Add(-time.Nanosecond)
		m.filter.StartDate = &s
		m.filter.EndDate = &e
	default:
		m.filter.StartDate = nil
		m.filter.EndDate = nil
	}
}

func (m *TicketsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.tickets))
	for _, t := range m.tickets {
		clientName := ""
		if t.Client != nil {
			clientName = t.Client.FullName
		}
		collaboratorName := ""
		if t.Collaborator != nil {
			collaboratorName = t.Collaborator.Name
		}
		rows = append(rows, table.Row{
			FormatDate(t.ServiceDate),
			t.ServiceType,
			clientName,
			collaboratorName,
			FormatAmount(t.TotalValue),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadTicketsMsg struct {
	tickets []*ticket.Ticket
	err     error
}

func (m TicketsModel) loadTicketsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		tickets, err := m.ticketService.List(ctx, m.companyID, m.filter)
		return loadTicketsMsg{tickets: tickets, err: err}
	}
}

type ticketDeleteMsg struct {
	err error
}

func (m TicketsModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.tickets) {
		return nil
	}

	id := m.tickets[idx].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return ticketDeleteMsg{err: m.ticketService.Delete(ctx, m.companyID, id)}
	}
}
