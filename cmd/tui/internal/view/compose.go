package view

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/client"
	"github.com/frostdesk/frostdesk/internal/collaborator"
	"github.com/frostdesk/frostdesk/internal/inventory"
	"github.com/frostdesk/frostdesk/internal/ticket"
)

type composeState int

const (
	composeStateLoading composeState = iota
	composeStateHeader
	composeStateItems
	composeStatePrice
)

// ComposeModel builds one service ticket: header fields first, then the
// material picker, then a single submit that commits everything at once.
type ComposeModel struct {
	CommonModel
	ticketService       *ticket.Service
	inventoryService    *inventory.Service
	clientService       *client.Service
	collaboratorService *collaborator.Service
	companyID           uuid.UUID

	existing *ticket.Ticket

	state composeState
	form  *huh.Form
	lines *ticket.LineList

	catalog       []*inventory.Item
	clients       []*client.Client
	collaborators []*collaborator.Collaborator

	search       string
	results      []*inventory.Item
	resultCursor int
	lineCursor   int
	focusLines   bool

	err    error
	status string

	// Form bindings
	formDate     string
	formType     string
	formClientID string
	formCollabID string
	formNotes    string
	formPrice    string
}

func NewComposeModel(
	ticketSvc *ticket.Service,
	inventorySvc *inventory.Service,
	clientSvc *client.Service,
	collaboratorSvc *collaborator.Service,
	companyID uuid.UUID,
	existing *ticket.Ticket,
) ComposeModel {
	return ComposeModel{
		ticketService:       ticketSvc,
		inventoryService:    inventorySvc,
		clientService:       clientSvc,
		collaboratorService: collaboratorSvc,
		companyID:           companyID,
		existing:            existing,
		state:               composeStateLoading,
		lines:               ticket.NewLineList(),
	}
}

func (m ComposeModel) Title() string {
	if m.existing != nil {
		return "Edit Service Ticket"
	}
	return "New Service Ticket"
}

func (m ComposeModel) ShortHelp() string {
	switch m.state {
	case composeStateItems:
		if m.focusLines {
			return "Tab: search | +/-: quantity | p: price | x: remove | Ctrl+S: submit | Esc: header"
		}
		return "Type to search | Enter: add | Tab: lines | Ctrl+S: submit | Esc: header"
	case composeStatePrice:
		return "Enter: apply | Esc: cancel"
	default:
		return "Navigate form | Esc: cancel"
	}
}

func (m ComposeModel) Init() tea.Cmd {
	return m.loadDataCmd()
}

func (m ComposeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case composeDataMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.catalog = msg.catalog
		m.clients = msg.clients
		m.collaborators = msg.collaborators

		if msg.existing != nil {
			m.existing = msg.existing
			m.lines = ticket.NewLineList(msg.existing.Lines...)
		}

		return m.enterHeaderForm()

	case composeSubmitMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error submitting: %v", msg.err)
			return m, nil
		}
		return m, Back

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil
	}

	switch m.state {
	case composeStateHeader:
		return m.updateHeader(msg)
	case composeStateItems:
		return m.updateItems(msg)
	case composeStatePrice:
		return m.updatePrice(msg)
	}

	return m, nil
}

func (m ComposeModel) enterHeaderForm() (tea.Model, tea.Cmd) {
	if m.formDate == "" {
		m.formDate = FormatDate(time.Now())
		if m.existing != nil {
			m.formDate = FormatDate(m.existing.ServiceDate)
			m.formType = m.existing.ServiceType
			m.formNotes = m.existing.Notes
			if m.existing.ClientID != nil {
				m.formClientID = m.existing.ClientID.String()
			}
			if m.existing.CollaboratorID != nil {
				m.formCollabID = m.existing.CollaboratorID.String()
			}
		}
	}

	clientOptions := make([]huh.Option[string], 0, len(m.clients)+1)
	clientOptions = append(clientOptions, huh.NewOption("(none)", ""))
	for _, c := range m.clients {
		clientOptions = append(clientOptions, huh.NewOption(c.FullName, c.ID.String()))
	}

	collabOptions := make([]huh.Option[string], 0, len(m.collaborators)+1)
	collabOptions = append(collabOptions, huh.NewOption("(none)", ""))
	for _, c := range m.collaborators {
		collabOptions = append(collabOptions, huh.NewOption(c.Name, c.ID.String()))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("date").
				Title("Service Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewInput().
				Key("type").
				Title("Service Type").
				Placeholder("installation, maintenance, repair...").
				Value(&m.formType).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("service type cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("client").
				Title("Client").
				Options(clientOptions...).
				Value(&m.formClientID),

			huh.NewSelect[string]().
				Key("collaborator").
				Title("Collaborator").
				Options(collabOptions...).
				Value(&m.formCollabID),

			huh.NewInput().
				Key("notes").
				Title("Notes").
				Value(&m.formNotes),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = composeStateHeader
	return m, m.form.Init()
}

func (m ComposeModel) updateHeader(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.form = nil
	m.state = composeStateItems
	return m, nil
}

func (m ComposeModel) updateItems(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m.enterHeaderForm()
	case "tab":
		m.focusLines = !m.focusLines
		return m, nil
	case "ctrl+s":
		m.status = "Submitting..."
		return m, m.submitCmd()
	}

	if m.focusLines {
		return m.updateLines(keyMsg)
	}

	return m.updateSearch(keyMsg)
}

func (m ComposeModel) updateSearch(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "up":
		if m.resultCursor > 0 {
			m.resultCursor--
		}
	case "down":
		if m.resultCursor < len(m.results)-1 {
			m.resultCursor++
		}
	case "enter":
		if m.resultCursor >= 0 && m.resultCursor < len(m.results) {
			item := m.results[m.resultCursor]
			m.lines.Add(item.ID, item.Name, item.Value)
			m.status = fmt.Sprintf("Added %s", item.Name)
		}
	case "backspace":
		if len(m.search) > 0 {
			runes := []rune(m.search)
			m.search = string(runes[:len(runes)-1])
			m.refreshResults()
		}
	default:
		if keyMsg.Type == tea.KeyRunes {
			m.search += string(keyMsg.Runes)
			m.refreshResults()
		}
	}

	return m, nil
}

func (m ComposeModel) updateLines(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := m.lines.Len()

	switch keyMsg.String() {
	case "up":
		if m.lineCursor > 0 {
			m.lineCursor--
		}
	case "down":
		if m.lineCursor < count-1 {
			m.lineCursor++
		}
	case "+", "=":
		if m.lineCursor < count {
			q := m.lines.Lines()[m.lineCursor].Quantity
			_ = m.lines.SetQuantity(m.lineCursor, q+1)
		}
	case "-":
		if m.lineCursor < count {
			q := m.lines.Lines()[m.lineCursor].Quantity
			if q > 1 {
				_ = m.lines.SetQuantity(m.lineCursor, q-1)
			}
		}
	case "x":
		if m.lineCursor < count {
			_ = m.lines.Remove(m.lineCursor)
			if m.lineCursor > 0 && m.lineCursor >= m.lines.Len() {
				m.lineCursor--
			}
		}
	case "p":
		if m.lineCursor < count {
			return m.enterPriceForm()
		}
	}

	return m, nil
}

func (m ComposeModel) enterPriceForm() (tea.Model, tea.Cmd) {
	line := m.lines.Lines()[m.lineCursor]
	m.formPrice = FormatAmount(line.Price)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("price").
				Title(fmt.Sprintf("Price for %s", line.Name)).
				Value(&m.formPrice).
				Validate(func(s string) error {
					if _, err := parseAmount(s); err != nil {
						return err
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = composeStatePrice
	return m, m.form.Init()
}

func (m ComposeModel) updatePrice(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = composeStateItems
			m.form = nil
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

	if cents, err := parseAmount(m.formPrice); err == nil {
		_ = m.lines.SetPrice(m.lineCursor, cents)
	}

	m.form = nil
	m.state = composeStateItems
	return m, nil
}

func (m *ComposeModel) refreshResults() {
	m.results = inventory.Search(m.catalog, strings.TrimSpace(m.search))
	if m.resultCursor >= len(m.results) {
		m.resultCursor = 0
	}
}

// parseAmount converts a decimal amount, with either separator, into cents.
func parseAmount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount")
	}
	if v < 0 {
		return 0, fmt.Errorf("amount cannot be negative")
	}

	return int64(math.Round(v * 100)), nil
}

func (m ComposeModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	switch m.state {
	case composeStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Loading...")
	case composeStateHeader:
		return lipgloss.NewStyle().Padding(1, 2).Render(
			m.Title() + "\n\n" + m.form.View(),
		)
	case composeStatePrice:
		return lipgloss.NewStyle().Padding(1, 2).Render(
			m.viewItems() + "\n" + m.form.View(),
		)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(m.viewItems())
}

func (m ComposeModel) viewItems() string {
	searchPanel := m.viewSearchPanel()
	linesPanel := m.viewLinesPanel()

	body := lipgloss.JoinHorizontal(lipgloss.Top, searchPanel, " ", linesPanel)

	footer := fmt.Sprintf("Total: %s", FormatAmount(m.lines.Total()))
	if m.status != "" {
		footer += "  " + lipgloss.NewStyle().Faint(true).Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.Title(),
		"",
		body,
		"",
		footer,
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	)
}

func (m ComposeModel) viewSearchPanel() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Search materials: %s_\n\n", m.search)

	if len(m.results) == 0 && m.search != "" {
		b.WriteString("  no matches\n")
	}

	for i, item := range m.results {
		cursor := "  "
		if i == m.resultCursor && !m.focusLines {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", cursor, item.Name, FormatAmount(item.Value))
	}

	return panelStyle(!m.focusLines).Width(40).Render(b.String())
}

func (m ComposeModel) viewLinesPanel() string {
	var b strings.Builder

	b.WriteString("Materials on ticket\n\n")

	lines := m.lines.Lines()
	if len(lines) == 0 {
		b.WriteString("  none yet\n")
	}

	for i, line := range lines {
		cursor := "  "
		if i == m.lineCursor && m.focusLines {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%dx %s @ %s = %s\n",
			cursor, line.Quantity, line.Name,
			FormatAmount(line.Price), FormatAmount(line.Subtotal()))
	}

	return panelStyle(m.focusLines).Width(48).Render(b.String())
}

func panelStyle(focused bool) lipgloss.Style {
	color := lipgloss.Color("240")
	if focused {
		color = lipgloss.Color("63")
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(color)
}

// Messages

type composeDataMsg struct {
	catalog       []*inventory.Item
	clients       []*client.Client
	collaborators []*collaborator.Collaborator
	existing      *ticket.Ticket
	err           error
}

func (m ComposeModel) loadDataCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		catalog, err := m.inventoryService.List(ctx, m.companyID)
		if err != nil {
			return composeDataMsg{err: err}
		}

		clients, err := m.clientService.List(ctx, m.companyID, "")
		if err != nil {
			return composeDataMsg{err: err}
		}

		collaborators, err := m.collaboratorService.List(ctx, m.companyID, "")
		if err != nil {
			return composeDataMsg{err: err}
		}

		msg := composeDataMsg{
			catalog:       catalog,
			clients:       clients,
			collaborators: collaborators,
		}

		// Editing needs the full ticket: the list fetch omits lines.
		if m.existing != nil {
			full, err := m.ticketService.Get(ctx, m.companyID, m.existing.ID)
			if err != nil {
				return composeDataMsg{err: err}
			}
			msg.existing = full
		}

		return msg
	}
}

type composeSubmitMsg struct {
	ticket *ticket.Ticket
	err    error
}

func (m ComposeModel) submitCmd() tea.Cmd {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(m.formDate))
	if err != nil {
		return func() tea.Msg { return composeSubmitMsg{err: err} }
	}

	params := ticket.SubmitParams{
		ServiceDate: date,
		ServiceType: strings.TrimSpace(m.formType),
		Notes:       m.formNotes,
	}

	if m.formClientID != "" {
		if id, err := uuid.Parse(m.formClientID); err == nil {
			params.ClientID = &id
		}
	}
	if m.formCollabID != "" {
		if id, err := uuid.Parse(m.formCollabID); err == nil {
			params.CollaboratorID = &id
		}
	}

	var existingID *uuid.UUID
	if m.existing != nil {
		existingID = &m.existing.ID
	}

	lines := m.lines

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		t, err := m.ticketService.Submit(ctx, m.companyID, params, lines, existingID)
		return composeSubmitMsg{ticket: t, err: err}
	}
}
