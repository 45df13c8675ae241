package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/financial"
)

const dashboardMonths = 6

const barWidth = 30

type DashboardModel struct {
	CommonModel
	financialService *financial.Service
	companyID        uuid.UUID

	summary *financial.Summary
	loading bool
	err     error
}

func NewDashboardModel(financialSvc *financial.Service, companyID uuid.UUID) DashboardModel {
	return DashboardModel{
		financialService: financialSvc,
		companyID:        companyID,
		loading:          true,
	}
}

func (m DashboardModel) Title() string     { return "Financial Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadSummaryCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSummaryMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.summary = msg.summary
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadSummaryCmd()
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading summary...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.summary == nil {
		return lipgloss.NewStyle().Padding(2).Render("No data.")
	}

	header := fmt.Sprintf("Last %d months: %s across %d entries",
		dashboardMonths, FormatAmount(m.summary.Total), m.summary.Count)

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.Title(),
		"",
		header,
		"",
		renderMonthly(m.summary.Monthly),
		"",
		renderCategories(m.summary.Categories),
		"",
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func renderMonthly(buckets []financial.MonthBucket) string {
	var max int64
	for _, b := range buckets {
		if b.Total > max {
			max = b.Total
		}
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("57"))

	var b strings.Builder
	b.WriteString("By month\n")

	for _, bucket := range buckets {
		width := 0
		if max > 0 {
			width = int(bucket.Total * barWidth / max)
		}

		// Manual entries predate the non-negative guard, so a month can
		// still net below zero.
		if width < 0 {
			width = 0
		}

		bar := barStyle.Render(strings.Repeat("█", width)) + strings.Repeat(" ", barWidth-width)
		fmt.Fprintf(&b, "  %-9s %s %10s\n", bucket.Label(), bar, FormatAmount(bucket.Total))
	}

	return b.String()
}

func renderCategories(buckets []financial.CategoryBucket) string {
	var b strings.Builder
	b.WriteString("By service type\n")

	if len(buckets) == 0 {
		b.WriteString("  no entries\n")
	}

	for _, bucket := range buckets {
		fmt.Fprintf(&b, "  %-24s %10s\n", bucket.Name, FormatAmount(bucket.Total))
	}

	return b.String()
}

// Messages

type loadSummaryMsg struct {
	summary *financial.Summary
	err     error
}

func (m DashboardModel) loadSummaryCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := m.financialService.Summarize(ctx, m.companyID, dashboardMonths, time.Now())
		return loadSummaryMsg{summary: summary, err: err}
	}
}
