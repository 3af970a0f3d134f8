// Package tui renders the screen-time dashboard in the terminal.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"screentime/internal/core"
	"screentime/internal/ports"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	alertStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	borderStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

const barWidth = 24

type tab int

const (
	tabOverview tab = iota
	tabEntries
)

// dashboardData is everything one refresh pulls from the backend.
type dashboardData struct {
	stats      core.Statistics
	daily      []core.DailyTotal
	categories []core.CategoryTotal
	entries    []core.Entry
}

type dataMsg struct {
	data dashboardData
	err  error
}

type Model struct {
	lister         ports.EntryLister
	reports        ports.ReportReader
	thresholdHours float64

	tab     tab
	data    dashboardData
	loaded  bool
	loadErr error
	width   int
}

func NewModel(lister ports.EntryLister, reports ports.ReportReader, thresholdHours float64) Model {
	return Model{
		lister:         lister,
		reports:        reports,
		thresholdHours: thresholdHours,
	}
}

// Run starts the dashboard and blocks until the user quits.
func Run(lister ports.EntryLister, reports ports.ReportReader, thresholdHours float64) error {
	p := tea.NewProgram(NewModel(lister, reports, thresholdHours), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.fetch()
}

func (m Model) fetch() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var d dashboardData
		var err error
		if d.stats, err = m.reports.Statistics(ctx); err != nil {
			return dataMsg{err: err}
		}
		if d.daily, err = m.reports.DailyTotals(ctx); err != nil {
			return dataMsg{err: err}
		}
		if d.categories, err = m.reports.CategoryTotals(ctx); err != nil {
			return dataMsg{err: err}
		}
		if d.entries, err = m.lister.ListEntries(ctx, core.Range{}); err != nil {
			return dataMsg{err: err}
		}
		return dataMsg{data: d}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case dataMsg:
		m.loaded = true
		m.loadErr = msg.err
		if msg.err == nil {
			m.data = msg.data
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.fetch()
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % 2
			return m, nil
		case "shift+tab", "left", "h":
			m.tab = (m.tab + 1) % 2
			return m, nil
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Screen Time"))
	b.WriteString("  ")
	b.WriteString(m.tabLabel(tabOverview, "overview"))
	b.WriteString(" ")
	b.WriteString(m.tabLabel(tabEntries, "entries"))
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(mutedStyle.Render("loading…"))
	case m.loadErr != nil:
		b.WriteString(alertStyle.Render("error: " + m.loadErr.Error()))
	case m.tab == tabEntries:
		b.WriteString(m.viewEntries())
	default:
		b.WriteString(m.viewOverview())
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab: switch view • r: refresh • q: quit"))
	return b.String()
}

func (m Model) tabLabel(t tab, label string) string {
	if m.tab == t {
		return selectedStyle.Render(" " + label + " ")
	}
	return mutedStyle.Render(" " + label + " ")
}

func (m Model) viewOverview() string {
	if m.data.stats.TotalEntries == 0 {
		return mutedStyle.Render("No usage logged yet.")
	}

	var b strings.Builder

	stats := fmt.Sprintf("%s total  •  %d entries  •  %s avg/day  •  %s max day  •  %s — %s",
		accentStyle.Render(core.FormatHours(m.data.stats.TotalHours)+"h"),
		m.data.stats.TotalEntries,
		accentStyle.Render(core.FormatHours(m.data.stats.AvgDailyHours)+"h"),
		accentStyle.Render(core.FormatHours(m.data.stats.MaxDailyHours)+"h"),
		m.data.stats.FirstDate.String(),
		m.data.stats.LastDate.String())
	b.WriteString(borderStyle.Render(stats))
	b.WriteString("\n")
	if m.data.stats.AvgDailyHours > m.thresholdHours {
		b.WriteString(alertStyle.Render(fmt.Sprintf("⚠ Average daily usage exceeds the %sh threshold",
			core.FormatHours(m.thresholdHours))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("By day"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  (limit %sh)", core.FormatHours(m.thresholdHours))))
	b.WriteString("\n")
	for _, d := range m.data.daily {
		line := fmt.Sprintf("%s  %6sh", d.Date.String(), core.FormatHours(d.Hours))
		if d.Hours > m.thresholdHours {
			b.WriteString(alertStyle.Render(line + "  over limit"))
		} else {
			b.WriteString(okStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("By category"))
	b.WriteString("\n")
	var max float64
	for _, c := range m.data.categories {
		if c.Hours > max {
			max = c.Hours
		}
	}
	for _, c := range m.data.categories {
		b.WriteString(fmt.Sprintf("%-20s %s %6sh\n",
			c.Category, renderBar(c.Hours, max), core.FormatHours(c.Hours)))
	}

	return b.String()
}

func renderBar(value, max float64) string {
	if max <= 0 {
		return strings.Repeat(" ", barWidth)
	}
	filled := int(value / max * barWidth)
	if filled < 1 && value > 0 {
		filled = 1
	}
	if filled > barWidth {
		filled = barWidth
	}
	return accentStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))
}

func (m Model) viewEntries() string {
	if len(m.data.entries) == 0 {
		return mutedStyle.Render("No entries.")
	}

	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%-4s %-12s %-20s %7s  %s", "id", "date", "category", "hours", "remarks")))
	b.WriteString("\n")
	for _, e := range m.data.entries {
		b.WriteString(fmt.Sprintf("%-4d %-12s %-20s %6sh  %s\n",
			e.ID, e.Date.String(), e.Category, core.FormatHours(e.Hours), e.Remarks))
	}
	return b.String()
}
