// Package tui provides the Bubble Tea lab picker interface.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/labpick/internal/model"
	"github.com/verte-zerg/labpick/internal/picker"
	"github.com/verte-zerg/labpick/internal/report"
	"github.com/verte-zerg/labpick/internal/store"
)

const (
	tabPicker = iota
	tabJournal
)

const (
	leftPanelWidth = 28
	placeholder    = "Select a lab and press enter to generate variants"
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D4D4D4")).
			Background(lipgloss.Color("#2D2D2D")).
			Padding(0, 1).
			Width(leftPanelWidth - 2)
	selectedButtonStyle = buttonStyle.
				Background(lipgloss.Color("#3A3A3A")).
				Foreground(lipgloss.Color("#F0F0F0")).
				Bold(true)
	resultPanelStyle = lipgloss.NewStyle().Padding(0, 2)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the Bubble Tea picker UI.
type Model struct {
	picker *picker.Picker
	store  *store.Store

	labIDs   []int
	selected int
	result   *model.Result
	notice   string
	errMsg   string

	tabs      []string
	activeTab int
	viewport  viewport.Model
	journal   table.Model
	summary   string

	width  int
	height int
}

// NewModel constructs a picker TUI model. st may be nil, which leaves the
// journal tab empty. startLab preselects a lab when it is selectable.
func NewModel(p *picker.Picker, st *store.Store, startLab int) *Model {
	m := &Model{
		picker: p,
		store:  st,
		labIDs: p.Table().IDs(),
		tabs:   []string{"Picker", "Journal"},
	}
	for i, id := range m.labIDs {
		if id == startLab {
			m.selected = i
		}
	}
	m.viewport = viewport.New(0, 0)
	m.journal = buildJournalTable(nil, 0, 1)
	m.refreshJournal()
	m.renderResult()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderResult()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "tab", "right", "l":
			m.moveTab(1)
			return m, nil
		case "shift+tab", "left", "h":
			m.moveTab(-1)
			return m, nil
		}
		if m.activeTab == tabJournal {
			var cmd tea.Cmd
			m.journal, cmd = m.journal.Update(msg)
			return m, cmd
		}
		return m.updatePicker(msg)
	}
	return m, nil
}

func (m *Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeySpace {
		m.pick(m.labIDs[m.selected])
		return m, nil
	}
	switch key := msg.String(); key {
	case "up", "k":
		m.moveSelection(-1)
		return m, nil
	case "down", "j":
		m.moveSelection(1)
		return m, nil
	case "enter", " ":
		m.pick(m.labIDs[m.selected])
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		lab, _ := strconv.Atoi(key)
		for i, id := range m.labIDs {
			if id == lab {
				m.selected = i
				m.pick(lab)
			}
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderTabs(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) pick(lab int) {
	res, err := m.picker.Pick(context.Background(), lab)
	if err != nil {
		m.errMsg = err.Error()
		m.notice = ""
		return
	}
	m.errMsg = ""
	m.result = &res
	m.notice = ""
	if n := res.Fallbacks(); n > 0 {
		m.notice = fmt.Sprintf("%d of %d numbers repeat a recent pick: every number in their range was used", n, len(res.Items))
	}
	m.refreshJournal()
	m.renderResult()
}

func (m *Model) moveSelection(delta int) {
	count := len(m.labIDs)
	if count == 0 {
		return
	}
	m.selected = (m.selected + delta + count) % count
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabJournal {
		m.journal.Focus()
	} else {
		m.journal.Blur()
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = lipgloss.Height(activeNavStyle.Render("X"))
	footerHeight = 1
	if m.notice != "" || m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.viewport.Width = maxInt(1, m.width-leftPanelWidth)
	m.viewport.Height = bodyHeight
	m.journal.SetWidth(m.width)
	m.journal.SetHeight(maxInt(1, bodyHeight-2))
}

func (m *Model) renderResult() {
	if m.result == nil {
		m.viewport.SetContent(resultPanelStyle.Render(placeholder))
		return
	}
	m.viewport.SetContent(resultPanelStyle.Render(RenderResult(*m.result)))
	m.viewport.GotoTop()
}

func (m *Model) refreshJournal() {
	if m.store == nil {
		m.summary = "Journal unavailable."
		return
	}
	rep, err := report.BuildReport(context.Background(), m.store, model.JournalFilter{})
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.summary = report.SummaryLine(rep.Summaries)
	m.journal.SetRows(journalRows(rep.Picks))
	m.journal.GotoBottom()
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderBody() string {
	if m.activeTab == tabJournal {
		summary := headerStyle.Render(truncateLine(m.summary, m.width))
		return summary + "\n\n" + m.journal.View()
	}
	left := lipgloss.NewStyle().Width(leftPanelWidth).Render(m.renderButtons())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, m.viewport.View())
}

func (m *Model) renderButtons() string {
	buttons := make([]string, 0, len(m.labIDs))
	for i, id := range m.labIDs {
		label := fmt.Sprintf("Pick variant for lab %d", id)
		if i == m.selected {
			buttons = append(buttons, selectedButtonStyle.Render(label))
		} else {
			buttons = append(buttons, buttonStyle.Render(label))
		}
	}
	return strings.Join(buttons, "\n\n")
}

func (m *Model) renderHelp() string {
	help := "Select: up/down  Pick: enter/space/1-9  Scroll: pgup/pgdn  Tabs: tab  Quit: q"
	if m.activeTab == tabJournal {
		help = "Scroll: up/down  Tabs: tab  Quit: q"
	}
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderFooter() string {
	switch {
	case m.errMsg != "":
		return m.renderHelp() + "\n" + errorStyle.Render(truncateLine(m.errMsg, m.width))
	case m.notice != "":
		return m.renderHelp() + "\n" + noticeStyle.Render(truncateLine(m.notice, m.width))
	default:
		return m.renderHelp()
	}
}
