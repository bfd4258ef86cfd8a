package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/labpick/internal/model"
	"github.com/verte-zerg/labpick/internal/report"
)

var journalWidths = []int{4, 9, 4, 28, 7, 8}

func journalColumns() []table.Column {
	columns := make([]table.Column, len(report.JournalHeaders))
	for i, title := range report.JournalHeaders {
		columns[i] = table.Column{Title: title, Width: journalWidths[i]}
	}
	return columns
}

func journalRows(picks []model.PickRecord) []table.Row {
	cells := report.JournalRows(picks)
	rows := make([]table.Row, 0, len(cells))
	for _, row := range cells {
		rows = append(rows, table.Row(row))
	}
	return rows
}

func buildJournalTable(picks []model.PickRecord, width, height int) table.Model {
	t := table.New(
		table.WithColumns(journalColumns()),
		table.WithRows(journalRows(picks)),
		table.WithHeight(maxInt(1, height)),
	)
	if width > 0 {
		t.SetWidth(width)
	}
	t.SetStyles(journalTableStyles())
	return t
}

func journalTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
