package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/labpick/internal/model"
	"github.com/verte-zerg/labpick/internal/render"
)

var (
	resultTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B4B4B4")).
				Bold(true).
				MarginBottom(1)
	resultItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D4D4D4"))
	resultRepeatStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	resultFooterStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#D4D4D4")).
				Bold(true).
				MarginTop(1).
				Border(lipgloss.NormalBorder(), true, false, false, false).
				BorderForeground(lipgloss.Color("#3A3A3A"))
	notDoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// RenderResult renders res with terminal styling. Items picked by the
// fallback are highlighted.
func RenderResult(res model.Result) string {
	title := resultTitleStyle.Render(render.Title(res.Lab))
	if !res.Done {
		return lipgloss.JoinVertical(lipgloss.Left, title, notDoneStyle.Render(render.NotDoneNotice))
	}
	lines := make([]string, 0, len(res.Items))
	for _, item := range res.Items {
		style := resultItemStyle
		if item.Fallback {
			style = resultRepeatStyle
		}
		lines = append(lines, style.Render(render.ItemLine(item)))
	}
	footer := resultFooterStyle.Render(render.Footer(res.TotalPoints))
	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"), footer)
}
