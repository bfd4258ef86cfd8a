package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/labpick/internal/generator"
	"github.com/verte-zerg/labpick/internal/labs"
	"github.com/verte-zerg/labpick/internal/model"
	"github.com/verte-zerg/labpick/internal/picker"
	"github.com/verte-zerg/labpick/internal/store"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	table, err := labs.Default()
	if err != nil {
		t.Fatalf("load labs: %v", err)
	}
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	p := picker.New(table, table.NewHistory(), generator.NewWithSeed(7), st, nil)
	m := NewModel(p, st, 1)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRenderResult(t *testing.T) {
	res := model.Result{
		Lab:  2,
		Done: true,
		Items: []model.Item{
			{Position: 1, Label: "Question", Number: 12, Points: 1},
			{Position: 2, Label: "Question", Number: 44, Points: 2, Fallback: true},
		},
		TotalPoints: 3,
	}
	out := RenderResult(res)
	for _, want := range []string{"Lab 2", "1. Question 12 (1 Point)", "2. Question 44 (2 Points)", "Maximum score for theory part: 3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q: %s", want, out)
		}
	}

	out = RenderResult(model.Result{Lab: 6})
	if !strings.Contains(out, "Haven't done yet") {
		t.Fatalf("expected not done notice, got %q", out)
	}
	if strings.Contains(out, "Maximum score") {
		t.Fatalf("unexpected footer for unconfigured lab: %q", out)
	}
}

func TestEnterPicksSelectedLab(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.result == nil {
		t.Fatalf("expected result after enter")
	}
	if m.result.Lab != 1 || !m.result.Done || len(m.result.Items) != 3 {
		t.Fatalf("unexpected result: %+v", m.result)
	}
	if !strings.Contains(m.View(), "Maximum score for theory part: 3") {
		t.Fatalf("view missing footer: %s", m.View())
	}
}

func TestDownThenEnterPicksNextLab(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.result == nil || m.result.Lab != 2 {
		t.Fatalf("expected lab 2 result, got %+v", m.result)
	}
	if m.result.TotalPoints != 7 {
		t.Fatalf("expected 7 points, got %d", m.result.TotalPoints)
	}
}

func TestSelectionWraps(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.labIDs[m.selected]; got != 7 {
		t.Fatalf("expected selection to wrap to lab 7, got %d", got)
	}
}

func TestDigitPicksUnconfiguredLab(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRunes("7"))
	if m.result == nil || m.result.Lab != 7 || m.result.Done {
		t.Fatalf("expected not done lab 7, got %+v", m.result)
	}
	if !strings.Contains(m.View(), "Haven't done yet") {
		t.Fatalf("view missing notice: %s", m.View())
	}
	if m.picker.History().Len(7) != 0 {
		t.Fatalf("history changed for unconfigured lab")
	}
}

func TestJournalTabShowsPicks(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRunes("1"))
	m.Update(keyRunes("3"))
	m.Update(keyRunes("5"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != tabJournal {
		t.Fatalf("expected journal tab, got %d", m.activeTab)
	}
	if rows := m.journal.Rows(); len(rows) != 2 {
		t.Fatalf("expected 2 journal rows, got %d", len(rows))
	}
	view := m.View()
	if !strings.Contains(view, "Lab 1: 1 pick") || !strings.Contains(view, "Lab 3: 1 pick") {
		t.Fatalf("journal view missing summary: %s", view)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}

func TestViewFitsWindow(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRunes("3"))
	view := m.View()
	if h := lipgloss.Height(view); h != 30 {
		t.Fatalf("expected view height 30, got %d", h)
	}
	for _, line := range strings.Split(view, "\n") {
		if w := lipgloss.Width(line); w > 100 {
			t.Fatalf("line wider than window: %d", w)
		}
	}
}

func TestFitLines(t *testing.T) {
	got := fitLines("a\nbb\nccc", 4, 2)
	if got != "a   \nbb  " {
		t.Fatalf("unexpected fit: %q", got)
	}
	got = fitLines("a", 2, 3)
	if got != "a \n  \n  " {
		t.Fatalf("unexpected pad: %q", got)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("abcdef", 5); got != "ab..." {
		t.Fatalf("unexpected truncate: %q", got)
	}
	if got := truncateLine("abc", 5); got != "abc" {
		t.Fatalf("unexpected truncate: %q", got)
	}
	if got := truncateLine("abcdef", 2); got != "ab" {
		t.Fatalf("unexpected truncate: %q", got)
	}
}
