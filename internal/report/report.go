// Package report builds and renders the session pick journal.
package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/labpick/internal/model"
	"github.com/verte-zerg/labpick/internal/store"
)

const timeLayout = "15:04:05"

// Report contains precomputed data for journal rendering.
type Report struct {
	Picks     []model.PickRecord
	Summaries []model.LabSummary
}

// BuildReport loads journal rows and per-lab summaries.
func BuildReport(ctx context.Context, st *store.Store, filter model.JournalFilter) (Report, error) {
	picks, err := st.ListPicks(ctx, filter)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list picks: %w", err)
	}
	summaries, err := st.LabSummaries(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to summarize picks: %w", err)
	}
	return Report{Picks: picks, Summaries: summaries}, nil
}

// JoinNumbers formats a generation as "3, 40, 70".
func JoinNumbers(gen model.Generation) string {
	parts := make([]string, len(gen))
	for i, n := range gen {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

// JournalRows returns the table cells for picks, one row per pick.
func JournalRows(picks []model.PickRecord) [][]string {
	rows := make([][]string, 0, len(picks))
	for i, p := range picks {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.PickedAt.Format(timeLayout),
			strconv.Itoa(p.Lab),
			JoinNumbers(p.Numbers),
			strconv.Itoa(p.TotalPoints),
			strconv.Itoa(p.Fallbacks),
		})
	}
	return rows
}

// JournalHeaders are the column titles for JournalRows.
var JournalHeaders = []string{"#", "Time", "Lab", "Numbers", "Points", "Repeats"}

// RenderJournal prints picks as an aligned table.
func RenderJournal(w io.Writer, picks []model.PickRecord) error {
	if len(picks) == 0 {
		_, err := fmt.Fprintln(w, "No picks yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Journal"); err != nil {
		return err
	}
	rightAlign := map[int]bool{0: true, 2: true, 4: true, 5: true}
	for _, line := range formatTable(JournalHeaders, JournalRows(picks), rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderSummary prints pick and repeat counts per lab.
func RenderSummary(w io.Writer, summaries []model.LabSummary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No picks yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	headers := []string{"Lab", "Picks", "Repeats", "Last"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.Itoa(s.Lab),
			strconv.Itoa(s.Picks),
			strconv.Itoa(s.Fallbacks),
			s.LastPickedAt.Format(timeLayout),
		})
	}
	rightAlign := map[int]bool{0: true, 1: true, 2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// SummaryLine condenses summaries into one line, e.g. "Lab 1: 2 picks · Lab 3: 1 pick (1 repeat)".
func SummaryLine(summaries []model.LabSummary) string {
	if len(summaries) == 0 {
		return "No picks yet."
	}
	parts := make([]string, 0, len(summaries))
	for _, s := range summaries {
		part := fmt.Sprintf("Lab %d: %d %s", s.Lab, s.Picks, plural(s.Picks, "pick", "picks"))
		if s.Fallbacks > 0 {
			part += fmt.Sprintf(" (%d %s)", s.Fallbacks, plural(s.Fallbacks, "repeat", "repeats"))
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " · ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
