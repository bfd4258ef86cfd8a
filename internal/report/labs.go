package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/labpick/internal/labs"
	"github.com/verte-zerg/labpick/internal/model"
)

// LabRows returns one row per selectable lab: id, capacity, max points,
// ranges. Labs without a configuration show "not done".
func LabRows(t *labs.Table) [][]string {
	rows := make([][]string, 0, t.Count())
	for _, id := range t.IDs() {
		lab, ok := t.Lookup(id)
		if !ok {
			rows = append(rows, []string{strconv.Itoa(id), "-", "-", "not done"})
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(id),
			strconv.Itoa(lab.Capacity),
			strconv.Itoa(lab.MaxPoints()),
			formatRanges(lab.Ranges),
		})
	}
	return rows
}

// RenderLabs prints the lab table.
func RenderLabs(w io.Writer, t *labs.Table) error {
	headers := []string{"Lab", "Keep", "Points", "Ranges"}
	rightAlign := map[int]bool{0: true, 1: true, 2: true}
	for _, line := range formatTable(headers, LabRows(t), rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatRanges(ranges []model.RangeSpec) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = fmt.Sprintf("%d-%d (%d)", r.Start, r.End, r.Points)
	}
	return strings.Join(parts, ", ")
}
