// Package render formats pick results as plain text.
package render

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/labpick/internal/model"
)

// NotDoneNotice is shown for labs without a variant configuration.
const NotDoneNotice = "Haven't done yet"

// Title returns the header line for a lab.
func Title(lab int) string {
	return fmt.Sprintf("Lab %d", lab)
}

// PointWord returns the unit noun for a point count.
func PointWord(points int) string {
	if points == 1 {
		return "Point"
	}
	return "Points"
}

// ItemLine formats one picked item, e.g. "1. Question 17 (1 Point)".
func ItemLine(item model.Item) string {
	return fmt.Sprintf("%d. %s %d (%d %s)", item.Position, item.Label, item.Number, item.Points, PointWord(item.Points))
}

// Footer returns the total points line.
func Footer(total int) string {
	return fmt.Sprintf("Maximum score for theory part: %d", total)
}

// Lines returns the rendering of res, one entry per line.
func Lines(res model.Result) []string {
	if !res.Done {
		return []string{Title(res.Lab), NotDoneNotice}
	}
	lines := make([]string, 0, len(res.Items)+2)
	lines = append(lines, Title(res.Lab))
	for _, item := range res.Items {
		lines = append(lines, ItemLine(item))
	}
	lines = append(lines, Footer(res.TotalPoints))
	return lines
}

// Text renders res as newline-separated plain text.
func Text(res model.Result) string {
	return strings.Join(Lines(res), "\n")
}
