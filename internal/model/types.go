// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"
)

// Config defines picker settings after merging flags, env and config file.
type Config struct {
	Seed     int64
	Lab      int
	LogLevel string
	LogFile  string
}

// RangeSpec is one question or task slot: an inclusive number range and its point value.
type RangeSpec struct {
	Start  int `yaml:"start"`
	End    int `yaml:"end"`
	Points int `yaml:"points"`
}

// Validate reports whether the range can be picked from.
func (r RangeSpec) Validate() error {
	if r.Start > r.End {
		return fmt.Errorf("range start %d is greater than end %d", r.Start, r.End)
	}
	if r.Points < 0 {
		return fmt.Errorf("range %d-%d has negative points %d", r.Start, r.End, r.Points)
	}
	return nil
}

// Size returns the number of integers in the range.
func (r RangeSpec) Size() int {
	if r.Start > r.End {
		return 0
	}
	return r.End - r.Start + 1
}

// LabelRule maps a 1-based position to a display label.
// Positions at or past Threshold use Alternate; a zero Threshold disables it.
type LabelRule struct {
	Default   string `yaml:"default"`
	Threshold int    `yaml:"threshold"`
	Alternate string `yaml:"alternate"`
}

// Label returns the label for a 1-based position.
func (l LabelRule) Label(position int) string {
	if l.Threshold > 0 && position >= l.Threshold {
		return l.Alternate
	}
	return l.Default
}

// Lab is a configured lab assignment.
type Lab struct {
	ID       int
	Ranges   []RangeSpec
	Labels   LabelRule
	Capacity int
}

// MaxPoints sums the point values of every range.
func (l Lab) MaxPoints() int {
	total := 0
	for _, r := range l.Ranges {
		total += r.Points
	}
	return total
}

// Generation holds one picked number per range, in range order.
type Generation []int

// Item is one rendered line of a pick result.
type Item struct {
	Position int
	Label    string
	Number   int
	Points   int
	Fallback bool
}

// Result is the outcome of a pick request for a lab.
// Done is false for labs without a configuration.
type Result struct {
	Lab         int
	Done        bool
	Items       []Item
	TotalPoints int
}

// Generation returns the picked numbers in range order.
func (r Result) Generation() Generation {
	gen := make(Generation, len(r.Items))
	for i, item := range r.Items {
		gen[i] = item.Number
	}
	return gen
}

// Fallbacks counts items picked from the full range because every candidate was excluded.
func (r Result) Fallbacks() int {
	n := 0
	for _, item := range r.Items {
		if item.Fallback {
			n++
		}
	}
	return n
}

// PickRecord is a journal row for a completed pick.
type PickRecord struct {
	ID          int64
	SessionID   string
	Lab         int
	PickedAt    time.Time
	Numbers     Generation
	TotalPoints int
	Fallbacks   int
}

// LabSummary aggregates journal rows for a lab.
type LabSummary struct {
	Lab          int
	Picks        int
	Fallbacks    int
	LastPickedAt time.Time
}

// JournalFilter selects journal rows. Zero values disable a filter.
type JournalFilter struct {
	Lab  int
	Last int
}
