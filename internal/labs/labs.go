// Package labs holds the compiled-in lab variant table.
package labs

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/labpick/internal/history"
	"github.com/verte-zerg/labpick/internal/model"
)

//go:embed labs.yaml
var defaultTable []byte

// ErrInvalidTable is returned when a lab table fails validation.
var ErrInvalidTable = errors.New("invalid lab table")

type fileTable struct {
	LabCount        int       `yaml:"lab-count"`
	DefaultCapacity int       `yaml:"default-capacity"`
	Labs            []fileLab `yaml:"labs"`
}

type fileLab struct {
	ID       int               `yaml:"id"`
	Capacity *int              `yaml:"capacity"`
	Labels   model.LabelRule   `yaml:"labels"`
	Ranges   []model.RangeSpec `yaml:"ranges"`
}

// Table maps lab ids to their configuration.
type Table struct {
	count           int
	defaultCapacity int
	labs            map[int]model.Lab
}

// Default returns the built-in lab table.
func Default() (*Table, error) {
	return Parse(defaultTable)
}

// Parse decodes and validates a YAML lab table.
func Parse(data []byte) (*Table, error) {
	var raw fileTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode lab table: %w", err)
	}
	if raw.LabCount <= 0 {
		return nil, fmt.Errorf("%w: lab-count must be > 0", ErrInvalidTable)
	}
	if raw.DefaultCapacity < 0 {
		return nil, fmt.Errorf("%w: default-capacity must be >= 0", ErrInvalidTable)
	}
	defaultCapacity := raw.DefaultCapacity
	if defaultCapacity == 0 {
		defaultCapacity = history.DefaultCapacity
	}

	t := &Table{
		count:           raw.LabCount,
		defaultCapacity: defaultCapacity,
		labs:            make(map[int]model.Lab, len(raw.Labs)),
	}
	for _, fl := range raw.Labs {
		if fl.ID < 1 || fl.ID > raw.LabCount {
			return nil, fmt.Errorf("%w: lab id %d outside 1..%d", ErrInvalidTable, fl.ID, raw.LabCount)
		}
		if _, ok := t.labs[fl.ID]; ok {
			return nil, fmt.Errorf("%w: lab %d defined twice", ErrInvalidTable, fl.ID)
		}
		if len(fl.Ranges) == 0 {
			return nil, fmt.Errorf("%w: lab %d has no ranges", ErrInvalidTable, fl.ID)
		}
		for i, r := range fl.Ranges {
			if err := r.Validate(); err != nil {
				return nil, fmt.Errorf("%w: lab %d position %d: %v", ErrInvalidTable, fl.ID, i+1, err)
			}
		}
		if fl.Labels.Threshold < 0 {
			return nil, fmt.Errorf("%w: lab %d label threshold must be >= 0", ErrInvalidTable, fl.ID)
		}
		capacity := defaultCapacity
		if fl.Capacity != nil {
			if *fl.Capacity < 0 {
				return nil, fmt.Errorf("%w: lab %d capacity must be >= 0", ErrInvalidTable, fl.ID)
			}
			capacity = *fl.Capacity
		}
		t.labs[fl.ID] = model.Lab{
			ID:       fl.ID,
			Ranges:   append([]model.RangeSpec(nil), fl.Ranges...),
			Labels:   fl.Labels,
			Capacity: capacity,
		}
	}
	return t, nil
}

// Count returns the number of selectable labs.
func (t *Table) Count() int {
	return t.count
}

// IDs returns every selectable lab id in order, configured or not.
func (t *Table) IDs() []int {
	ids := make([]int, t.count)
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}

// Configured returns the ids of labs with a variant configuration.
func (t *Table) Configured() []int {
	ids := make([]int, 0, len(t.labs))
	for id := range t.labs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Lookup returns the configuration for a lab.
func (t *Table) Lookup(id int) (model.Lab, bool) {
	lab, ok := t.labs[id]
	return lab, ok
}

// Capacities returns per-lab history capacities and the default for unlisted labs.
func (t *Table) Capacities() (map[int]int, int) {
	caps := make(map[int]int, len(t.labs))
	for id, lab := range t.labs {
		caps[id] = lab.Capacity
	}
	return caps, t.defaultCapacity
}

// NewHistory returns an empty history cache sized for this table.
func (t *Table) NewHistory() *history.Cache {
	caps, def := t.Capacities()
	return history.New(caps, def)
}
