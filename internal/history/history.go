// Package history keeps the most recent generations picked for each lab.
//
// A Cache is process-scoped state: it starts empty and is discarded at exit.
// It is not safe for concurrent use; the picker drives it from a single
// update loop.
package history

import "github.com/verte-zerg/labpick/internal/model"

// RecentWindow is how many of the latest generations feed the exclusion set,
// regardless of how many a lab keeps.
const RecentWindow = 2

// DefaultCapacity is used for labs without an explicit capacity.
const DefaultCapacity = 2

// Cache maps a lab id to its generations, oldest first.
type Cache struct {
	generations     map[int][]model.Generation
	capacities      map[int]int
	defaultCapacity int
}

// New creates an empty cache. Labs missing from capacities use defaultCapacity;
// a non-positive defaultCapacity falls back to DefaultCapacity.
func New(capacities map[int]int, defaultCapacity int) *Cache {
	if defaultCapacity <= 0 {
		defaultCapacity = DefaultCapacity
	}
	caps := make(map[int]int, len(capacities))
	for lab, c := range capacities {
		caps[lab] = c
	}
	return &Cache{
		generations:     map[int][]model.Generation{},
		capacities:      caps,
		defaultCapacity: defaultCapacity,
	}
}

// Capacity returns how many generations are kept for lab.
func (c *Cache) Capacity(lab int) int {
	if v, ok := c.capacities[lab]; ok {
		return v
	}
	return c.defaultCapacity
}

// Recent returns every number from the last window generations of lab.
func (c *Cache) Recent(lab, window int) map[int]struct{} {
	recent := map[int]struct{}{}
	gens := c.generations[lab]
	if window <= 0 || len(gens) == 0 {
		return recent
	}
	if len(gens) > window {
		gens = gens[len(gens)-window:]
	}
	for _, gen := range gens {
		for _, n := range gen {
			recent[n] = struct{}{}
		}
	}
	return recent
}

// Record appends gen to the history of lab and evicts the oldest entries
// beyond the lab's capacity.
func (c *Cache) Record(lab int, gen model.Generation) {
	stored := append(model.Generation(nil), gen...)
	gens := append(c.generations[lab], stored)
	if limit := c.Capacity(lab); len(gens) > limit {
		excess := len(gens) - limit
		gens = append([]model.Generation(nil), gens[excess:]...)
	}
	c.generations[lab] = gens
}

// Generations returns a copy of the stored generations for lab, oldest first.
func (c *Cache) Generations(lab int) []model.Generation {
	gens := c.generations[lab]
	out := make([]model.Generation, len(gens))
	for i, gen := range gens {
		out[i] = append(model.Generation(nil), gen...)
	}
	return out
}

// Len returns the number of stored generations for lab.
func (c *Cache) Len(lab int) int {
	return len(c.generations[lab])
}
