// Package generator picks variant numbers for a lab.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/labpick/internal/history"
	"github.com/verte-zerg/labpick/internal/model"
)

// ErrInvalidRange is returned for a range whose start is past its end.
var ErrInvalidRange = errors.New("invalid range")

// History is the recency store a Generator reads and records into.
type History interface {
	Recent(lab, window int) map[int]struct{}
	Record(lab int, gen model.Generation)
}

// Generator produces randomized variant picks.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a reproducible source.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate picks one number per range of lab, avoiding numbers from the lab's
// recent generations and numbers already picked in this generation. The
// result is recorded into h.
func (g *Generator) Generate(h History, lab model.Lab) (model.Result, error) {
	for i, r := range lab.Ranges {
		if r.Start > r.End {
			return model.Result{}, fmt.Errorf("%w: lab %d position %d: %d-%d", ErrInvalidRange, lab.ID, i+1, r.Start, r.End)
		}
	}

	used := map[int]struct{}{}
	for n := range h.Recent(lab.ID, history.RecentWindow) {
		used[n] = struct{}{}
	}
	items := make([]model.Item, 0, len(lab.Ranges))
	gen := make(model.Generation, 0, len(lab.Ranges))
	total := 0
	for i, r := range lab.Ranges {
		num, fallback := g.pickUnique(r.Start, r.End, used)
		used[num] = struct{}{}
		gen = append(gen, num)
		total += r.Points
		items = append(items, model.Item{
			Position: i + 1,
			Label:    lab.Labels.Label(i + 1),
			Number:   num,
			Points:   r.Points,
			Fallback: fallback,
		})
	}
	h.Record(lab.ID, gen)

	return model.Result{
		Lab:         lab.ID,
		Done:        true,
		Items:       items,
		TotalPoints: total,
	}, nil
}

// pickUnique picks uniformly from [start, end] minus used. When every number
// is excluded it picks from the whole range and reports the fallback.
func (g *Generator) pickUnique(start, end int, used map[int]struct{}) (int, bool) {
	pool := make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		if _, ok := used[n]; ok {
			continue
		}
		pool = append(pool, n)
	}
	if len(pool) > 0 {
		return pool[g.rnd.Intn(len(pool))], false
	}
	return start + g.rnd.Intn(end-start+1), true
}
