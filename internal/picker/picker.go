// Package picker wires the lab table, history and generator behind a single
// pick request.
package picker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/labpick/internal/generator"
	"github.com/verte-zerg/labpick/internal/history"
	"github.com/verte-zerg/labpick/internal/labs"
	"github.com/verte-zerg/labpick/internal/logging"
	"github.com/verte-zerg/labpick/internal/model"
	"github.com/verte-zerg/labpick/internal/render"
)

// Journal records completed picks.
type Journal interface {
	InsertPick(ctx context.Context, rec model.PickRecord) (int64, error)
}

// Picker holds the process-scoped state behind pick requests.
type Picker struct {
	table     *labs.Table
	history   *history.Cache
	gen       *generator.Generator
	journal   Journal
	logger    *logrus.Logger
	sessionID string
	now       func() time.Time
}

// New constructs a Picker. journal may be nil; a nil logger discards entries.
func New(table *labs.Table, hist *history.Cache, gen *generator.Generator, journal Journal, logger *logrus.Logger) *Picker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Picker{
		table:     table,
		history:   hist,
		gen:       gen,
		journal:   journal,
		logger:    logger,
		sessionID: uuid.NewString(),
		now:       time.Now,
	}
}

// SessionID identifies this run in journal rows.
func (p *Picker) SessionID() string {
	return p.sessionID
}

// Table returns the lab table the picker serves.
func (p *Picker) Table() *labs.Table {
	return p.table
}

// History returns the cache backing the picker.
func (p *Picker) History() *history.Cache {
	return p.history
}

// Pick generates variants for lab. Labs without a configuration yield a
// result with Done unset and leave history untouched.
func (p *Picker) Pick(ctx context.Context, lab int) (model.Result, error) {
	cfg, ok := p.table.Lookup(lab)
	if !ok {
		p.logger.WithField("lab", lab).Debug("lab has no variant table")
		return model.Result{Lab: lab}, nil
	}
	res, err := p.gen.Generate(p.history, cfg)
	if err != nil {
		return model.Result{}, err
	}
	for _, item := range res.Items {
		if !item.Fallback {
			continue
		}
		p.logger.WithFields(logrus.Fields{
			"lab":      lab,
			"position": item.Position,
			"number":   item.Number,
		}).Warn("every number in range was recently picked; repeating from the full range")
	}
	p.logger.WithFields(logrus.Fields{
		"lab":     lab,
		"numbers": []int(res.Generation()),
	}).Debug("picked variants")
	p.recordPick(ctx, res)
	return res, nil
}

// OnPickRequested picks variants for lab and renders them as plain text.
func (p *Picker) OnPickRequested(ctx context.Context, lab int) (string, error) {
	res, err := p.Pick(ctx, lab)
	if err != nil {
		return "", err
	}
	return render.Text(res), nil
}

func (p *Picker) recordPick(ctx context.Context, res model.Result) {
	if p.journal == nil {
		return
	}
	rec := model.PickRecord{
		SessionID:   p.sessionID,
		Lab:         res.Lab,
		PickedAt:    p.now(),
		Numbers:     res.Generation(),
		TotalPoints: res.TotalPoints,
		Fallbacks:   res.Fallbacks(),
	}
	if _, err := p.journal.InsertPick(ctx, rec); err != nil {
		p.logger.WithError(err).Error("failed to save pick")
	}
}
