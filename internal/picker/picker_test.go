package picker

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/labpick/internal/generator"
	"github.com/verte-zerg/labpick/internal/labs"
	"github.com/verte-zerg/labpick/internal/logging"
	"github.com/verte-zerg/labpick/internal/model"
	"github.com/verte-zerg/labpick/internal/store"
)

type failingJournal struct{}

func (failingJournal) InsertPick(context.Context, model.PickRecord) (int64, error) {
	return 0, errors.New("disk full")
}

func newTestPicker(t *testing.T, journal Journal, logs *bytes.Buffer) *Picker {
	t.Helper()
	table, err := labs.Default()
	require.NoError(t, err)
	logger := logging.Discard()
	if logs != nil {
		logger = logging.New("debug", logs)
	}
	return New(table, table.NewHistory(), generator.NewWithSeed(2026), journal, logger)
}

func TestOnPickRequestedLabOne(t *testing.T) {
	p := newTestPicker(t, nil, nil)
	out, err := p.OnPickRequested(context.Background(), 1)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	require.Equal(t, "Lab 1", lines[0])
	for i, line := range lines[1:4] {
		require.True(t, strings.HasPrefix(line, []string{"1. Question ", "2. Question ", "3. Question "}[i]), line)
		require.True(t, strings.HasSuffix(line, "(1 Point)"), line)
	}
	require.Equal(t, "Maximum score for theory part: 3", lines[4])
}

func TestOnPickRequestedLabThreeLabels(t *testing.T) {
	p := newTestPicker(t, nil, nil)
	res, err := p.Pick(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, res.Items, 7)
	require.Equal(t, "Question", res.Items[3].Label)
	require.Equal(t, "Task", res.Items[4].Label)
	require.Equal(t, 13, res.TotalPoints)

	out, err := p.OnPickRequested(context.Background(), 3)
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.True(t, strings.HasPrefix(lines[4], "4. Question "), lines[4])
	require.True(t, strings.HasPrefix(lines[5], "5. Task "), lines[5])
}

func TestOnPickRequestedUnconfiguredLab(t *testing.T) {
	p := newTestPicker(t, nil, nil)
	out, err := p.OnPickRequested(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "Lab 7\nHaven't done yet", out)
	require.Zero(t, p.History().Len(7))

	out, err = p.OnPickRequested(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, "Lab 42\nHaven't done yet", out)
}

func TestPickRespectsCapacityAndWindow(t *testing.T) {
	p := newTestPicker(t, nil, nil)
	ctx := context.Background()
	var results []model.Result
	for i := 0; i < 5; i++ {
		res, err := p.Pick(ctx, 3)
		require.NoError(t, err)
		results = append(results, res)
		require.LessOrEqual(t, p.History().Len(3), 3)
	}
	stored := p.History().Generations(3)
	require.Equal(t, []model.Generation{
		results[2].Generation(),
		results[3].Generation(),
		results[4].Generation(),
	}, stored)

	// Lab 3 ranges are wide enough that no pick repeats the previous two generations.
	for i := 2; i < len(results); i++ {
		recent := map[int]bool{}
		for _, n := range results[i-1].Generation() {
			recent[n] = true
		}
		for _, n := range results[i-2].Generation() {
			recent[n] = true
		}
		for _, n := range results[i].Generation() {
			require.False(t, recent[n], "number %d repeated within window", n)
		}
	}
}

func TestPickRecordsJournal(t *testing.T) {
	st, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	p := newTestPicker(t, st, nil)
	ctx := context.Background()
	first, err := p.Pick(ctx, 2)
	require.NoError(t, err)
	_, err = p.Pick(ctx, 5)
	require.NoError(t, err)

	picks, err := st.ListPicks(ctx, model.JournalFilter{})
	require.NoError(t, err)
	require.Len(t, picks, 1)
	require.Equal(t, 2, picks[0].Lab)
	require.Equal(t, first.Generation(), picks[0].Numbers)
	require.Equal(t, 7, picks[0].TotalPoints)
	require.Equal(t, p.SessionID(), picks[0].SessionID)
}

func TestPickJournalFailureDoesNotFailPick(t *testing.T) {
	var logs bytes.Buffer
	p := newTestPicker(t, failingJournal{}, &logs)
	res, err := p.Pick(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, res.Done)
	require.Contains(t, logs.String(), "failed to save pick")
}

func TestPickLogsFallback(t *testing.T) {
	table, err := labs.Parse([]byte(`
lab-count: 1
labs:
  - id: 1
    labels: {default: Question}
    ranges: [{start: 1, end: 1, points: 1}]
`))
	require.NoError(t, err)
	var logs bytes.Buffer
	p := New(table, table.NewHistory(), generator.NewWithSeed(1), nil, logging.New("warn", &logs))

	_, err = p.Pick(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, logs.String())

	res, err := p.Pick(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, res.Items[0].Number)
	require.Equal(t, 1, res.Fallbacks())
	require.Contains(t, logs.String(), "repeating from the full range")
}
