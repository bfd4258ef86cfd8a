package history

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/labpick/internal/model"
)

func keys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

func TestRecentEmptyHistory(t *testing.T) {
	c := New(nil, 0)
	require.Empty(t, c.Recent(1, RecentWindow))
	require.Equal(t, DefaultCapacity, c.Capacity(1))
}

func TestRecentUsesLastTwoGenerationsOnly(t *testing.T) {
	c := New(map[int]int{3: 3}, 2)
	c.Record(3, model.Generation{1, 2})
	c.Record(3, model.Generation{3, 4})
	c.Record(3, model.Generation{5, 4})

	require.Equal(t, 3, c.Len(3))
	require.ElementsMatch(t, []int{3, 4, 5}, keys(c.Recent(3, RecentWindow)))
}

func TestRecentShorterHistory(t *testing.T) {
	c := New(nil, 2)
	c.Record(1, model.Generation{7, 8, 9})
	require.ElementsMatch(t, []int{7, 8, 9}, keys(c.Recent(1, RecentWindow)))
	require.Empty(t, c.Recent(2, RecentWindow))
}

func TestRecordEvictsOldestFirst(t *testing.T) {
	c := New(map[int]int{1: 2, 3: 3}, 2)
	for i := 1; i <= 5; i++ {
		c.Record(1, model.Generation{i})
		c.Record(3, model.Generation{i * 10})
		require.LessOrEqual(t, c.Len(1), 2)
		require.LessOrEqual(t, c.Len(3), 3)
	}
	require.Equal(t, []model.Generation{{4}, {5}}, c.Generations(1))
	require.Equal(t, []model.Generation{{30}, {40}, {50}}, c.Generations(3))
}

func TestUnlistedLabUsesDefaultCapacity(t *testing.T) {
	c := New(map[int]int{3: 3}, 2)
	for i := 0; i < 4; i++ {
		c.Record(6, model.Generation{i})
	}
	require.Equal(t, 2, c.Len(6))
}

func TestRecordCopiesGeneration(t *testing.T) {
	c := New(nil, 2)
	gen := model.Generation{1, 2}
	c.Record(1, gen)
	gen[0] = 99

	stored := c.Generations(1)
	require.Equal(t, model.Generation{1, 2}, stored[0])

	stored[0][1] = 42
	require.Equal(t, model.Generation{1, 2}, c.Generations(1)[0])
}
