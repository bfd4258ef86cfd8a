package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/labpick/internal/model"
)

func TestTextConfiguredLab(t *testing.T) {
	res := model.Result{
		Lab:  2,
		Done: true,
		Items: []model.Item{
			{Position: 1, Label: "Question", Number: 17, Points: 1},
			{Position: 2, Label: "Question", Number: 50, Points: 2},
		},
		TotalPoints: 3,
	}
	want := "Lab 2\n" +
		"1. Question 17 (1 Point)\n" +
		"2. Question 50 (2 Points)\n" +
		"Maximum score for theory part: 3"
	require.Equal(t, want, Text(res))
}

func TestTextNotDone(t *testing.T) {
	res := model.Result{Lab: 7}
	require.Equal(t, []string{"Lab 7", "Haven't done yet"}, Lines(res))
}

func TestPointWord(t *testing.T) {
	require.Equal(t, "Point", PointWord(1))
	require.Equal(t, "Points", PointWord(0))
	require.Equal(t, "Points", PointWord(2))
}
