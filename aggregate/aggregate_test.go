package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		labels   []float64
		expected float64
	}{
		{"OneToFive", []float64{1, 2, 3, 4, 5}, 3},
		{"Single", []float64{-2.5}, -2.5},
		{"Mixed", []float64{-1, 1, 4}, 4.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Mean(tt.labels)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}

	t.Run("IntegerLabels", func(t *testing.T) {
		got, err := Mean([]int{1, 2})
		require.NoError(t, err)
		assert.Equal(t, 1.5, got)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := Mean([]float64{})
		assert.ErrorIs(t, err, ErrEmptyNeighborSet)
	})
}

func TestMajorityVote(t *testing.T) {
	t.Run("ClearWinner", func(t *testing.T) {
		label, votes, err := MajorityVote([]int{7, 7, 7, 1, 1})
		require.NoError(t, err)
		assert.Equal(t, 7, label)
		assert.Equal(t, []Vote[int]{{Label: 7, Count: 3}, {Label: 1, Count: 2}}, votes)
	})

	t.Run("OrderDoesNotMatter", func(t *testing.T) {
		label, _, err := MajorityVote([]int{1, 7, 1, 7, 7})
		require.NoError(t, err)
		assert.Equal(t, 7, label)
	})

	t.Run("TieSmallestLabelWins", func(t *testing.T) {
		for _, labels := range [][]int{
			{9, 9, 4, 4, 6},
			{4, 4, 9, 9, 6},
			{6, 9, 4, 9, 4},
		} {
			label, votes, err := MajorityVote(labels)
			require.NoError(t, err)
			assert.Equal(t, 4, label, "%v", labels)
			assert.Equal(t, []Vote[int]{{4, 2}, {9, 2}, {6, 1}}, votes)
		}
	})

	t.Run("AllDistinct", func(t *testing.T) {
		label, votes, err := MajorityVote([]int{3, 2, 8})
		require.NoError(t, err)
		assert.Equal(t, 2, label)
		assert.Len(t, votes, 3)
	})

	t.Run("Deterministic", func(t *testing.T) {
		labels := []int{5, 0, 5, 0, 3, 3}
		first, _, err := MajorityVote(labels)
		require.NoError(t, err)
		for range 20 {
			got, _, err := MajorityVote(labels)
			require.NoError(t, err)
			assert.Equal(t, first, got)
		}
		assert.Equal(t, 0, first)
	})

	t.Run("Empty", func(t *testing.T) {
		_, _, err := MajorityVote([]int(nil))
		assert.ErrorIs(t, err, ErrEmptyNeighborSet)
	})
}
