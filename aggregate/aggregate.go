// Package aggregate reduces the labels of selected neighbors to a prediction.
package aggregate

import (
	"cmp"
	"errors"
	"slices"

	"github.com/MehmetK01/KNN-and-BiasVariance/model"
)

// ErrEmptyNeighborSet is returned when there are no labels to aggregate.
var ErrEmptyNeighborSet = errors.New("empty neighbor set")

// Mean returns the unweighted arithmetic mean of labels.
func Mean[L model.Label](labels []L) (float64, error) {
	if len(labels) == 0 {
		return 0, ErrEmptyNeighborSet
	}

	var sum float64
	for _, l := range labels {
		sum += float64(l)
	}

	return sum / float64(len(labels)), nil
}

// Vote is the number of neighbors carrying a label.
type Vote[L model.Label] struct {
	Label L
	Count int
}

// Tally counts label occurrences. Votes are ordered by count descending and,
// among equal counts, by label ascending.
func Tally[L model.Label](labels []L) []Vote[L] {
	counts := make(map[L]int, len(labels))
	for _, l := range labels {
		counts[l]++
	}

	votes := make([]Vote[L], 0, len(counts))
	for l, c := range counts {
		votes = append(votes, Vote[L]{Label: l, Count: c})
	}

	slices.SortFunc(votes, func(a, b Vote[L]) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})

	return votes
}

// MajorityVote returns the most frequent label and the full tally.
// When several labels share the highest count the smallest of them wins.
func MajorityVote[L model.Label](labels []L) (L, []Vote[L], error) {
	if len(labels) == 0 {
		var zero L
		return zero, nil, ErrEmptyNeighborSet
	}

	votes := Tally(labels)

	return votes[0].Label, votes, nil
}
