// Package sampling implements the subset selection used to draw training rows.
package sampling

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrSampleSize is returned when the requested sample exceeds the population.
var ErrSampleSize = errors.New("sample size exceeds population")

// Select returns a boolean mask of length n with exactly k true entries,
// drawn from the provided random source.
//
// The selection runs in two passes. The first is an approximate-rate filter:
// each index is marked with probability k/n, stopping early once k marks are
// placed. The second pass draws fresh uniform indices until exactly k entries
// are marked. The early stop biases selection toward lower indices; this is
// the historical behavior of the index format's training pipeline and is kept
// as is. Callers that need uniform sampling without replacement should shuffle
// the dataset first.
func Select(rng *rand.Rand, n, k int) ([]bool, error) {
	if k < 0 || n < 0 {
		return nil, fmt.Errorf("%w: n=%d k=%d", ErrSampleSize, n, k)
	}
	if k > n {
		return nil, fmt.Errorf("%w: n=%d k=%d", ErrSampleSize, n, k)
	}

	selected := make([]bool, n)
	if k == 0 {
		return selected, nil
	}

	numSelected := 0
	for i := range selected {
		if rng.Intn(n) < k {
			selected[i] = true
			numSelected++
		}
		if numSelected == k {
			break
		}
	}

	// Corrective pass: top up with fresh draws until exactly k are marked.
	for numSelected < k {
		target := rng.Intn(n)
		for selected[target] {
			target = rng.Intn(n)
		}
		selected[target] = true
		numSelected++
	}

	return selected, nil
}
