package sampling

import (
	"errors"
	"math/rand"
	"testing"
)

func countTrue(mask []bool) int {
	n := 0
	for _, b := range mask {
		if b {
			n++
		}
	}
	return n
}

func TestSelect_ExactCount(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	cases := []struct{ n, k int }{
		{0, 0},
		{1, 0},
		{1, 1},
		{10, 3},
		{10, 10},
		{100, 1},
		{100, 99},
		{1000, 500},
	}
	for _, tc := range cases {
		mask, err := Select(rng, tc.n, tc.k)
		if err != nil {
			t.Fatalf("Select(%d, %d) failed: %v", tc.n, tc.k, err)
		}
		if len(mask) != tc.n {
			t.Errorf("Select(%d, %d): mask length %d", tc.n, tc.k, len(mask))
		}
		if got := countTrue(mask); got != tc.k {
			t.Errorf("Select(%d, %d): %d entries selected", tc.n, tc.k, got)
		}
	}
}

func TestSelect_SampleTooLarge(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := Select(rng, 5, 6); !errors.Is(err, ErrSampleSize) {
		t.Errorf("expected ErrSampleSize, got %v", err)
	}
	if _, err := Select(rng, 0, 1); !errors.Is(err, ErrSampleSize) {
		t.Errorf("expected ErrSampleSize for n=0 k=1, got %v", err)
	}
}

func TestSelect_Deterministic(t *testing.T) {
	a, err := Select(rand.New(rand.NewSource(7)), 50, 20)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Select(rand.New(rand.NewSource(7)), 50, 20)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("masks differ at %d under the same seed", i)
		}
	}
}
