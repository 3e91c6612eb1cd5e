// Package training implements the randomized-PCA hash-function training
// pipeline and its batched concurrent scheduler.
package training

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/lshgo/dataset"
	"github.com/hupe1980/lshgo/sampling"
)

var (
	// ErrEigenFailed is returned when the covariance eigendecomposition
	// does not converge.
	ErrEigenFailed = errors.New("eigendecomposition failed")
	// ErrRotationFailed is returned when the random rotation cannot be
	// orthogonalized.
	ErrRotationFailed = errors.New("rotation orthogonalization failed")
)

// Config carries the per-table training parameters.
type Config struct {
	// BitWidth is the number of projection directions to learn (N).
	BitWidth int
	// SampleSize is the number of dataset rows to train on (S).
	SampleSize int
}

// TrainTable learns one table's projection directions from a random sample of
// the dataset: sample S rows, center the columns, form the covariance
// estimate, and take the eigenvectors of the N largest eigenvalues.
//
// Multiple TrainTable calls may run concurrently on the same dataset as long
// as each call has its own random source and output destination.
func TrainTable(data dataset.Dataset, cfg Config, rng *rand.Rand) ([][]float32, error) {
	d := data.Dimension()
	s := cfg.SampleSize
	n := cfg.BitWidth

	if n <= 0 || n > d {
		return nil, fmt.Errorf("bit width %d out of range for dimension %d", n, d)
	}
	if s < 2 {
		return nil, fmt.Errorf("sample size %d too small for covariance estimate", s)
	}

	mask, err := sampling.Select(rng, data.Size(), s)
	if err != nil {
		return nil, err
	}

	// Assemble the sample matrix.
	sample := mat.NewDense(s, d, nil)
	row := 0
	for i, sel := range mask {
		if !sel {
			continue
		}
		src := data.Row(i)
		for j := 0; j < d; j++ {
			sample.Set(row, j, float64(src[j]))
		}
		row++
	}

	centerColumns(sample)

	// cov = (centeredᵀ · centered) / (S − 1)
	var prod mat.Dense
	prod.Mul(sample.T(), sample)
	prod.Scale(1/float64(s-1), &prod)

	cov := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			cov.SetSym(i, j, prod.At(i, j))
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return nil, ErrEigenFailed
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// Eigenvalues are ascending, so the N largest occupy the rightmost
	// columns. Projection i is column i of that block, preserving the
	// historical ascending order within the top N.
	pcs := make([][]float32, n)
	for i := range pcs {
		pcs[i] = make([]float32, d)
		col := d - n + i
		for j := 0; j < d; j++ {
			pcs[i][j] = float32(vecs.At(j, col))
		}
	}

	// ITQ would refine the binary codes by rotating the projected space.
	// The rotation is drawn and orthogonalized here but intentionally left
	// unapplied: quantization uses the raw PCA directions.
	if _, err := randomRotation(n, rng); err != nil {
		return nil, err
	}

	return pcs, nil
}

// centerColumns subtracts the column mean from every entry in place.
func centerColumns(m *mat.Dense) {
	rows, cols := m.Dims()
	for j := 0; j < cols; j++ {
		var sum float64
		for i := 0; i < rows; i++ {
			sum += m.At(i, j)
		}
		mean := sum / float64(rows)
		for i := 0; i < rows; i++ {
			m.Set(i, j, m.At(i, j)-mean)
		}
	}
}

// randomRotation draws an n×n matrix of standard-normal entries and
// orthogonalizes it via SVD, returning the left singular vectors.
func randomRotation(n int, rng *rand.Rand) (*mat.Dense, error) {
	r := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r.Set(i, j, rng.NormFloat64())
		}
	}

	var svd mat.SVD
	if !svd.Factorize(r, mat.SVDThinU|mat.SVDThinV) {
		return nil, ErrRotationFailed
	}
	var u mat.Dense
	svd.UTo(&u)
	return &u, nil
}
