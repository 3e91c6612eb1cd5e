package training

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lshgo/dataset"
	"github.com/hupe1980/lshgo/sampling"
)

func dot32(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// syntheticData builds 8 rows of dimension 4 whose variance is concentrated
// on the first two coordinates.
func syntheticData() *dataset.Matrix {
	return dataset.FromRows([][]float32{
		{10, 5, 0.1, 0.05},
		{-10, -5, -0.1, 0.02},
		{8, -4, 0.05, -0.1},
		{-8, 4, -0.02, 0.1},
		{12, 6, 0.08, -0.05},
		{-12, -6, 0.02, 0.04},
		{9, -5, -0.06, 0.03},
		{-9, 5, 0.04, -0.08},
	})
}

func TestTrainTable_OrthonormalProjections(t *testing.T) {
	data := syntheticData()
	cfg := Config{BitWidth: 2, SampleSize: 4}

	pcs, err := TrainTable(data, cfg, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	require.Len(t, pcs, 2)

	for i, p := range pcs {
		require.Len(t, p, 4)
		require.InDelta(t, 1.0, math.Sqrt(dot32(p, p)), 1e-5, "projection %d not unit norm", i)
	}
	require.InDelta(t, 0.0, dot32(pcs[0], pcs[1]), 1e-5, "projections not orthogonal")
}

func TestTrainTable_FindsDominantDirection(t *testing.T) {
	// Nearly all variance lives on coordinate 0; the single learned
	// direction must align with it.
	rng := rand.New(rand.NewSource(11))
	rows := make([][]float32, 64)
	for i := range rows {
		rows[i] = []float32{
			float32(rng.NormFloat64()) * 100,
			float32(rng.NormFloat64()) * 0.01,
			float32(rng.NormFloat64()) * 0.01,
			float32(rng.NormFloat64()) * 0.01,
		}
	}
	data := dataset.FromRows(rows)

	pcs, err := TrainTable(data, Config{BitWidth: 1, SampleSize: 64}, rng)
	require.NoError(t, err)
	require.Greater(t, math.Abs(float64(pcs[0][0])), 0.99)
}

func TestTrainTable_Deterministic(t *testing.T) {
	data := syntheticData()
	cfg := Config{BitWidth: 2, SampleSize: 4}

	a, err := TrainTable(data, cfg, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	b, err := TrainTable(data, cfg, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestTrainTable_InvalidConfig(t *testing.T) {
	data := syntheticData()
	rng := rand.New(rand.NewSource(1))

	_, err := TrainTable(data, Config{BitWidth: 5, SampleSize: 4}, rng)
	require.Error(t, err, "bit width above dimension")

	_, err = TrainTable(data, Config{BitWidth: 2, SampleSize: 1}, rng)
	require.Error(t, err, "sample too small for covariance")

	_, err = TrainTable(data, Config{BitWidth: 2, SampleSize: 100}, rng)
	require.ErrorIs(t, err, sampling.ErrSampleSize)
}

func TestRandomRotation_Orthonormal(t *testing.T) {
	rot, err := randomRotation(4, rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	rows, cols := rot.Dims()
	require.Equal(t, 4, rows)
	require.Equal(t, 4, cols)

	// R·Rᵀ = I
	for i := 0; i < rows; i++ {
		for j := 0; j < rows; j++ {
			var sum float64
			for k := 0; k < cols; k++ {
				sum += rot.At(i, k) * rot.At(j, k)
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			require.InDelta(t, want, sum, 1e-10)
		}
	}
}
