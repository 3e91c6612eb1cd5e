package lshgo

import (
	"math"

	"github.com/hupe1980/lshgo/dataset"
)

// BitStatistics holds, for each bit of table 0, the mean and population
// standard deviation of the positive-side (>= 0) and negative-side (< 0)
// projection values across a dataset. External multi-probe generators use it
// to rank candidate buckets.
type BitStatistics struct {
	PositiveMean []float32
	NegativeMean []float32
	PositiveStd  []float32
	NegativeStd  []float32
}

// MeanAndSTD computes bit statistics for table 0 over the full dataset.
// A bit whose projections never take one of the two signs, or whose side has
// zero variance, returns ErrDegenerateBit.
func (idx *Index) MeanAndSTD(data dataset.Dataset) (*BitStatistics, error) {
	n := int(idx.param.N)

	sumPositive := make([]float32, n)
	sumNegative := make([]float32, n)
	countPositive := make([]int, n)
	countNegative := make([]int, n)

	for i := 0; i < data.Size(); i++ {
		floats := idx.HashFloats(0, data.Row(i))
		for bit, f := range floats {
			if f >= 0 {
				sumPositive[bit] += f
				countPositive[bit]++
			} else {
				sumNegative[bit] += f
				countNegative[bit]++
			}
		}
	}
	for i := 0; i < n; i++ {
		if countPositive[i] != 0 {
			sumPositive[i] /= float32(countPositive[i])
		}
		if countNegative[i] != 0 {
			sumNegative[i] /= float32(countNegative[i])
		}
	}

	stdPositive := make([]float32, n)
	stdNegative := make([]float32, n)
	for i := 0; i < data.Size(); i++ {
		floats := idx.HashFloats(0, data.Row(i))
		for bit, f := range floats {
			if f >= 0 {
				d := f - sumPositive[bit]
				stdPositive[bit] += d * d
			} else {
				d := f - sumNegative[bit]
				stdNegative[bit] += d * d
			}
		}
	}
	for i := 0; i < n; i++ {
		if countPositive[i] != 0 {
			stdPositive[i] /= float32(countPositive[i])
		}
		stdPositive[i] = float32(math.Sqrt(float64(stdPositive[i])))
		if stdPositive[i] <= 0 {
			return nil, &ErrDegenerateBit{Bit: i, Side: "positive"}
		}

		if countNegative[i] != 0 {
			stdNegative[i] /= float32(countNegative[i])
		}
		stdNegative[i] = float32(math.Sqrt(float64(stdNegative[i])))
		if stdNegative[i] <= 0 {
			return nil, &ErrDegenerateBit{Bit: i, Side: "negative"}
		}
	}

	return &BitStatistics{
		PositiveMean: sumPositive,
		NegativeMean: sumNegative,
		PositiveStd:  stdPositive,
		NegativeStd:  stdNegative,
	}, nil
}

// SetMeanAndSTD computes bit statistics and retains them as the current
// statistics, replacing any previous result.
func (idx *Index) SetMeanAndSTD(data dataset.Dataset) error {
	stats, err := idx.MeanAndSTD(data)
	if err != nil {
		return err
	}
	idx.stats = stats
	return nil
}

// Stats returns the statistics from the last SetMeanAndSTD call, or nil if
// none have been computed.
func (idx *Index) Stats() *BitStatistics {
	return idx.stats
}
