package lshgo

import (
	"github.com/viterin/vek/vek32"
)

// HashFloats returns vec's N raw projection values under table t: the dot
// product with each of the table's projection directions.
// Panics if table t has not been trained.
func (idx *Index) HashFloats(t int, vec []float32) []float32 {
	pcs := idx.pcs[t]
	if pcs == nil {
		panic("lshgo: index not trained")
	}

	out := make([]float32, len(pcs))
	for i, p := range pcs {
		out[i] = vek32.Dot(p, vec)
	}
	return out
}

// HashValue returns vec's packed code under table t. Bits are packed
// most-significant-first: projection 0 maps to the highest of the N used
// bits. A bit is set when its projection is strictly greater than zero; a
// projection of exactly zero yields 0 here, unlike Quantization.
// Panics if table t has not been trained.
func (idx *Index) HashValue(t int, vec []float32) uint64 {
	pcs := idx.pcs[t]
	if pcs == nil {
		panic("lshgo: index not trained")
	}

	var code uint64
	for _, p := range pcs {
		code <<= 1
		if vek32.Dot(p, vec) > 0 {
			code |= 1
		}
	}
	return code
}

// Quantization thresholds projection values at >= 0, so a projection of
// exactly zero yields a set bit. This boundary behavior intentionally
// differs from HashValue's strict > 0; the two operations are kept separate.
func Quantization(floats []float32) []bool {
	bits := make([]bool, len(floats))
	for i, f := range floats {
		bits[i] = f >= 0
	}
	return bits
}

// HashBits returns vec's unpacked hash bits under table t: projection
// followed by Quantization's >= 0 thresholding.
func (idx *Index) HashBits(t int, vec []float32) []bool {
	return Quantization(idx.HashFloats(t, vec))
}
