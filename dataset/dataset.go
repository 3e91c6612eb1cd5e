// Package dataset defines the dense dataset abstraction consumed by the index
// and provides a simple row-major in-memory implementation.
package dataset

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

// Dataset is a read-only collection of fixed-dimension float32 vectors.
// Rows are addressed by index in [0, Size()). Implementations must be safe
// for concurrent reads; the index never mutates a dataset.
type Dataset interface {
	// Size returns the number of rows.
	Size() int
	// Dimension returns the number of columns.
	Dimension() int
	// Row returns a read-only view of row i. Callers must not modify it.
	Row(i int) []float32
}

// Matrix is a row-major in-memory Dataset.
type Matrix struct {
	dim  int
	data []float32
}

// NewMatrix creates a zero-filled Matrix with the given shape.
func NewMatrix(dimension, size int) *Matrix {
	return &Matrix{
		dim:  dimension,
		data: make([]float32, dimension*size),
	}
}

// FromRows creates a Matrix by copying the given rows.
// All rows must have the same length.
func FromRows(rows [][]float32) *Matrix {
	if len(rows) == 0 {
		return &Matrix{}
	}
	m := NewMatrix(len(rows[0]), len(rows))
	for i, row := range rows {
		m.SetRow(i, row)
	}
	return m
}

// Size returns the number of rows.
func (m *Matrix) Size() int {
	if m.dim == 0 {
		return 0
	}
	return len(m.data) / m.dim
}

// Dimension returns the number of columns.
func (m *Matrix) Dimension() int { return m.dim }

// Row returns a view of row i backed by the matrix storage.
func (m *Matrix) Row(i int) []float32 {
	return m.data[i*m.dim : (i+1)*m.dim]
}

// SetRow copies v into row i. v must have Dimension() elements.
func (m *Matrix) SetRow(i int, v []float32) {
	copy(m.Row(i), v)
}

// LoadFvecs reads count vectors of the given dimension from an fvecs file.
// Each fvecs record is an int32 dimension followed by that many float32
// values; the per-record dimension must match the expected one.
func LoadFvecs(filename string, dimension, count int) (*Matrix, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, 256*1024)
	m := NewMatrix(dimension, count)
	for i := 0; i < count; i++ {
		var dim int32
		if err := binary.Read(br, binary.LittleEndian, &dim); err != nil {
			return nil, fmt.Errorf("fvecs row %d: %w", i, err)
		}
		if int(dim) != dimension {
			return nil, fmt.Errorf("fvecs row %d: dimension %d, expected %d", i, dim, dimension)
		}
		if err := binary.Read(br, binary.LittleEndian, m.Row(i)); err != nil {
			return nil, fmt.Errorf("fvecs row %d: %w", i, err)
		}
	}
	return m, nil
}
