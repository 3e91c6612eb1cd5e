package lshgo

import (
	"errors"
	"fmt"
)

// MaxBitWidth is the largest supported code bit-width. Codes are packed into
// a single uint64, so N must not exceed it.
const MaxBitWidth = 64

var (
	// ErrNotTrained is returned when an operation requires trained
	// projection directions and none are present.
	ErrNotTrained = errors.New("index not trained")
)

// ErrInvalidBitWidth indicates a configured bit-width outside [1, MaxBitWidth].
type ErrInvalidBitWidth struct {
	BitWidth int
}

func (e *ErrInvalidBitWidth) Error() string {
	return fmt.Sprintf("invalid bit width %d: must be in [1, %d]", e.BitWidth, MaxBitWidth)
}

// ErrDimensionMismatch indicates a dataset/index dimensionality mismatch.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrDegenerateBit indicates that one side of a bit's projection split is
// empty or has zero variance across the dataset. Such a configuration cannot
// support probe ranking and is not locally recoverable.
type ErrDegenerateBit struct {
	Bit  int
	Side string // "positive" or "negative"
}

func (e *ErrDegenerateBit) Error() string {
	return fmt.Sprintf("degenerate bit %d: %s side has zero variance", e.Bit, e.Side)
}
