// Package persistence implements the exact binary serialization of an index.
//
// The layout is little-endian with no padding and no file header, for
// byte-compatibility with existing index files:
//
//	uint32 M, L, D, N, S
//	repeat L times:
//	  uint32[N]            legacy per-table random array
//	  uint32 bucketCount
//	  repeat bucketCount times:
//	    uint64 code
//	    uint32 length
//	    uint32[length]     item ids
//	  float32[N][D]        projection vectors
//
// Tables are written in index order; buckets within a table are written in
// map enumeration order, which is not stable and not part of the
// compatibility contract beyond correct round-trip of contents.
package persistence

import "errors"

var (
	// ErrMalformedIndex is returned when a file's declared lengths are
	// inconsistent with its remaining bytes.
	ErrMalformedIndex = errors.New("malformed index file")
	// ErrInvalidBitWidth is returned when a file declares a bit-width
	// that cannot be packed into a uint64 code.
	ErrInvalidBitWidth = errors.New("invalid bit width in index file")
)

// Snapshot is the serialized form of an index.
type Snapshot struct {
	M, L, D, N, S uint32
	Tables        []TableRecord
}

// TableRecord is the serialized form of one (projections, buckets) pair.
type TableRecord struct {
	RndArray    []uint32
	Buckets     map[uint64][]uint32
	Projections [][]float32
}
