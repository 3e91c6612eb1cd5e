// Package lshgo implements an approximate-nearest-neighbor index based on
// locality-sensitive hashing with PCA-derived projection directions.
//
// Each of the L hash tables owns N projection vectors learned from a random
// sample of the dataset via centered-covariance eigendecomposition. A vector
// is hashed by thresholding the signs of its N projections into a packed
// uint64 code, and each table maps codes to buckets of item ids. Queries
// probe a single bucket exactly, or walk a caller-supplied multi-probe
// sequence of (table, code) pairs until enough candidates are collected.
//
// The index never computes distances or ranks results; candidate ids are
// handed to the caller's visitor. Typical usage:
//
//	idx, err := lshgo.New(lshgo.Parameter{M: 521, L: 4, D: 128, N: 16, S: 1000})
//	if err != nil { ... }
//	if err := idx.TrainAll(data, 2); err != nil { ... }
//	idx.Hash(data)
//
//	code := idx.HashValue(0, query)
//	idx.Probe(0, code, func(id uint32) { ... })
//
// Indexes round-trip through an exact little-endian binary format via Save
// and Load, with an optional LZ4-framed variant.
package lshgo
