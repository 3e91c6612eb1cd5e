// Package testutil provides testing utilities for lshgo.
//
// This package is intended for use in tests and benchmarks only. It provides
// a seeded random source, synthetic dataset generators, and a deterministic
// Prober for exercising the multi-probe query loop.
package testutil

import (
	"math/rand"

	"github.com/hupe1980/lshgo/dataset"
)

// NewRNG creates a seeded random source for deterministic tests.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RandomMatrix creates a dataset of size rows with standard-normal entries.
func RandomMatrix(rng *rand.Rand, size, dimension int) *dataset.Matrix {
	m := dataset.NewMatrix(dimension, size)
	for i := 0; i < size; i++ {
		row := m.Row(i)
		for j := range row {
			row[j] = float32(rng.NormFloat64())
		}
	}
	return m
}

// ProbeStep is one (table, code) pair in a probing sequence.
type ProbeStep struct {
	Table int
	Code  uint64
}

// SequenceProber walks a fixed list of probe steps and records every
// candidate id it is shown. It implements lshgo.Prober.
type SequenceProber struct {
	steps   []ProbeStep
	pos     int
	visited []uint32
}

// NewSequenceProber creates a prober over the given steps.
func NewSequenceProber(steps ...ProbeStep) *SequenceProber {
	return &SequenceProber{steps: steps}
}

// VisitedCount returns the number of candidate ids seen so far.
func (p *SequenceProber) VisitedCount() int { return len(p.visited) }

// HasNext reports whether another probe step remains.
func (p *SequenceProber) HasNext() bool { return p.pos < len(p.steps) }

// Next returns the next (table, code) pair.
func (p *SequenceProber) Next() (int, uint64) {
	step := p.steps[p.pos]
	p.pos++
	return step.Table, step.Code
}

// Visit records one candidate id.
func (p *SequenceProber) Visit(id uint32) {
	p.visited = append(p.visited, id)
}

// Visited returns every candidate id seen, in probe order.
func (p *SequenceProber) Visited() []uint32 { return p.visited }

// StepsTaken returns the number of Next calls made so far.
func (p *SequenceProber) StepsTaken() int { return p.pos }
