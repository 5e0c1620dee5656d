// Package random provides the injectable uniform source used by every
// stochastic part of the simulation.
//
// Production code seeds a math/rand generator from crypto/rand; tests
// replace it with a Sequence so draws are fixed.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source is a uniform random source.
type Source interface {
	// Float64 returns a value in [0,1).
	Float64() float64
	// Intn returns a value in [0,n). n must be > 0.
	Intn(n int) int
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// New returns a deterministic source for the given seed.
func New(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// IntRange samples uniformly from the inclusive range [min, max].
// The caller guarantees min <= max.
func IntRange(src Source, min, max int) int {
	if max <= min {
		return min
	}
	return min + src.Intn(max-min+1)
}

// Pick samples one element uniformly. It returns the zero value for an
// empty slice.
func Pick[T any](src Source, pool []T) T {
	var zero T
	if len(pool) == 0 {
		return zero
	}
	return pool[src.Intn(len(pool))]
}
