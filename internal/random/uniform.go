// Package random provides bounded uniform random sources for numeric types.
//
// Every source owns its own generator state. Nothing here touches the
// process-wide generator, so independent sources can be used from
// independent goroutines without synchronization.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"reflect"
)

// Numeric is the set of element types a Uniform source can produce.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Uniform produces uniformly distributed values within fixed bounds.
type Uniform[T Numeric] struct {
	lo, hi T
	rng    *rand.Rand
}

// New returns a Uniform over the range spanned by a and b (argument order
// does not matter), seeded from the operating system entropy source.
// Sequences from New are not reproducible across runs; use NewSeeded
// when determinism is required.
func New[T Numeric](a, b T) *Uniform[T] {
	return NewSeeded(a, b, EntropySeed())
}

// NewSeeded is New with an explicit seed.
func NewSeeded[T Numeric](a, b T, seed uint64) *Uniform[T] {
	lo, hi := a, b
	if hi < lo {
		lo, hi = hi, lo
	}
	return &Uniform[T]{
		lo:  lo,
		hi:  hi,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Value draws one sample and advances the generator state.
//
// Floating-point element types sample the half-open interval [lo, hi);
// integer element types sample the closed interval [lo, hi].
func (u *Uniform[T]) Value() T {
	switch reflect.TypeOf(u.lo).Kind() {
	case reflect.Float32, reflect.Float64:
		return u.lo + T(u.rng.Float64()*float64(u.hi-u.lo))
	default:
		n := int64(u.hi) - int64(u.lo)
		return u.lo + T(u.rng.Int64N(n+1))
	}
}

// EntropySeed returns a seed read from the operating system entropy source.
func EntropySeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// crypto/rand does not fail on supported platforms; keep a
		// fallback so a seed is always produced.
		return rand.Uint64()
	}
	return binary.LittleEndian.Uint64(b[:])
}
