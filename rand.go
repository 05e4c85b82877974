package skipindex

import (
	"math/bits"
	"math/rand/v2"
	"sync/atomic"
	"time"
)

const defaultSeed = uint64(0xdeadbeefcafebabe)

func newRandomSeed() uint64 {
	seed := uint64(time.Now().UnixNano())
	if seed == 0 {
		seed = defaultSeed
	}
	return seed
}

// RNG is a xorshift64* generator. It satisfies rand.Source and is safe for
// concurrent use.
type RNG struct {
	seed atomic.Uint64
}

var _ rand.Source = (*RNG)(nil)

// NewRNG returns a generator seeded from the clock.
func NewRNG() *RNG {
	return NewRNGWithSeed(newRandomSeed())
}

// NewRNGWithSeed returns a deterministic generator. A zero seed is
// replaced by a fixed non-zero constant.
func NewRNGWithSeed(seed uint64) *RNG {
	if seed == 0 {
		seed = defaultSeed
	}
	r := &RNG{}
	r.seed.Store(seed)
	return r
}

// Uint64 implements rand.Source.
func (r *RNG) Uint64() uint64 {
	for {
		current := r.seed.Load()
		x := current
		x ^= x >> 12
		x ^= x << 25
		x ^= x >> 27
		if x == 0 {
			x = defaultSeed
		}
		if r.seed.CompareAndSwap(current, x) {
			return x * 2685821657736338717
		}
	}
}

// levelGenerator draws node levels from a random source.
type levelGenerator struct {
	src rand.Source
}

// next returns a level in [1, MaxLevel]. Every trailing zero bit of the
// draw counts as one successful fair coin flip, so P(level = k) = 2^-k and
// the remaining tail is clamped into MaxLevel.
func (g levelGenerator) next() int {
	level := bits.TrailingZeros64(g.src.Uint64()) + 1
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}
