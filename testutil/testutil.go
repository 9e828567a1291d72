package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Bool returns a pseudo-random bool.
func (r *RNG) Bool() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(2) == 1
}

// Uint32 returns a pseudo-random uint32.
func (r *RNG) Uint32() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint32()
}

// Words returns n pseudo-random storage words.
func (r *RNG) Words(n int) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]uint32, n)
	for i := range out {
		out[i] = r.rand.Uint32()
	}
	return out
}

// SparseWords returns n words where each bit is set with probability density.
// Sparse inputs compress well and exercise the compressed snapshot path.
func (r *RNG) SparseWords(n int, density float64) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]uint32, n)
	for i := range out {
		for b := 0; b < 32; b++ {
			if r.rand.Float64() < density {
				out[i] |= 1 << b
			}
		}
	}
	return out
}

// Indices returns count pseudo-random indices in [0,limit).
// Duplicates are possible.
func (r *RNG) Indices(count, limit int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, count)
	for i := range out {
		out[i] = r.rand.Intn(limit)
	}
	return out
}
