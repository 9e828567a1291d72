// Package testutil provides testing utilities for dynbitset.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG for generating bit indices
// and storage words.
//
// # Random Input Generation
//
//	rng := testutil.NewRNG(seed)
//	idx := rng.Indices(1000, b.Len())   // flat indices in [0, Len())
//	words := rng.SparseWords(64, 0.01)  // ~1% of bits set
package testutil
