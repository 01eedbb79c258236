// Package testutil provides testing utilities for columnar.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded, reproducible generators for random column
// payloads, column names, and row ID sequences.
//
// # Random Segment Data
//
//	rng := testutil.NewRNG(seed)
//	names := rng.ColumnNames(16, 12)   // distinct, sorted, NUL-free
//	payloads := rng.Payloads(16, 4096) // lengths in [0, 4096]
//	rows := rng.AscendingRows(100, 8)  // strictly ascending row IDs
package testutil
