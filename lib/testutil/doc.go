// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for zklogic packages.
//
// [Bytes] returns deterministic pseudo-random payloads from a seed, so
// property-style tests are reproducible without a fixed corpus.
//
// [LeafPayload] is the canonical payload for leaf i in Merkle test
// fixtures: the single byte i for i < 256, a 4-byte big-endian index
// otherwise. Packages build leaf sets from it with their own leaf hash,
// which keeps this package free of zklogic imports (package-internal
// tests in lib/digest can use it without an import cycle).
//
// [RunConcurrently] fans a check out across goroutines with a timeout
// safety valve, for the concurrent-use guarantees of the hashing and
// Merkle packages. [WriteFile] writes a fixture under t.TempDir.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no zklogic dependencies.
package testutil
