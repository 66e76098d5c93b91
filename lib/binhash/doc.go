// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash computes the binary hash a node feeds into its
// Entangled Identity: the plain (untagged) BLAKE3-256 of its executable.
//
// The binary hash is deliberately untagged. It identifies a build
// artifact the same way release tooling and `b3sum` do, so an operator
// can check the value published for a release against a local file
// without any zklogic code.
//
// The API surface:
//
//   - [HashFile] streams a file through BLAKE3 with constant memory
//   - [HashReader] hashes an arbitrary stream
//   - [HashSelf] hashes the running executable
//
// This is host-only code. zkVM guests receive the binary hash as an
// input and never read files.
package binhash
