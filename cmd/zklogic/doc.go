// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Zklogic is a command-line front end to the zklogic verification
// primitives: content hashing, Merkle roots and inclusion proofs, and
// Entangled Attestation IDs.
//
// Every command is a thin wrapper over the lib/ packages, so its output
// is byte-identical to what a zkVM guest built from the same packages
// computes. Verification commands ("content verify", "merkle verify",
// "identity verify", "binary check") exit 0 on success, 1 on a negative
// result, and 2 on a malformed command line.
//
// Run "zklogic --help" for the command list.
package main
