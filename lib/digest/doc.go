// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest is the single hash primitive every other zklogic
// package builds on: BLAKE3-256 over a domain tag followed by a payload.
//
// Each call site hashes under exactly one [Tag]. The tag bytes are part
// of the wire contract; a host and a zkVM guest that disagree on a tag
// disagree on every digest computed under it. The four tags are:
//
//   - [TagContent] ("content") for content addressing
//   - [TagLeaf] ("leaf") for Merkle leaves
//   - [TagNode] ("node") for Merkle internal nodes
//   - [TagEntangledID] ("entangled-id") for attestation identities
//
// No tag is a prefix of another, so tag||payload never parses two ways.
//
// Comparisons between a trusted digest and an untrusted one must use
// [Equal], which runs in constant time. The == operator on [Hash] is
// fine for tests and for comparing two values the caller computed itself.
//
// # Build tags
//
// The zkvm tag swaps the pooled host hasher for single-use hashers (a
// zkVM guest is single threaded and a sync.Pool only adds proving
// cost). The sp1 and risc0 tags, combined with zkvm, only change the
// name reported by [Backend]. No tag changes any digest value.
//
// This package has no other zklogic dependencies.
package digest
