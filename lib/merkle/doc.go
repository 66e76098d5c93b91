// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package merkle builds binary Merkle trees over an ordered sequence of
// leaf hashes and produces and checks inclusion proofs.
//
// Leaves are hashed under the "leaf" domain tag ([HashLeaf]) and
// internal nodes under the "node" tag ([HashNode]), so a proof can
// never pass an internal node off as a leaf or the reverse.
//
// # Tree shape
//
// The tree is built bottom-up. At each level adjacent pairs are
// combined left to right. When a level has an odd number of nodes the
// last node is promoted to the next level unchanged. It is NOT paired
// with a copy of itself: duplicating would give [a, b, c] and
// [a, b, c, c] the same root. A single leaf is its own root.
//
// For five leaves L0..L4:
//
//	level 0:  L0   L1   L2   L3   L4
//	level 1:  N(L0,L1)  N(L2,L3)  L4
//	level 2:  N(N01,N23)          L4
//	root:     N(N0123, L4)
//
// The proof for L4 has a single step; L4 carries no step at the levels
// where it is promoted.
//
// # Proofs
//
// A [Proof] records the leaf index, the leaf count, and one [Step] per
// level at which the path node had a sibling. [Proof.Verify] checks the
// step count and every step's side against the shape of a tree of that
// size before hashing, then compares the recomputed root in constant
// time. Proofs encode to deterministic CBOR via MarshalBinary.
//
// # Allocation
//
// [BuildTreeRoot], [GenerateProof] and [ExpectedPath] allocate and are
// omitted when building with the noalloc tag. [RootInPlace] and
// [ProofInto] do the same work inside caller-supplied buffers and are
// always available.
package merkle
