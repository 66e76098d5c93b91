// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !noalloc

package merkle

import (
	"slices"

	"github.com/bureau-foundation/zklogic/lib/digest"
)

// BuildTreeRoot computes the Merkle root of leaves. The caller's slice
// is not modified. A single leaf is returned as the root unchanged.
func BuildTreeRoot(leaves []digest.Hash) (digest.Hash, error) {
	if len(leaves) == 0 {
		return digest.Hash{}, ErrEmptyTree
	}
	if len(leaves) == 1 {
		return leaves[0], nil
	}
	return RootInPlace(slices.Clone(leaves))
}

// GenerateProof returns the inclusion proof for leaves[index]. The
// caller's slice is not modified.
func GenerateProof(leaves []digest.Hash, index int) (Proof, error) {
	if len(leaves) == 0 {
		return Proof{}, ErrEmptyTree
	}
	if index < 0 || index >= len(leaves) {
		return Proof{}, ErrIndexOutOfRange
	}
	steps := make([]Step, 0, PathLength(len(leaves), index))
	return ProofInto(slices.Clone(leaves), index, steps)
}

// ExpectedPath returns the sides a valid proof for index in a tree of
// leafCount leaves must carry, in order from leaf to root.
func ExpectedPath(leafCount, index int) ([]Side, error) {
	if leafCount < 1 {
		return nil, ErrEmptyTree
	}
	if index < 0 || index >= leafCount {
		return nil, ErrIndexOutOfRange
	}
	sides := make([]Side, 0, PathLength(leafCount, index))
	for count, position := leafCount, index; count > 1; count, position = count/2+count%2, position/2 {
		if !promoted(count, position) {
			sides = append(sides, sideAt(position))
		}
	}
	return sides, nil
}
