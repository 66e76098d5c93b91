// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package merkle

import "github.com/bureau-foundation/zklogic/lib/digest"

// RootInPlace computes the Merkle root of the leaves in scratch without
// allocating. The contents of scratch are overwritten; pass a copy if
// the leaves are still needed.
func RootInPlace(scratch []digest.Hash) (digest.Hash, error) {
	if len(scratch) == 0 {
		return digest.Hash{}, ErrEmptyTree
	}
	count := len(scratch)
	for count > 1 {
		count = reduceLevel(scratch, count)
	}
	return scratch[0], nil
}

// ProofInto generates the inclusion proof for index over the leaves in
// scratch, writing steps into the backing array of steps. It does not
// allocate when cap(steps) >= PathLength(len(scratch), index); a
// smaller buffer returns ErrBufferTooSmall. The contents of scratch are
// overwritten.
//
// The returned Proof's Steps aliases steps.
func ProofInto(scratch []digest.Hash, index int, steps []Step) (Proof, error) {
	leafCount := len(scratch)
	if leafCount == 0 {
		return Proof{}, ErrEmptyTree
	}
	if index < 0 || index >= leafCount {
		return Proof{}, ErrIndexOutOfRange
	}
	if cap(steps) < PathLength(leafCount, index) {
		return Proof{}, ErrBufferTooSmall
	}

	steps = steps[:0]
	count, position := leafCount, index
	for count > 1 {
		if !promoted(count, position) {
			side := sideAt(position)
			sibling := position + 1
			if side == Right {
				sibling = position - 1
			}
			steps = append(steps, Step{Sibling: scratch[sibling], Side: side})
		}
		count = reduceLevel(scratch, count)
		position /= 2
	}

	return Proof{Index: index, LeafCount: leafCount, Steps: steps}, nil
}
