// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package merkle

import (
	"errors"
	"math/bits"

	"github.com/bureau-foundation/zklogic/lib/digest"
)

var (
	// ErrEmptyTree is returned when a tree or proof is requested over
	// zero leaves.
	ErrEmptyTree = errors.New("merkle: empty leaf set")

	// ErrIndexOutOfRange is returned when a proof is requested for an
	// index outside the leaf set.
	ErrIndexOutOfRange = errors.New("merkle: leaf index out of range")

	// ErrProofInvalid is returned for any proof that does not recompute
	// the expected root: wrong step count, wrong side, wrong sibling,
	// wrong leaf, or wrong root. The cause is not distinguished.
	ErrProofInvalid = errors.New("merkle: proof invalid")

	// ErrBufferTooSmall is returned by the caller-buffer variants when
	// the supplied step buffer cannot hold the proof.
	ErrBufferTooSmall = errors.New("merkle: buffer too small")
)

// HashLeaf computes the leaf-domain hash of payload.
func HashLeaf(payload []byte) digest.Hash {
	return digest.Sum(digest.TagLeaf, payload)
}

// HashNode computes the node-domain hash of left||right.
func HashNode(left, right digest.Hash) digest.Hash {
	return digest.SumPair(digest.TagNode, left, right)
}

// MaxDepth returns the height of a tree over leafCount leaves, which
// bounds the number of steps in any of its proofs.
func MaxDepth(leafCount int) int {
	if leafCount <= 1 {
		return 0
	}
	return bits.Len(uint(leafCount - 1))
}

// PathLength returns the number of steps in the proof for index in a
// tree of leafCount leaves. This is MaxDepth less the number of levels
// at which the path node is promoted unpaired. Returns 0 for invalid
// arguments.
func PathLength(leafCount, index int) int {
	if leafCount < 1 || index < 0 || index >= leafCount {
		return 0
	}
	length := 0
	for count, position := leafCount, index; count > 1; count, position = count/2+count%2, position/2 {
		if !promoted(count, position) {
			length++
		}
	}
	return length
}

// promoted reports whether the node at position is the unpaired last
// node of a level with count nodes.
func promoted(count, position int) bool {
	return count%2 == 1 && position == count-1
}

// sideAt returns the side the node at position occupies in its pair.
func sideAt(position int) Side {
	if position%2 == 0 {
		return Left
	}
	return Right
}

// reduceLevel combines the first count nodes of level in place and
// returns the size of the next level.
func reduceLevel(level []digest.Hash, count int) int {
	next := 0
	for i := 0; i+1 < count; i += 2 {
		level[next] = HashNode(level[i], level[i+1])
		next++
	}
	if count%2 == 1 {
		level[next] = level[count-1]
		next++
	}
	return next
}
