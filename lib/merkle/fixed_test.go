// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package merkle

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/bureau-foundation/zklogic/lib/digest"
	"github.com/bureau-foundation/zklogic/lib/testutil"
)

// proofFor builds a proof through the caller-buffer path so these tests
// also run under the noalloc tag.
func proofFor(t *testing.T, leaves []digest.Hash, index int) Proof {
	t.Helper()
	steps := make([]Step, 0, MaxDepth(len(leaves)))
	proof, err := ProofInto(slices.Clone(leaves), index, steps)
	if err != nil {
		t.Fatalf("ProofInto(%d leaves, index %d): %v", len(leaves), index, err)
	}
	return proof
}

func rootOf(t *testing.T, leaves []digest.Hash) digest.Hash {
	t.Helper()
	root, err := RootInPlace(slices.Clone(leaves))
	if err != nil {
		t.Fatalf("RootInPlace(%d leaves): %v", len(leaves), err)
	}
	return root
}

func TestRootInPlaceMatchesHandBuiltTree(t *testing.T) {
	leaves := testutil.Leaves(5, HashLeaf)
	want := HashNode(
		HashNode(HashNode(leaves[0], leaves[1]), HashNode(leaves[2], leaves[3])),
		leaves[4],
	)
	if root := rootOf(t, leaves); root != want {
		t.Errorf("RootInPlace = %s, want %s", root, want)
	}
}

func TestRootInPlaceKnownValues(t *testing.T) {
	tests := []struct {
		leafCount int
		want      string
	}{
		{1, "483c0d7c3f0ecf235cc0229cffe7f1a55572a47e52ed3719368dbb5e843c0100"},
		{3, "6b21411c53eec1344382499b7ece22b0d82584fdda8994c4dd2e0ff117984db7"},
		{4, "e0800e9172720fd606f3e42c0af096f04abe6b9125f7e0d88585c1e119c8bfdf"},
		{5, "82efc0d38258e1fa300de03205a700bf1a0f27c22b910a9282ea772c7f3248b8"},
	}
	for _, tt := range tests {
		root := rootOf(t, testutil.Leaves(tt.leafCount, HashLeaf))
		if got := root.String(); got != tt.want {
			t.Errorf("root of %d leaves = %s, want %s", tt.leafCount, got, tt.want)
		}
	}
}

func TestRootInPlaceSingleLeaf(t *testing.T) {
	leaf := HashLeaf([]byte{0})
	if root := rootOf(t, []digest.Hash{leaf}); root != leaf {
		t.Errorf("RootInPlace single leaf = %s, want %s", root, leaf)
	}
}

func TestRootInPlaceEmpty(t *testing.T) {
	if _, err := RootInPlace(nil); !errors.Is(err, ErrEmptyTree) {
		t.Errorf("RootInPlace(nil) error = %v, want ErrEmptyTree", err)
	}
}

func TestProofIntoVerifies(t *testing.T) {
	for size := 1; size <= 40; size++ {
		leaves := testutil.Leaves(size, HashLeaf)
		root := rootOf(t, leaves)
		for index := range leaves {
			proof := proofFor(t, leaves, index)
			if err := proof.Verify(leaves[index], root); err != nil {
				t.Fatalf("size %d index %d: %v", size, index, err)
			}
		}
	}
}

func TestProofIntoUsesCallerBuffer(t *testing.T) {
	leaves := testutil.Leaves(8, HashLeaf)
	buffer := make([]Step, 0, MaxDepth(len(leaves)))

	proof, err := ProofInto(slices.Clone(leaves), 3, buffer)
	if err != nil {
		t.Fatalf("ProofInto: %v", err)
	}
	if len(proof.Steps) != 3 {
		t.Fatalf("proof has %d steps, want 3", len(proof.Steps))
	}
	if &proof.Steps[0] != &buffer[:1][0] {
		t.Error("ProofInto did not write into the caller's step buffer")
	}
}

func TestProofIntoBufferTooSmall(t *testing.T) {
	leaves := testutil.Leaves(8, HashLeaf)
	_, err := ProofInto(slices.Clone(leaves), 3, make([]Step, 0, 2))
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("ProofInto with short buffer error = %v, want ErrBufferTooSmall", err)
	}

	// A promoted leaf needs fewer steps than MaxDepth: 5 leaves, index
	// 4 has a single step.
	five := testutil.Leaves(5, HashLeaf)
	if _, err := ProofInto(slices.Clone(five), 4, make([]Step, 0, 1)); err != nil {
		t.Errorf("ProofInto with exact buffer: %v", err)
	}
}

func TestProofIntoErrors(t *testing.T) {
	if _, err := ProofInto(nil, 0, nil); !errors.Is(err, ErrEmptyTree) {
		t.Errorf("ProofInto(nil) error = %v, want ErrEmptyTree", err)
	}
	leaves := testutil.Leaves(2, HashLeaf)
	if _, err := ProofInto(leaves, 2, make([]Step, 0, 1)); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("ProofInto(index 2 of 2) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestMaxDepth(t *testing.T) {
	tests := map[int]int{0: 0, 1: 0, 2: 1, 3: 2, 4: 2, 5: 3, 8: 3, 9: 4, 1024: 10, 1025: 11}
	for leafCount, want := range tests {
		if got := MaxDepth(leafCount); got != want {
			t.Errorf("MaxDepth(%d) = %d, want %d", leafCount, got, want)
		}
	}
}

func TestPathLength(t *testing.T) {
	tests := []struct {
		leafCount, index, want int
	}{
		{1, 0, 0},
		{2, 1, 1},
		{3, 2, 1},
		{5, 4, 1},
		{5, 0, 3},
		{6, 5, 2},
		{8, 7, 3},
		{0, 0, 0},
		{4, 4, 0},
		{4, -1, 0},
	}
	for _, tt := range tests {
		if got := PathLength(tt.leafCount, tt.index); got != tt.want {
			t.Errorf("PathLength(%d, %d) = %d, want %d", tt.leafCount, tt.index, got, tt.want)
		}
	}
}

func TestPathLengthAtMaxLeafCount(t *testing.T) {
	// The first leaf is never promoted, so its path spans every level.
	if got, want := PathLength(math.MaxInt, 0), MaxDepth(math.MaxInt); got != want {
		t.Errorf("PathLength(MaxInt, 0) = %d, want MaxDepth(MaxInt) = %d", got, want)
	}
	if got, want := PathLength(math.MaxInt-1, 0), MaxDepth(math.MaxInt-1); got != want {
		t.Errorf("PathLength(MaxInt-1, 0) = %d, want MaxDepth(MaxInt-1) = %d", got, want)
	}
	// The last leaf of an odd level count is promoted at least once.
	if got := PathLength(math.MaxInt, math.MaxInt-1); got >= MaxDepth(math.MaxInt) {
		t.Errorf("PathLength(MaxInt, MaxInt-1) = %d, want fewer than %d steps", got, MaxDepth(math.MaxInt))
	}
}
