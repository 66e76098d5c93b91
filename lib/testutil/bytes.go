// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/binary"
	"math/rand/v2"
)

// Bytes returns n pseudo-random bytes derived from seed. The same seed
// and length always produce the same bytes.
func Bytes(seed uint64, n int) []byte {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	source := rand.NewChaCha8(key)

	buffer := make([]byte, n)
	source.Read(buffer)
	return buffer
}

// LeafPayload returns the payload used for leaf index in test trees.
func LeafPayload(index int) []byte {
	if index < 256 {
		return []byte{byte(index)}
	}
	return binary.BigEndian.AppendUint32(nil, uint32(index))
}

// Leaves builds n leaves by applying hashLeaf to LeafPayload(0) through
// LeafPayload(n-1).
//
//	leaves := testutil.Leaves(5, merkle.HashLeaf)
func Leaves[H any](n int, hashLeaf func([]byte) H) []H {
	leaves := make([]H, n)
	for i := range leaves {
		leaves[i] = hashLeaf(LeafPayload(i))
	}
	return leaves
}
