// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !zkvm

package digest

import (
	"sync"

	"github.com/zeebo/blake3"
)

const backend = "host"

// hasherPool recycles BLAKE3 hashers across calls. Building a Merkle
// tree over a large leaf set would otherwise allocate one hasher per
// internal node. Hashers are Reset on acquire, so no state leaks from
// one call into the next.
var hasherPool = sync.Pool{
	New: func() any { return blake3.New() },
}

func acquire() *blake3.Hasher {
	hasher := hasherPool.Get().(*blake3.Hasher)
	hasher.Reset()
	return hasher
}

func release(hasher *blake3.Hasher) {
	hasherPool.Put(hasher)
}
