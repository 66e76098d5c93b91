// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"

	"github.com/bureau-foundation/zklogic/lib/binhash"
	"github.com/bureau-foundation/zklogic/lib/digest"
)

// Drift describes whether a binary on disk still matches the hash a
// node committed to in its Entangled ID. A node whose executable was
// replaced after deriving its ID can no longer prove the same identity.
type Drift struct {
	// Path is the absolute path of the binary that was hashed.
	Path string

	// Expected is the pinned binary hash.
	Expected digest.Hash

	// Actual is the BLAKE3 hash of the file at Path.
	Actual digest.Hash
}

// Changed reports whether the binary no longer matches the pin.
func (d *Drift) Changed() bool {
	return !digest.Equal(d.Expected, d.Actual)
}

// Check hashes the binary at path and compares it against expected.
// An empty path checks the running binary.
func Check(expected digest.Hash, path string) (*Drift, error) {
	if path == "" {
		actual, self, err := binhash.HashSelf()
		if err != nil {
			return nil, err
		}
		return &Drift{Path: self, Expected: expected, Actual: actual}, nil
	}

	actual, err := binhash.HashFile(path)
	if err != nil {
		return nil, fmt.Errorf("hashing %s: %w", path, err)
	}
	return &Drift{Path: path, Expected: expected, Actual: actual}, nil
}
