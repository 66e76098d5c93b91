// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package content computes and checks content hashes: the identity of
// an arbitrary byte payload under the "content" domain tag.
//
// A content hash is never interchangeable with a Merkle leaf or node
// hash computed over the same bytes, since each lives under its own
// domain tag (see package digest).
package content

import (
	"errors"
	"fmt"
	"io"

	"github.com/bureau-foundation/zklogic/lib/digest"
)

// ErrHashMismatch is returned by [Verify] when the payload does not
// hash to the expected value. The error carries no detail about where
// the two digests differ.
var ErrHashMismatch = errors.New("content hash mismatch")

// Compute returns the content hash of data. Any length is valid,
// including empty.
func Compute(data []byte) digest.Hash {
	return digest.Sum(digest.TagContent, data)
}

// Verify recomputes the content hash of data and compares it in
// constant time against expected.
func Verify(data []byte, expected digest.Hash) error {
	if !digest.Equal(Compute(data), expected) {
		return ErrHashMismatch
	}
	return nil
}

// ComputeReader streams reader to EOF and returns the content hash of
// everything read. The result equals Compute over the same bytes.
func ComputeReader(reader io.Reader) (digest.Hash, error) {
	hasher := digest.NewWriter(digest.TagContent)
	if _, err := io.Copy(hasher, reader); err != nil {
		return digest.Hash{}, fmt.Errorf("hashing content stream: %w", err)
	}
	return hasher.Sum(), nil
}
