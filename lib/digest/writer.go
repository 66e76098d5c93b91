// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import "github.com/zeebo/blake3"

// Writer computes a tagged digest incrementally. Writing the payload
// in any number of pieces gives the same result as [Sum] over the
// whole payload. A Writer is not safe for concurrent use.
type Writer struct {
	hasher *blake3.Hasher
}

// NewWriter returns a Writer that has already absorbed tag.
func NewWriter(tag Tag) *Writer {
	hasher := blake3.New()
	hasher.Write([]byte(tag))
	return &Writer{hasher: hasher}
}

// Write absorbs p. It never returns an error.
func (w *Writer) Write(p []byte) (int, error) {
	return w.hasher.Write(p)
}

// Sum returns the digest of everything written so far. Further writes
// continue from the same state.
func (w *Writer) Sum() Hash {
	var result Hash
	w.hasher.Sum(result[:0])
	return result
}
