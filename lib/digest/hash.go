// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// Size is the length in bytes of every digest.
const Size = 32

// Hash is a 32-byte BLAKE3 digest. Hashes are opaque: nothing in this
// module branches on their value except for equality.
type Hash [Size]byte

// Tag names the purpose a digest is computed for.
type Tag string

// Domain tags. These are protocol constants shared with every other
// implementation; changing one invalidates every digest in its domain.
const (
	TagContent     Tag = "content"
	TagLeaf        Tag = "leaf"
	TagNode        Tag = "node"
	TagEntangledID Tag = "entangled-id"
)

// Tags returns every domain tag in use.
func Tags() []Tag {
	return []Tag{TagContent, TagLeaf, TagNode, TagEntangledID}
}

// Sum computes BLAKE3-256 over tag followed by each part in order. The
// parts are streamed into the hasher, so callers never need to build a
// concatenation buffer.
func Sum(tag Tag, parts ...[]byte) Hash {
	hasher := acquire()
	defer release(hasher)

	hasher.Write([]byte(tag))
	for _, part := range parts {
		hasher.Write(part)
	}

	var result Hash
	hasher.Sum(result[:0])
	return result
}

// SumPair computes the digest of left||right under tag. Used for Merkle
// internal nodes.
func SumPair(tag Tag, left, right Hash) Hash {
	var combined [2 * Size]byte
	copy(combined[:Size], left[:])
	copy(combined[Size:], right[:])
	return Sum(tag, combined[:])
}

// Equal reports whether a and b are the same digest. It runs in
// constant time with respect to the contents, so a failed comparison
// reveals nothing about how many leading bytes matched.
func Equal(a, b Hash) bool {
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

// IsZero reports whether h is the all-zero value.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String returns the canonical lowercase hex encoding.
func (h Hash) String() string {
	return Format(h)
}

// MarshalText encodes h as lowercase hex, so hashes appear as strings
// in JSON, YAML, and CBOR.
func (h Hash) MarshalText() ([]byte, error) {
	encoded := make([]byte, hex.EncodedLen(Size))
	hex.Encode(encoded, h[:])
	return encoded, nil
}

// UnmarshalText parses a 64-character hex string.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Format returns the hex-encoded string representation of a hash.
// This is the canonical format used in CLI output, logs, and files.
func Format(hash Hash) string {
	return hex.EncodeToString(hash[:])
}

// Parse parses a 64-character hex string into a Hash.
func Parse(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != Size {
		return hash, fmt.Errorf("digest is %d bytes, want %d", len(decoded), Size)
	}
	copy(hash[:], decoded)
	return hash, nil
}
