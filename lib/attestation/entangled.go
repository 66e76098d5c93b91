// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package attestation

import (
	"encoding/binary"

	"github.com/bureau-foundation/zklogic/lib/digest"
)

// NonceSize is the encoded width of the nonce.
const NonceSize = 8

// EntangledID is the identity digest binding a public key, a binary
// hash, and a nonce.
type EntangledID = digest.Hash

// DeriveEntangledID computes the identity for publicKey running the
// binary whose hash is binaryHash, under nonce.
func DeriveEntangledID(publicKey []byte, binaryHash digest.Hash, nonce uint64) EntangledID {
	encodedNonce := encodeNonce(nonce)
	return digest.Sum(digest.TagEntangledID, publicKey, binaryHash[:], encodedNonce[:])
}

// VerifyEntangledID reports whether id is the identity derived from
// publicKey, binaryHash, and nonce. The comparison runs in constant
// time. A false result is an expected outcome, not an error.
func VerifyEntangledID(id EntangledID, publicKey []byte, binaryHash digest.Hash, nonce uint64) bool {
	return digest.Equal(DeriveEntangledID(publicKey, binaryHash, nonce), id)
}

func encodeNonce(nonce uint64) [NonceSize]byte {
	var encoded [NonceSize]byte
	binary.LittleEndian.PutUint64(encoded[:], nonce)
	return encoded
}
