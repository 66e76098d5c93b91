// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package attestation derives and checks Entangled Identities.
//
// An [EntangledID] binds three things into one digest: a node's public
// key, the BLAKE3 hash of the binary the node runs, and a nonce. A node
// that changes its binary, or presents another node's key, arrives at
// a different identity. Running the derivation inside a zkVM yields a
// proof that the identity was computed from a particular key and
// binary hash without revealing anything else.
//
// The digest is computed under the "entangled-id" tag over
//
//	public_key || binary_hash (32 bytes) || nonce (8 bytes, little-endian)
//
// The public key is the only variable-length field and it comes first,
// followed by two fixed-width fields, so the encoding is injective over
// the (key, binary hash, nonce) tuple without a length prefix.
//
// This package does not validate key formats and does not verify
// signatures. Both are the caller's concern.
package attestation
