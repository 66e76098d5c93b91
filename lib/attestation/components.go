// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package attestation

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bureau-foundation/zklogic/lib/codec"
	"github.com/bureau-foundation/zklogic/lib/digest"
)

// ErrEmptyPublicKey is returned by [Components.Validate] when the
// public key is missing.
var ErrEmptyPublicKey = errors.New("attestation: empty public key")

// Components groups the inputs of an identity derivation. This is the
// value a host serializes and hands to a zkVM guest, which derives the
// identity and commits it as a public output.
type Components struct {
	PublicKey  []byte      `json:"public_key"`
	BinaryHash digest.Hash `json:"binary_hash"`
	Nonce      uint64      `json:"nonce"`
}

// Derive returns the EntangledID for these components.
func (c Components) Derive() EntangledID {
	return DeriveEntangledID(c.PublicKey, c.BinaryHash, c.Nonce)
}

// Verify reports whether id matches these components, in constant time.
func (c Components) Verify(id EntangledID) bool {
	return VerifyEntangledID(id, c.PublicKey, c.BinaryHash, c.Nonce)
}

// Validate checks the host-side preconditions a derivation does not
// enforce. Derive accepts an empty key; a node identity never has one.
func (c Components) Validate() error {
	if len(c.PublicKey) == 0 {
		return ErrEmptyPublicKey
	}
	return nil
}

// Equal reports whether two component sets are identical.
func (c Components) Equal(other Components) bool {
	return bytes.Equal(c.PublicKey, other.PublicKey) &&
		c.BinaryHash == other.BinaryHash &&
		c.Nonce == other.Nonce
}

// componentsWire is the CBOR layout of Components, kept apart from the
// exported type so codec does not recurse into MarshalBinary. The
// binary hash is a plain byte string on the wire so its length can be
// checked on decode.
type componentsWire struct {
	PublicKey  []byte `cbor:"public_key"`
	BinaryHash []byte `cbor:"binary_hash"`
	Nonce      uint64 `cbor:"nonce"`
}

// MarshalBinary encodes the components as deterministic CBOR.
func (c Components) MarshalBinary() ([]byte, error) {
	wire := componentsWire{
		PublicKey:  c.PublicKey,
		BinaryHash: c.BinaryHash[:],
		Nonce:      c.Nonce,
	}
	data, err := codec.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encoding attestation components: %w", err)
	}
	return data, nil
}

// UnmarshalBinary decodes CBOR components.
func (c *Components) UnmarshalBinary(data []byte) error {
	var wire componentsWire
	if err := codec.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decoding attestation components: %w", err)
	}
	if len(wire.BinaryHash) != digest.Size {
		return fmt.Errorf("decoding attestation components: binary hash is %d bytes, want %d",
			len(wire.BinaryHash), digest.Size)
	}
	decoded := Components{PublicKey: wire.PublicKey, Nonce: wire.Nonce}
	copy(decoded.BinaryHash[:], wire.BinaryHash)
	*c = decoded
	return nil
}
