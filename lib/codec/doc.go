// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides zklogic's standard CBOR encoding configuration.
//
// CBOR is the binary format for everything that crosses the host/guest
// boundary or is written to disk by the CLI: Merkle proofs, attestation
// components, and guest inputs. The encoder uses Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer encoding,
// no indefinite-length items. Same logical data always produces
// identical bytes, which matters when those bytes are themselves hashed
// or committed as a zkVM public output.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(writer)
//	decoder := codec.NewDecoder(reader)
//
// # Digests
//
// digest.Hash implements encoding.TextMarshaler for JSON and YAML, but
// this package deliberately leaves the CBOR TextMarshaler option off:
// digests encode as 32-byte CBOR byte strings, not 64-character hex.
//
// # Struct Tag Rules
//
//   - `cbor` tag: the type is only ever serialized as CBOR.
//   - `json` tag: the type may be serialized as both JSON and CBOR.
//     fxamacker/cbor v2 reads `json` tags as fallback when `cbor`
//     tags are absent.
//
// Never use both tags on the same field.
package codec
