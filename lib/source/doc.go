// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package source reads the inputs host tools feed into the hashing
// primitives: payload files that may be compressed, and leaf lists for
// Merkle operations.
//
// Payloads are always hashed after decompression. A zstd-compressed
// release tarball and its uncompressed form have the same content hash.
//
// Leaf lists are JSONC documents (JSON with comments and trailing
// commas), either a bare array of hex digests or an object:
//
//	{
//	    // chunk hashes in artifact order
//	    "leaves": [
//	        "5f0c...",
//	        "9a1b...",
//	    ],
//	}
//
// A path of "-" reads standard input.
package source
