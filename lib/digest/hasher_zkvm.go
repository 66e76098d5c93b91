// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build zkvm

package digest

import "github.com/zeebo/blake3"

func acquire() *blake3.Hasher {
	return blake3.New()
}

func release(*blake3.Hasher) {}
