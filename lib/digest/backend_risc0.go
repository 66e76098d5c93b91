// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build zkvm && risc0 && !sp1

package digest

const backend = "zkvm-risc0"
