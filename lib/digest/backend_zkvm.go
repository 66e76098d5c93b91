// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build zkvm && !sp1 && !risc0

package digest

const backend = "zkvm"
