// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

// Backend names the hasher code path selected at build time: "host",
// "zkvm", "zkvm-sp1", or "zkvm-risc0". Diagnostic only.
func Backend() string {
	return backend
}
