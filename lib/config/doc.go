// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the zklogic
// command-line tool.
//
// Configuration is loaded from a single file specified by either the
// ZKLOGIC_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search. When neither is given the CLI runs on [Default].
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No environment
// variable overrides a config value.
//
// The library packages (digest, content, merkle, attestation) take no
// configuration at all. Nothing here can change a computed digest.
//
// Key exports:
//
//   - [Config] -- output format, log level, input, and attestation defaults
//   - [Default] -- returns a Config with built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
package config
