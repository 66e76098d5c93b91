// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the zklogic tool.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. The tree is assembled in cmd/zklogic/commands and
// dispatched via [Command.Execute], which handles flag parsing (including
// a trailing --help), subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Parameter structs declare their flags with struct tags and are bound
// by [FlagsFromParams]. Embedding [OutputParams] adds the shared --config,
// --json, and --format flags; [OutputParams.Resolve] loads the
// configuration and returns a [Session] carrying the output format and a
// logger from [NewCommandLogger].
//
// Verification commands that fail return an [ExitError] with code 1
// after printing their own result, so main exits without a redundant
// error line. Usage mistakes are [UsageError]s and exit with code 2.
package cli
