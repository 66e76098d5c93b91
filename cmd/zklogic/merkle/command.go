// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package merkle implements the "zklogic merkle" commands: hashing
// leaves, computing roots, and generating and checking inclusion proofs.
package merkle

import (
	"github.com/bureau-foundation/zklogic/cmd/zklogic/cli"
)

// Command returns the "merkle" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "merkle",
		Summary: "Build Merkle roots and inclusion proofs",
		Description: `Build Merkle roots and inclusion proofs.

Leaves are hashed with the "leaf" domain tag and interior nodes with the
"node" tag, so a leaf can never be confused with an interior node. Trees
are built bottom-up, pairing left to right. A level with an odd number of
nodes promotes its last node unchanged to the next level.

Leaf lists are JSON (comments and trailing commas allowed): either a bare
array of hex leaf hashes or an object {"leaves": [...]}.

Proofs are written as deterministic CBOR with --format cbor (or --out),
and as JSON with --json. "merkle verify" accepts either form.`,
		Subcommands: []*cli.Command{
			leafCommand(),
			rootCommand(),
			proofCommand(),
			verifyCommand(),
		},
	}
}
