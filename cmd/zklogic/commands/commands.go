// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete zklogic CLI command tree.
package commands

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	binarycmd "github.com/bureau-foundation/zklogic/cmd/zklogic/binary"
	"github.com/bureau-foundation/zklogic/cmd/zklogic/cli"
	contentcmd "github.com/bureau-foundation/zklogic/cmd/zklogic/content"
	diagcmd "github.com/bureau-foundation/zklogic/cmd/zklogic/diag"
	identitycmd "github.com/bureau-foundation/zklogic/cmd/zklogic/identity"
	merklecmd "github.com/bureau-foundation/zklogic/cmd/zklogic/merkle"
	"github.com/bureau-foundation/zklogic/lib/digest"
	"github.com/bureau-foundation/zklogic/lib/version"
)

// Root builds and returns the complete zklogic CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "zklogic",
		Description: `zklogic: deterministic verification primitives for host and zkVM.

Compute content hashes, build Merkle roots and inclusion proofs, and
derive Entangled Attestation IDs. Every command produces byte-identical
results to the library a zkVM guest runs.

Output is text by default. Use --json or --format cbor on any command,
or set "output" in the file named by ZKLOGIC_CONFIG or --config.`,
		Subcommands: []*cli.Command{
			contentcmd.Command(),
			merklecmd.Command(),
			identitycmd.Command(),
			binarycmd.Command(),
			diagcmd.Command(),
			versionCommand(),
		},
	}
}

type versionParams struct {
	cli.OutputParams
}

// versionResult is the JSON and CBOR form of "version" output.
type versionResult struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	Backend   string `json:"digest_backend"`
}

func versionCommand() *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Usagef("version takes no positional arguments, got %q", args[0])
			}
			session, err := params.Resolve()
			if err != nil {
				return err
			}
			result := versionResult{
				Version:   version.Short(),
				Commit:    version.Commit(),
				BuildTime: version.BuildTime,
				Backend:   digest.Backend(),
			}
			return session.Emit(result, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "zklogic %s\n", version.Full())
				return err
			})
		},
	}
}
