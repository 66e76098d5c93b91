// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package merkle

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/zklogic/cmd/zklogic/cli"
	"github.com/bureau-foundation/zklogic/lib/digest"
	"github.com/bureau-foundation/zklogic/lib/merkle"
	"github.com/bureau-foundation/zklogic/lib/source"
)

type rootParams struct {
	cli.OutputParams
	Leaves  string `flag:"leaves,l" desc:"leaf list file, or - for stdin" default:"-"`
	InPlace bool   `flag:"in-place" desc:"reduce inside the loaded leaf buffer instead of copying it"`
}

// rootResult is the JSON and CBOR form of "merkle root" output.
type rootResult struct {
	Root      digest.Hash `json:"root"`
	LeafCount int         `json:"leaf_count"`
}

func rootCommand() *cli.Command {
	var params rootParams

	return &cli.Command{
		Name:    "root",
		Summary: "Compute the Merkle root of a leaf list",
		Usage:   "zklogic merkle root [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("root", &params)
		},
		Examples: []cli.Example{
			{
				Description: "Root of a leaf list file",
				Command:     "zklogic merkle root --leaves leaves.json",
			},
			{
				Description: "Pipe leaves in from \"merkle leaf\"",
				Command:     "zklogic merkle leaf --json --text a b c | zklogic merkle root",
			},
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Usagef("root takes no positional arguments, got %q", args[0])
			}
			session, err := params.Resolve()
			if err != nil {
				return err
			}
			leaves, err := source.ReadLeafList(params.Leaves)
			if err != nil {
				return err
			}
			return runRoot(session, leaves, params.InPlace)
		},
	}
}

func runRoot(session *cli.Session, leaves []digest.Hash, inPlace bool) error {
	count := len(leaves)

	var root digest.Hash
	var err error
	if inPlace {
		root, err = merkle.RootInPlace(leaves)
	} else {
		root, err = merkle.BuildTreeRoot(leaves)
	}
	if err != nil {
		return err
	}
	session.Logger.Debug("merkle root computed", "leaves", count, "in_place", inPlace)

	return session.Emit(rootResult{Root: root, LeafCount: count}, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, root)
		return err
	})
}
