// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package merkle

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/zklogic/cmd/zklogic/cli"
	"github.com/bureau-foundation/zklogic/lib/config"
	"github.com/bureau-foundation/zklogic/lib/digest"
	"github.com/bureau-foundation/zklogic/lib/merkle"
	"github.com/bureau-foundation/zklogic/lib/source"
)

type proofParams struct {
	cli.OutputParams
	Leaves string `flag:"leaves,l" desc:"leaf list file, or - for stdin" default:"-"`
	Index  int    `flag:"index,i" desc:"zero-based index of the leaf to prove"`
	Out    string `flag:"out,o" desc:"also write the proof as CBOR to this file"`
}

// proofResult is the JSON form of "merkle proof" output. CBOR output is
// the bare proof, the form a zkVM guest reads.
type proofResult struct {
	Leaf  digest.Hash  `json:"leaf"`
	Root  digest.Hash  `json:"root"`
	Proof merkle.Proof `json:"proof"`
}

func proofCommand() *cli.Command {
	var params proofParams

	return &cli.Command{
		Name:    "proof",
		Summary: "Generate an inclusion proof for one leaf",
		Description: `Generate an inclusion proof for the leaf at --index.

The proof records the index, the leaf count, and one (sibling, side)
step per level where the path node had a sibling. Levels where the node
was promoted unpaired contribute no step.

Text output prints the root and one step per line. With --out, the proof
is additionally written as deterministic CBOR for transport or for a
zkVM guest.`,
		Usage: "zklogic merkle proof --index N [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("proof", &params)
		},
		Examples: []cli.Example{
			{
				Description: "Prove leaf 2 and save the binary proof",
				Command:     "zklogic merkle proof --leaves leaves.json --index 2 --out leaf2.proof",
			},
			{
				Description: "Emit the proof as JSON",
				Command:     "zklogic merkle proof --leaves leaves.json --index 2 --json",
			},
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Usagef("proof takes no positional arguments, got %q", args[0])
			}
			session, err := params.Resolve()
			if err != nil {
				return err
			}
			leaves, err := source.ReadLeafList(params.Leaves)
			if err != nil {
				return err
			}
			return runProof(session, leaves, params.Index, params.Out)
		},
	}
}

func runProof(session *cli.Session, leaves []digest.Hash, index int, out string) error {
	proof, err := merkle.GenerateProof(leaves, index)
	if err != nil {
		return err
	}
	root, err := merkle.BuildTreeRoot(leaves)
	if err != nil {
		return err
	}
	logger := session.Logger.With("index", index, "leaves", len(leaves), "steps", len(proof.Steps))

	if out != "" {
		data, err := proof.MarshalBinary()
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("writing proof: %w", err)
		}
		logger.Info("proof written", "path", out, "bytes", len(data))
	}

	if session.Format == config.OutputCBOR {
		return cli.WriteCBOR(session.Stdout, proof)
	}

	result := proofResult{Leaf: leaves[index], Root: root, Proof: proof}
	return session.Emit(result, func(w io.Writer) error {
		styler := session.Styler
		if _, err := fmt.Fprintf(w, "%s %s\n%s %s\n%s %d of %d\n",
			styler.Faint("root"), root,
			styler.Faint("leaf"), leaves[index],
			styler.Faint("index"), proof.Index, proof.LeafCount); err != nil {
			return err
		}
		for _, step := range proof.Steps {
			if _, err := fmt.Fprintf(w, "%-5s %s\n", step.Side, step.Sibling); err != nil {
				return err
			}
		}
		return nil
	})
}
