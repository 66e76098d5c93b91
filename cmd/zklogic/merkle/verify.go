// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package merkle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/zklogic/cmd/zklogic/cli"
	"github.com/bureau-foundation/zklogic/lib/digest"
	"github.com/bureau-foundation/zklogic/lib/merkle"
	"github.com/bureau-foundation/zklogic/lib/source"
)

type verifyParams struct {
	cli.OutputParams
	Proof string `flag:"proof,p" desc:"proof file (CBOR or JSON), or - for stdin" default:"-"`
	Leaf  string `flag:"leaf" desc:"leaf hash being proven (hex)"`
	Root  string `flag:"root" desc:"trusted Merkle root (hex)"`
}

// verifyResult is the JSON and CBOR form of "merkle verify" output.
type verifyResult struct {
	Valid     bool        `json:"valid"`
	Root      digest.Hash `json:"root"`
	Index     int         `json:"index"`
	LeafCount int         `json:"leaf_count"`
}

func verifyCommand() *cli.Command {
	var params verifyParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Check an inclusion proof against a trusted root",
		Description: `Recompute the root from --leaf along the proof's steps and compare
it against --root in constant time.

The proof's steps must match the shape of a tree with the proof's leaf
count at the proof's index. A truncated, reordered, or side-flipped
proof fails before any hashing.

Prints "ok" and exits 0 when the proof holds. Prints "mismatch" and
exits 1 otherwise.`,
		Usage: "zklogic merkle verify --proof FILE --leaf HEX --root HEX [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("verify", &params)
		},
		Examples: []cli.Example{
			{
				Description: "Verify a saved proof",
				Command:     "zklogic merkle verify --proof leaf2.proof --leaf 9a0e...41 --root 77c3...0b",
			},
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Usagef("verify takes no positional arguments, got %q", args[0])
			}
			leaf, err := cli.ParseHashFlag("leaf", params.Leaf)
			if err != nil {
				return err
			}
			root, err := cli.ParseHashFlag("root", params.Root)
			if err != nil {
				return err
			}
			session, err := params.Resolve()
			if err != nil {
				return err
			}
			data, err := source.ReadAll(params.Proof, source.CompressionAuto)
			if err != nil {
				return err
			}
			return runVerify(session, data, leaf, root)
		},
	}
}

// decodeProof accepts a proof in either of the forms "merkle proof"
// writes: a JSON object (bare, or wrapped as {"proof": ...}) or CBOR.
func decodeProof(data []byte) (merkle.Proof, error) {
	var proof merkle.Proof
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped struct {
			Proof json.RawMessage `json:"proof"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return merkle.Proof{}, fmt.Errorf("decoding JSON proof: %w", err)
		}
		if wrapped.Proof != nil {
			trimmed = wrapped.Proof
		}
		if err := json.Unmarshal(trimmed, &proof); err != nil {
			return merkle.Proof{}, fmt.Errorf("decoding JSON proof: %w", err)
		}
		return proof, nil
	}
	if err := proof.UnmarshalBinary(data); err != nil {
		return merkle.Proof{}, fmt.Errorf("decoding CBOR proof: %w", err)
	}
	return proof, nil
}

// runVerify decodes and checks a proof. A proof that decodes but is
// structurally impossible is a negative verdict, not an error.
func runVerify(session *cli.Session, data []byte, leaf, root digest.Hash) error {
	proof, err := decodeProof(data)
	if err == nil {
		err = proof.Verify(leaf, root)
	}
	if err != nil && !errors.Is(err, merkle.ErrProofInvalid) {
		return err
	}
	valid := err == nil
	if !valid {
		session.Logger.Debug("proof rejected", "index", proof.Index, "leaf_count", proof.LeafCount, "error", err)
	}

	return session.Verdict(valid, verifyResult{
		Valid:     valid,
		Root:      root,
		Index:     proof.Index,
		LeafCount: proof.LeafCount,
	})
}
