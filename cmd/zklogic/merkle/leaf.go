// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package merkle

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/zklogic/cmd/zklogic/cli"
	"github.com/bureau-foundation/zklogic/lib/digest"
	"github.com/bureau-foundation/zklogic/lib/merkle"
)

type leafParams struct {
	cli.OutputParams
	Text bool `flag:"text,t" desc:"treat arguments as literal UTF-8 strings instead of hex"`
}

// leafResult is the JSON form of "merkle leaf" output. It is shaped as
// a leaf list, so the output can be fed straight to "merkle root".
type leafResult struct {
	Leaves []digest.Hash `json:"leaves"`
}

func leafCommand() *cli.Command {
	var params leafParams

	return &cli.Command{
		Name:    "leaf",
		Summary: "Hash payloads into Merkle leaves",
		Usage:   "zklogic merkle leaf [flags] PAYLOAD...",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("leaf", &params)
		},
		Examples: []cli.Example{
			{
				Description: "Hash two hex payloads",
				Command:     "zklogic merkle leaf 00 01",
			},
			{
				Description: "Build a leaf list from strings",
				Command:     "zklogic merkle leaf --json --text alpha beta gamma > leaves.json",
			},
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return cli.Usagef("at least one payload is required")
			}
			payloads, err := decodePayloads(args, params.Text)
			if err != nil {
				return err
			}
			session, err := params.Resolve()
			if err != nil {
				return err
			}
			return runLeaf(session, payloads)
		},
	}
}

func decodePayloads(args []string, text bool) ([][]byte, error) {
	payloads := make([][]byte, len(args))
	for i, arg := range args {
		if text {
			payloads[i] = []byte(arg)
			continue
		}
		decoded, err := hex.DecodeString(arg)
		if err != nil {
			return nil, cli.Usagef("payload %d: %v (use --text for literal strings)", i, err)
		}
		payloads[i] = decoded
	}
	return payloads, nil
}

func runLeaf(session *cli.Session, payloads [][]byte) error {
	leaves := make([]digest.Hash, len(payloads))
	for i, payload := range payloads {
		leaves[i] = merkle.HashLeaf(payload)
	}

	return session.Emit(leafResult{Leaves: leaves}, func(w io.Writer) error {
		for _, leaf := range leaves {
			if _, err := fmt.Fprintln(w, leaf); err != nil {
				return err
			}
		}
		return nil
	})
}
