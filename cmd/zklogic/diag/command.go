// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package diag implements "zklogic diag", which prints binary proofs
// and attestation components in CBOR diagnostic notation.
package diag

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/zklogic/cmd/zklogic/cli"
	"github.com/bureau-foundation/zklogic/lib/codec"
	"github.com/bureau-foundation/zklogic/lib/source"
)

// Command returns the "diag" command.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "diag",
		Summary: "Show a CBOR file in diagnostic notation",
		Description: `Read a CBOR document (a proof from "merkle proof --out" or components
from "identity derive --components-out") and print RFC 8949 diagnostic
notation.

Byte strings print as h'...', so siblings and binary hashes can be
compared by eye against hex output from the other commands.

The input may be a CBOR sequence (several documents back to back, as
produced by concatenating proof files). Each document prints on its
own line.`,
		Usage: "zklogic diag [FILE]",
		Examples: []cli.Example{
			{
				Description: "Inspect a saved proof",
				Command:     "zklogic diag leaf2.proof",
			},
		},
		Run: func(args []string) error {
			path := "-"
			switch len(args) {
			case 0:
			case 1:
				path = args[0]
			default:
				return cli.Usagef("diag takes at most one FILE, got %d arguments", len(args))
			}
			input, err := source.Open(path, source.CompressionAuto)
			if err != nil {
				return err
			}
			defer input.Close()
			return diagnose(input, os.Stdout)
		},
	}
}

// diagnose prints each CBOR document read from r on its own line.
func diagnose(r io.Reader, w io.Writer) error {
	decoder := codec.NewDecoder(r)
	for count := 0; ; count++ {
		var item codec.RawMessage
		if err := decoder.Decode(&item); err != nil {
			if errors.Is(err, io.EOF) {
				if count == 0 {
					return fmt.Errorf("empty input: expected CBOR data")
				}
				return nil
			}
			return fmt.Errorf("decoding CBOR document %d: %w", count+1, err)
		}
		notation, err := codec.Diagnose(item)
		if err != nil {
			return fmt.Errorf("diagnose CBOR document %d: %w", count+1, err)
		}
		if _, err := fmt.Fprintln(w, notation); err != nil {
			return err
		}
	}
}
