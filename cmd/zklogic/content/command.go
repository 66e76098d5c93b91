// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package content implements the "zklogic content" commands: computing
// and verifying content hashes of payloads.
package content

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/zklogic/cmd/zklogic/cli"
	"github.com/bureau-foundation/zklogic/lib/content"
	"github.com/bureau-foundation/zklogic/lib/digest"
)

// Command returns the "content" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "content",
		Summary: "Compute and verify content hashes",
		Description: `Compute and verify content hashes.

A content hash is BLAKE3 over the "content" domain tag followed by the
payload bytes. The same payload always produces the same 32-byte hash on
every platform, host or zkVM guest.

Input is read from --file or the first positional argument, or stdin
when neither is given. Files ending in .zst or .lz4 are decompressed
before hashing; the hash always covers the decompressed payload.`,
		Subcommands: []*cli.Command{
			hashCommand(),
			verifyCommand(),
		},
	}
}

type hashParams struct {
	cli.OutputParams
	cli.InputParams
}

// hashResult is the JSON and CBOR form of "content hash" output.
type hashResult struct {
	Hash digest.Hash `json:"hash"`
	Size int64       `json:"size"`
}

func hashCommand() *cli.Command {
	var params hashParams

	return &cli.Command{
		Name:    "hash",
		Summary: "Print the content hash of a payload",
		Usage:   "zklogic content hash [flags] [FILE]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("hash", &params)
		},
		Examples: []cli.Example{
			{
				Description: "Hash a file",
				Command:     "zklogic content hash record.bin",
			},
			{
				Description: "Hash a zstd-compressed payload from stdin",
				Command:     "zklogic content hash --compression zstd < record.bin.zst",
			},
		},
		Run: func(args []string) error {
			if err := takeFileArgument(&params.InputParams, args); err != nil {
				return err
			}
			session, err := params.Resolve()
			if err != nil {
				return err
			}
			reader, err := params.Open(session)
			if err != nil {
				return err
			}
			defer reader.Close()
			return runHash(session, reader)
		},
	}
}

func runHash(session *cli.Session, reader io.Reader) error {
	counter := &countingReader{reader: reader}
	hash, err := content.ComputeReader(counter)
	if err != nil {
		return err
	}
	session.Logger.Debug("content hashed", "bytes", counter.count, "hash", hash.String())

	result := hashResult{Hash: hash, Size: counter.count}
	return session.Emit(result, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, hash)
		return err
	})
}

type verifyParams struct {
	cli.OutputParams
	cli.InputParams
	Expected string `flag:"expected,e" desc:"expected content hash (hex)"`
}

// verifyResult is the JSON and CBOR form of "content verify" output.
type verifyResult struct {
	Match    bool        `json:"match"`
	Expected digest.Hash `json:"expected"`
}

func verifyCommand() *cli.Command {
	var params verifyParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Check a payload against an expected content hash",
		Description: `Recompute the content hash of a payload and compare it against
--expected in constant time.

Prints "ok" and exits 0 on a match. Prints "mismatch" and exits 1
otherwise. No detail about where the payload differs is reported.`,
		Usage: "zklogic content verify --expected HEX [flags] [FILE]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("verify", &params)
		},
		Examples: []cli.Example{
			{
				Description: "Verify a record fetched from a peer",
				Command:     "zklogic content verify --expected 4f1c...e2 record.bin",
			},
		},
		Run: func(args []string) error {
			if err := takeFileArgument(&params.InputParams, args); err != nil {
				return err
			}
			expected, err := cli.ParseHashFlag("expected", params.Expected)
			if err != nil {
				return err
			}
			session, err := params.Resolve()
			if err != nil {
				return err
			}
			reader, err := params.Open(session)
			if err != nil {
				return err
			}
			defer reader.Close()
			return runVerify(session, reader, expected)
		},
	}
}

func runVerify(session *cli.Session, reader io.Reader, expected digest.Hash) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("reading payload: %w", err)
	}

	match := true
	if err := content.Verify(data, expected); err != nil {
		if !errors.Is(err, content.ErrHashMismatch) {
			return err
		}
		match = false
	}
	session.Logger.Debug("content verified", "bytes", len(data), "match", match)

	return session.Verdict(match, verifyResult{Match: match, Expected: expected})
}

// takeFileArgument lets a single positional argument stand in for --file.
func takeFileArgument(params *cli.InputParams, args []string) error {
	switch len(args) {
	case 0:
		return nil
	case 1:
		if params.File != "-" && params.File != args[0] {
			return cli.Usagef("both --file %q and positional argument %q given", params.File, args[0])
		}
		params.File = args[0]
		return nil
	default:
		return cli.Usagef("expected at most one input file, got %d arguments", len(args))
	}
}

type countingReader struct {
	reader io.Reader
	count  int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.count += int64(n)
	return n, err
}
