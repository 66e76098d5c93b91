// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binary implements the "zklogic binary" commands: computing
// the binary hash an Entangled ID commits to, and checking a binary
// against a pinned hash.
package binary

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/zklogic/cmd/zklogic/cli"
	"github.com/bureau-foundation/zklogic/lib/binhash"
	"github.com/bureau-foundation/zklogic/lib/digest"
	"github.com/bureau-foundation/zklogic/lib/version"
)

// Command returns the "binary" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "binary",
		Summary: "Hash executables for attestation",
		Description: `Hash executables for attestation.

The binary hash is plain BLAKE3-256 of the executable file, with no
domain tag. It is the value "identity derive" binds into an Entangled
ID. With no PATH, the running zklogic executable is hashed.`,
		Subcommands: []*cli.Command{
			hashCommand(),
			checkCommand(),
		},
	}
}

type hashParams struct {
	cli.OutputParams
}

// hashResult is the JSON and CBOR form of "binary hash" output.
type hashResult struct {
	Path string      `json:"path"`
	Hash digest.Hash `json:"hash"`
}

func hashCommand() *cli.Command {
	var params hashParams

	return &cli.Command{
		Name:    "hash",
		Summary: "Print the binary hash of an executable",
		Usage:   "zklogic binary hash [flags] [PATH]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("hash", &params)
		},
		Examples: []cli.Example{
			{
				Description: "Hash a release binary",
				Command:     "zklogic binary hash ./node-v2",
			},
		},
		Run: func(args []string) error {
			path, err := pathArgument(args)
			if err != nil {
				return err
			}
			session, err := params.Resolve()
			if err != nil {
				return err
			}
			return runHash(session, path)
		},
	}
}

func runHash(session *cli.Session, path string) error {
	var hash digest.Hash
	var err error
	if path == "" {
		hash, path, err = binhash.HashSelf()
	} else {
		hash, err = binhash.HashFile(path)
	}
	if err != nil {
		return err
	}
	session.Logger.Debug("binary hashed", "path", path)

	return session.Emit(hashResult{Path: path, Hash: hash}, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, hash)
		return err
	})
}

type checkParams struct {
	cli.OutputParams
	Expected string `flag:"expected,e" desc:"pinned binary hash (hex)"`
}

// checkResult is the JSON and CBOR form of "binary check" output.
type checkResult struct {
	Match    bool        `json:"match"`
	Path     string      `json:"path"`
	Expected digest.Hash `json:"expected"`
	Actual   digest.Hash `json:"actual"`
}

func checkCommand() *cli.Command {
	var params checkParams

	return &cli.Command{
		Name:    "check",
		Summary: "Check an executable against a pinned binary hash",
		Description: `Hash an executable and compare it against --expected.

A node whose executable changed since it derived its Entangled ID can no
longer prove that identity. Prints "ok" and exits 0 when the binary still
matches. Prints "mismatch" and exits 1 otherwise.`,
		Usage: "zklogic binary check --expected HEX [flags] [PATH]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("check", &params)
		},
		Run: func(args []string) error {
			path, err := pathArgument(args)
			if err != nil {
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
			return runCheck(session, expected, path)
		},
	}
}

func runCheck(session *cli.Session, expected digest.Hash, path string) error {
	drift, err := version.Check(expected, path)
	if err != nil {
		return err
	}
	match := !drift.Changed()
	if !match {
		session.Logger.Warn("binary drifted from pinned hash",
			"path", drift.Path,
			"expected", drift.Expected.String(),
			"actual", drift.Actual.String(),
		)
	}

	return session.Verdict(match, checkResult{
		Match:    match,
		Path:     drift.Path,
		Expected: drift.Expected,
		Actual:   drift.Actual,
	})
}

func pathArgument(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return args[0], nil
	default:
		return "", cli.Usagef("expected at most one PATH, got %d arguments", len(args))
	}
}
