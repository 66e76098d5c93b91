// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package identity implements the "zklogic identity" commands, which
// derive and check Entangled Attestation IDs.
package identity

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/zklogic/cmd/zklogic/cli"
	"github.com/bureau-foundation/zklogic/lib/attestation"
	"github.com/bureau-foundation/zklogic/lib/binhash"
	"github.com/bureau-foundation/zklogic/lib/config"
	"github.com/bureau-foundation/zklogic/lib/digest"
	"github.com/bureau-foundation/zklogic/lib/source"
)

// Command returns the "identity" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "identity",
		Summary: "Derive and verify Entangled Attestation IDs",
		Description: `Derive and verify Entangled Attestation IDs.

An Entangled ID binds a node's public key, the BLAKE3 hash of the binary
it runs, and a nonce into one 32-byte identifier. Changing any input
changes the ID, so a node that swaps its binary can no longer claim the
identity it derived before.

The public key is read raw from --public-key (default from the config
file's attestation.public_key_file). The binary hash comes from
--binary-hash, else the file at --binary, else attestation.binary from
the config file, else the running zklogic executable.

Alternatively, --components reads a CBOR components file written by
"identity derive --components-out", the form handed to a zkVM guest.`,
		Subcommands: []*cli.Command{
			deriveCommand(),
			verifyCommand(),
		},
	}
}

// componentParams are the inputs shared by derive and verify.
type componentParams struct {
	PublicKey  string `flag:"public-key,k" desc:"file holding the raw public key bytes"`
	Binary     string `flag:"binary,b" desc:"executable whose BLAKE3 hash is the binary hash"`
	BinaryHash string `flag:"binary-hash" desc:"binary hash (hex); overrides --binary"`
	Nonce      uint64 `flag:"nonce,n" desc:"attestation nonce"`
	Components string `flag:"components,c" desc:"CBOR components file; replaces the other inputs"`

	// nonceSet records an explicit --nonce, including --nonce 0.
	nonceSet bool
}

// noteFlags records which inputs were given on the command line after
// flagSet has been parsed.
func (p *componentParams) noteFlags(flagSet *pflag.FlagSet) {
	p.nonceSet = flagSet.Changed("nonce")
}

// resolve assembles the attestation inputs from flags and configuration.
func (p *componentParams) resolve(cfg *config.Config) (attestation.Components, error) {
	if p.Components != "" {
		if p.PublicKey != "" || p.Binary != "" || p.BinaryHash != "" || p.nonceSet || p.Nonce != 0 {
			return attestation.Components{}, cli.Usagef("--components cannot be combined with --public-key, --binary, --binary-hash, or --nonce")
		}
		data, err := source.ReadAll(p.Components, source.CompressionAuto)
		if err != nil {
			return attestation.Components{}, err
		}
		var components attestation.Components
		if err := components.UnmarshalBinary(data); err != nil {
			return attestation.Components{}, err
		}
		return components, nil
	}

	keyPath := p.PublicKey
	if keyPath == "" {
		keyPath = cfg.Attestation.PublicKeyFile
	}
	if keyPath == "" {
		return attestation.Components{}, cli.Usagef("--public-key is required (or set attestation.public_key_file in the config file)")
	}
	publicKey, err := os.ReadFile(keyPath)
	if err != nil {
		return attestation.Components{}, fmt.Errorf("reading public key: %w", err)
	}

	binaryHash, err := p.binaryHash(cfg)
	if err != nil {
		return attestation.Components{}, err
	}

	return attestation.Components{
		PublicKey:  publicKey,
		BinaryHash: binaryHash,
		Nonce:      p.Nonce,
	}, nil
}

func (p *componentParams) binaryHash(cfg *config.Config) (digest.Hash, error) {
	if p.BinaryHash != "" {
		return cli.ParseHashFlag("binary-hash", p.BinaryHash)
	}
	path := p.Binary
	if path == "" {
		path = cfg.Attestation.Binary
	}
	if path == "" {
		hash, _, err := binhash.HashSelf()
		return hash, err
	}
	return binhash.HashFile(path)
}

type deriveParams struct {
	cli.OutputParams
	componentParams
	ComponentsOut string `flag:"components-out" desc:"write the derivation inputs as CBOR to this file"`
}

// identityResult is the JSON form of "identity derive" output. CBOR
// output is the components themselves.
type identityResult struct {
	ID         attestation.EntangledID `json:"id"`
	BinaryHash digest.Hash             `json:"binary_hash"`
	Nonce      uint64                  `json:"nonce"`
	KeySize    int                     `json:"public_key_size"`
}

func deriveCommand() *cli.Command {
	var params deriveParams
	var flagSet *pflag.FlagSet

	return &cli.Command{
		Name:    "derive",
		Summary: "Derive an Entangled ID",
		Usage:   "zklogic identity derive --public-key FILE [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet = cli.FlagsFromParams("derive", &params)
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Derive the ID of this node's running binary",
				Command:     "zklogic identity derive --public-key node.pub --nonce 1",
			},
			{
				Description: "Derive for a release binary and save the guest input",
				Command:     "zklogic identity derive -k node.pub -b ./node-v2 -n 7 --components-out node.components",
			},
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Usagef("derive takes no positional arguments, got %q", args[0])
			}
			params.noteFlags(flagSet)
			session, err := params.Resolve()
			if err != nil {
				return err
			}
			components, err := params.resolve(session.Config)
			if err != nil {
				return err
			}
			return runDerive(session, components, params.ComponentsOut)
		},
	}
}

func runDerive(session *cli.Session, components attestation.Components, componentsOut string) error {
	if err := components.Validate(); err != nil {
		return err
	}
	id := components.Derive()
	session.Logger.Debug("entangled id derived",
		"binary_hash", components.BinaryHash.String(),
		"nonce", components.Nonce,
		"public_key_size", len(components.PublicKey),
	)

	if componentsOut != "" {
		data, err := components.MarshalBinary()
		if err != nil {
			return err
		}
		if err := os.WriteFile(componentsOut, data, 0o644); err != nil {
			return fmt.Errorf("writing components: %w", err)
		}
		session.Logger.Info("components written", "path", componentsOut, "bytes", len(data))
	}

	if session.Format == config.OutputCBOR {
		return cli.WriteCBOR(session.Stdout, components)
	}

	result := identityResult{
		ID:         id,
		BinaryHash: components.BinaryHash,
		Nonce:      components.Nonce,
		KeySize:    len(components.PublicKey),
	}
	return session.Emit(result, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, id)
		return err
	})
}

type verifyParams struct {
	cli.OutputParams
	componentParams
	ID string `flag:"id" desc:"claimed Entangled ID (hex)"`
}

// verifyResult is the JSON and CBOR form of "identity verify" output.
type verifyResult struct {
	Match bool                    `json:"match"`
	ID    attestation.EntangledID `json:"id"`
}

func verifyCommand() *cli.Command {
	var params verifyParams
	var flagSet *pflag.FlagSet

	return &cli.Command{
		Name:    "verify",
		Summary: "Check a claimed Entangled ID against its inputs",
		Description: `Re-derive the Entangled ID from the given inputs and compare it
against --id in constant time.

Prints "ok" and exits 0 when the ID matches. Prints "mismatch" and exits
1 otherwise.`,
		Usage: "zklogic identity verify --id HEX --public-key FILE [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet = cli.FlagsFromParams("verify", &params)
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Check a peer's claimed identity against a pinned release",
				Command:     "zklogic identity verify --id 3b9f...c0 -k peer.pub --binary-hash 51e2...9d -n 7",
			},
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Usagef("verify takes no positional arguments, got %q", args[0])
			}
			id, err := cli.ParseHashFlag("id", params.ID)
			if err != nil {
				return err
			}
			params.noteFlags(flagSet)
			session, err := params.Resolve()
			if err != nil {
				return err
			}
			components, err := params.resolve(session.Config)
			if err != nil {
				return err
			}
			return runVerify(session, components, id)
		},
	}
}

func runVerify(session *cli.Session, components attestation.Components, id attestation.EntangledID) error {
	match := attestation.VerifyEntangledID(id, components.PublicKey, components.BinaryHash, components.Nonce)
	session.Logger.Debug("entangled id checked", "nonce", components.Nonce, "match", match)
	return session.Verdict(match, verifyResult{Match: match, ID: id})
}
