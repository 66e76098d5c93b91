// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/zklogic/cmd/zklogic/cli"
	"github.com/bureau-foundation/zklogic/lib/attestation"
	"github.com/bureau-foundation/zklogic/lib/binhash"
	"github.com/bureau-foundation/zklogic/lib/config"
	"github.com/bureau-foundation/zklogic/lib/digest"
	"github.com/bureau-foundation/zklogic/lib/testutil"
)

// publicKeySize matches an ML-DSA-65 public key.
const publicKeySize = 1952

func testSession(format config.OutputFormat) (*cli.Session, *bytes.Buffer) {
	var stdout bytes.Buffer
	return &cli.Session{
		Config: config.Default(),
		Format: format,
		Logger: slog.New(slog.DiscardHandler),
		Stdout: &stdout,
	}, &stdout
}

func testComponents() attestation.Components {
	return attestation.Components{
		PublicKey:  testutil.Bytes(11, publicKeySize),
		BinaryHash: digest.Sum(digest.TagContent, []byte("node binary")),
		Nonce:      42,
	}
}

func TestRunDerive(t *testing.T) {
	components := testComponents()
	want := attestation.DeriveEntangledID(components.PublicKey, components.BinaryHash, components.Nonce)

	session, stdout := testSession(config.OutputText)
	if err := runDerive(session, components, ""); err != nil {
		t.Fatalf("runDerive: %v", err)
	}
	if strings.TrimSpace(stdout.String()) != want.String() {
		t.Errorf("stdout = %q, want %s", stdout.String(), want)
	}
}

func TestRunDeriveJSON(t *testing.T) {
	components := testComponents()
	session, stdout := testSession(config.OutputJSON)
	if err := runDerive(session, components, ""); err != nil {
		t.Fatalf("runDerive: %v", err)
	}

	var result identityResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if result.ID != components.Derive() {
		t.Errorf("id = %s, want %s", result.ID, components.Derive())
	}
	if result.Nonce != 42 || result.KeySize != publicKeySize || result.BinaryHash != components.BinaryHash {
		t.Errorf("result = %+v", result)
	}
}

func TestRunDeriveComponentsRoundTrip(t *testing.T) {
	components := testComponents()
	out := filepath.Join(t.TempDir(), "node.components")

	session, stdout := testSession(config.OutputCBOR)
	if err := runDerive(session, components, out); err != nil {
		t.Fatalf("runDerive: %v", err)
	}

	var decoded attestation.Components
	if err := decoded.UnmarshalBinary(stdout.Bytes()); err != nil {
		t.Fatalf("decoding CBOR stdout: %v", err)
	}
	if !decoded.Equal(components) {
		t.Error("CBOR stdout does not decode to the input components")
	}

	params := componentParams{Components: out}
	loaded, err := params.resolve(config.Default())
	if err != nil {
		t.Fatalf("resolve(--components): %v", err)
	}
	if !loaded.Equal(components) {
		t.Error("--components-out file does not round-trip")
	}
}

func TestRunDeriveRejectsEmptyKey(t *testing.T) {
	components := testComponents()
	components.PublicKey = nil

	session, _ := testSession(config.OutputText)
	if err := runDerive(session, components, ""); !errors.Is(err, attestation.ErrEmptyPublicKey) {
		t.Errorf("runDerive(empty key) = %v, want ErrEmptyPublicKey", err)
	}
}

func TestRunVerify(t *testing.T) {
	components := testComponents()
	id := components.Derive()

	session, stdout := testSession(config.OutputText)
	if err := runVerify(session, components, id); err != nil {
		t.Fatalf("runVerify: %v", err)
	}
	if stdout.String() != "ok\n" {
		t.Errorf("stdout = %q, want ok", stdout.String())
	}

	mutations := map[string]func(*attestation.Components){
		"public_key": func(c *attestation.Components) {
			key := bytes.Clone(c.PublicKey)
			key[0] ^= 0x01
			c.PublicKey = key
		},
		"binary_hash": func(c *attestation.Components) { c.BinaryHash[31] ^= 0x80 },
		"nonce":       func(c *attestation.Components) { c.Nonce++ },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			changed := testComponents()
			mutate(&changed)

			session, stdout := testSession(config.OutputText)
			err := runVerify(session, changed, id)
			var exitErr *cli.ExitError
			if !errors.As(err, &exitErr) || exitErr.Code != 1 {
				t.Fatalf("runVerify = %v, want ExitError code 1", err)
			}
			if stdout.String() != "mismatch\n" {
				t.Errorf("stdout = %q, want mismatch", stdout.String())
			}
		})
	}
}

func TestResolveInputs(t *testing.T) {
	key := testutil.Bytes(5, 64)
	keyPath := testutil.WriteFile(t, "node.pub", key)
	binaryPath := testutil.WriteFile(t, "node", []byte("node executable"))
	binaryHash, err := binhash.HashFile(binaryPath)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	pinned := digest.Sum(digest.TagContent, []byte("pinned"))

	configured := config.Default()
	configured.Attestation.PublicKeyFile = keyPath
	configured.Attestation.Binary = binaryPath

	tests := []struct {
		name       string
		params     componentParams
		cfg        *config.Config
		wantBinary digest.Hash
	}{
		{"flags", componentParams{PublicKey: keyPath, Binary: binaryPath, Nonce: 3}, config.Default(), binaryHash},
		{"binary_hash_overrides_binary", componentParams{PublicKey: keyPath, Binary: binaryPath, BinaryHash: pinned.String()}, config.Default(), pinned},
		{"from_config", componentParams{}, configured, binaryHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components, err := tt.params.resolve(tt.cfg)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if !bytes.Equal(components.PublicKey, key) {
				t.Error("public key not read from file")
			}
			if components.BinaryHash != tt.wantBinary {
				t.Errorf("binary hash = %s, want %s", components.BinaryHash, tt.wantBinary)
			}
			if components.Nonce != tt.params.Nonce {
				t.Errorf("nonce = %d, want %d", components.Nonce, tt.params.Nonce)
			}
		})
	}
}

func TestResolveSelfBinary(t *testing.T) {
	keyPath := testutil.WriteFile(t, "node.pub", []byte{1, 2, 3})
	params := componentParams{PublicKey: keyPath}

	components, err := params.resolve(config.Default())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	self, _, err := binhash.HashSelf()
	if err != nil {
		t.Fatalf("HashSelf: %v", err)
	}
	if components.BinaryHash != self {
		t.Errorf("binary hash = %s, want running executable %s", components.BinaryHash, self)
	}
}

func TestResolveUsageErrors(t *testing.T) {
	tests := []struct {
		name   string
		params componentParams
	}{
		{"no_public_key", componentParams{}},
		{"components_with_nonce", componentParams{Components: "node.components", Nonce: 1}},
		{"components_with_zero_nonce", componentParams{Components: "node.components", nonceSet: true}},
		{"bad_binary_hash", componentParams{PublicKey: testutil.WriteFile(t, "k", []byte{1}), BinaryHash: "nothex"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.params.resolve(config.Default())
			var usage *cli.UsageError
			if !errors.As(err, &usage) {
				t.Errorf("resolve = %v, want UsageError", err)
			}
		})
	}
}

func TestCommandEndToEnd(t *testing.T) {
	t.Setenv("ZKLOGIC_CONFIG", "")
	components := testComponents()
	keyPath := testutil.WriteFile(t, "node.pub", components.PublicKey)
	id := components.Derive()

	err := Command().Execute([]string{
		"verify",
		"--id", id.String(),
		"--public-key", keyPath,
		"--binary-hash", components.BinaryHash.String(),
		"--nonce", "42",
	})
	if err != nil {
		t.Errorf("identity verify: %v", err)
	}

	err = Command().Execute([]string{
		"verify",
		"--id", id.String(),
		"--public-key", keyPath,
		"--binary-hash", components.BinaryHash.String(),
		"--nonce", "43",
	})
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		t.Errorf("identity verify with wrong nonce = %v, want ExitError", err)
	}
}

func TestCommandRejectsComponentsWithExplicitZeroNonce(t *testing.T) {
	t.Setenv("ZKLOGIC_CONFIG", "")
	data, err := testComponents().MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	path := testutil.WriteFile(t, "node.components", data)

	err = Command().Execute([]string{"derive", "--components", path, "--nonce", "0"})
	var usage *cli.UsageError
	if !errors.As(err, &usage) {
		t.Errorf("derive --components --nonce 0 = %v, want UsageError", err)
	}
}
