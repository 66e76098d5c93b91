// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/zklogic/lib/codec"
	"github.com/bureau-foundation/zklogic/lib/config"
	"github.com/bureau-foundation/zklogic/lib/digest"
	"github.com/bureau-foundation/zklogic/lib/source"
)

// OutputParams is an embeddable struct that adds the shared output
// flags (--config, --json, --format, --log-level, --no-color) to a
// command's parameter struct.
//
// Usage:
//
//	type rootParams struct {
//	    cli.OutputParams
//	    Leaves string `flag:"leaves" desc:"leaf list file"`
//	}
//
//	// In Run:
//	session, err := params.Resolve()
type OutputParams struct {
	ConfigPath string `flag:"config" desc:"path to zklogic.yaml (default: $ZKLOGIC_CONFIG if set)"`
	OutputJSON bool   `flag:"json" desc:"output as JSON"`
	Format     string `flag:"format" desc:"output format: text, json, or cbor (default from config)"`
	LogLevel   string `flag:"log-level" desc:"debug, info, warn, or error (default from config)"`
	NoColor    bool   `flag:"no-color" desc:"disable colored output on a terminal"`
}

// Session is the resolved runtime context of one command invocation.
type Session struct {
	Config *config.Config
	Format config.OutputFormat
	Logger *slog.Logger
	Stdout io.Writer

	// Styler decorates text and JSON output. Nil means plain output.
	Styler *Styler
}

// Resolve loads configuration and applies flag overrides. The config
// file is taken from --config, then ZKLOGIC_CONFIG; with neither set the
// built-in defaults apply. Output format precedence is --format, then
// --json, then the config file.
func (p *OutputParams) Resolve() (*Session, error) {
	cfg, err := p.loadConfig()
	if err != nil {
		return nil, err
	}

	format := cfg.Output
	if p.OutputJSON {
		format = config.OutputJSON
	}
	if p.Format != "" {
		format = config.OutputFormat(p.Format)
		switch format {
		case config.OutputText, config.OutputJSON, config.OutputCBOR:
		default:
			return nil, Usagef("--format must be text, json, or cbor; got %q", p.Format)
		}
	}

	if p.LogLevel != "" {
		cfg.LogLevel = p.LogLevel
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, Usagef("--log-level: %v", err)
	}

	session := &Session{
		Config: cfg,
		Format: format,
		Logger: NewCommandLogger(level),
		Stdout: os.Stdout,
	}
	if !p.NoColor && os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(os.Stdout.Fd())) {
		session.Styler = NewStyler(os.Stdout)
	}
	return session, nil
}

func (p *OutputParams) loadConfig() (*config.Config, error) {
	if p.ConfigPath != "" {
		return config.LoadFile(p.ConfigPath)
	}
	if os.Getenv("ZKLOGIC_CONFIG") != "" {
		return config.Load()
	}
	return config.Default(), nil
}

// Emit writes result in the session's output format. For text output
// it calls text; JSON and CBOR encode result directly.
func (s *Session) Emit(result any, text func(w io.Writer) error) error {
	switch s.Format {
	case config.OutputJSON:
		if s.Styler == nil {
			return WriteJSON(s.Stdout, result)
		}
		var buffer bytes.Buffer
		if err := WriteJSON(&buffer, result); err != nil {
			return err
		}
		return s.Styler.WriteJSON(s.Stdout, buffer.Bytes())
	case config.OutputCBOR:
		return WriteCBOR(s.Stdout, result)
	default:
		return text(s.Stdout)
	}
}

// Verdict emits the result of a verification and converts a negative
// outcome into an [ExitError] with code 1. Text output is "ok" or
// "mismatch".
func (s *Session) Verdict(ok bool, result any) error {
	err := s.Emit(result, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, s.Styler.Verdict(ok))
		return err
	})
	if err != nil {
		return err
	}
	if !ok {
		return &ExitError{Code: 1}
	}
	return nil
}

// WriteCBOR writes value as deterministic CBOR. Values that implement
// [encoding.BinaryMarshaler] (proofs, attestation components) supply
// their own wire encoding.
func WriteCBOR(w io.Writer, value any) error {
	marshaler, ok := value.(encoding.BinaryMarshaler)
	if !ok {
		if err := codec.NewEncoder(w).Encode(value); err != nil {
			return fmt.Errorf("encoding CBOR output: %w", err)
		}
		return nil
	}
	data, err := marshaler.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encoding CBOR output: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// InputParams is an embeddable struct for commands that read a payload.
type InputParams struct {
	File        string `flag:"file,f" desc:"input file, or - for stdin" default:"-"`
	Compression string `flag:"compression" desc:"auto, none, zstd, or lz4 (default from config)"`
}

// Open opens the input named by --file, decompressing per --compression
// or the session's configured default.
func (p *InputParams) Open(session *Session) (io.ReadCloser, error) {
	compression, err := p.compression(session)
	if err != nil {
		return nil, err
	}
	session.Logger.Debug("opening input", "file", p.File, "compression", string(compression))
	return source.Open(p.File, compression)
}

func (p *InputParams) compression(session *Session) (source.Compression, error) {
	if p.Compression != "" {
		compression, err := source.ParseCompression(p.Compression)
		if err != nil {
			return "", Usagef("--compression: %v", err)
		}
		return compression, nil
	}
	return session.Config.Compression()
}

// ParseHashFlag parses a hex digest given to flag, reporting a
// [UsageError] when it is missing or malformed.
func ParseHashFlag(flag, value string) (digest.Hash, error) {
	if value == "" {
		return digest.Hash{}, Usagef("--%s is required", flag)
	}
	hash, err := digest.Parse(value)
	if err != nil {
		return digest.Hash{}, Usagef("--%s: %v", flag, err)
	}
	return hash, nil
}
