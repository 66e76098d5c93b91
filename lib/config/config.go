// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/zklogic/lib/source"
)

// OutputFormat selects how the CLI prints results.
type OutputFormat string

const (
	// OutputText prints bare hex digests and short status lines.
	OutputText OutputFormat = "text"
	// OutputJSON prints indented JSON objects.
	OutputJSON OutputFormat = "json"
	// OutputCBOR writes deterministic CBOR to stdout.
	OutputCBOR OutputFormat = "cbor"
)

// Config is the zklogic CLI configuration.
type Config struct {
	// Output is the default output format. The --json flag overrides it.
	Output OutputFormat `yaml:"output"`

	// LogLevel is the minimum slog level: debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`

	// Input configures how payload files are read.
	Input InputConfig `yaml:"input"`

	// Attestation holds defaults for identity commands.
	Attestation AttestationConfig `yaml:"attestation"`
}

// InputConfig configures payload reading.
type InputConfig struct {
	// Compression is auto, none, zstd, or lz4.
	// Default: auto (by file extension)
	Compression string `yaml:"compression"`
}

// AttestationConfig holds defaults for "zklogic identity".
type AttestationConfig struct {
	// PublicKeyFile is the node's raw public key, used when
	// --public-key is not given.
	PublicKeyFile string `yaml:"public_key_file"`

	// Binary is the executable whose BLAKE3 hash is the binary hash.
	// Empty means the zklogic binary itself.
	Binary string `yaml:"binary"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output:   OutputText,
		LogLevel: "info",
		Input: InputConfig{
			Compression: string(source.CompressionAuto),
		},
	}
}

// Load loads configuration from the ZKLOGIC_CONFIG environment variable.
// There are no fallbacks: if ZKLOGIC_CONFIG is not set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv("ZKLOGIC_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("ZKLOGIC_CONFIG environment variable not set; " +
			"set it to the path of your zklogic.yaml config file, or use --config flag")
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, on top of
// [Default], and validates it.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// Compression parses Input.Compression.
func (c *Config) Compression() (source.Compression, error) {
	return source.ParseCompression(c.Input.Compression)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	switch c.Output {
	case OutputText, OutputJSON, OutputCBOR:
	default:
		errs = append(errs, fmt.Errorf("output must be one of text, json, cbor; got %q", c.Output))
	}

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if _, err := c.Compression(); err != nil {
		errs = append(errs, fmt.Errorf("input.compression: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Attestation.PublicKeyFile = expandVars(c.Attestation.PublicKeyFile, vars)
	c.Attestation.Binary = expandVars(c.Attestation.Binary, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}
