// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how an input file is encoded.
type Compression string

const (
	// CompressionAuto picks by file extension: .zst and .zstd are zstd,
	// .lz4 is lz4, anything else (including stdin) is uncompressed.
	CompressionAuto Compression = "auto"
	// CompressionNone reads bytes as they are.
	CompressionNone Compression = "none"
	// CompressionZstd reads a zstd stream.
	CompressionZstd Compression = "zstd"
	// CompressionLZ4 reads an lz4 frame stream.
	CompressionLZ4 Compression = "lz4"
)

// ParseCompression parses a compression name. The empty string means
// CompressionAuto.
func ParseCompression(name string) (Compression, error) {
	switch Compression(name) {
	case "", CompressionAuto:
		return CompressionAuto, nil
	case CompressionNone, CompressionZstd, CompressionLZ4:
		return Compression(name), nil
	default:
		return "", fmt.Errorf("unknown compression %q (want auto, none, zstd, or lz4)", name)
	}
}

// Resolve returns the concrete compression for path.
func (c Compression) Resolve(path string) Compression {
	if c != CompressionAuto && c != "" {
		return c
	}
	switch filepath.Ext(path) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Open opens path for reading and wraps it in the decompressor for
// compression. Closing the result closes the file.
func Open(path string, compression Compression) (io.ReadCloser, error) {
	var file io.ReadCloser
	if path == "-" {
		file = io.NopCloser(os.Stdin)
	} else {
		opened, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		file = opened
	}

	reader, err := Decompress(file, compression.Resolve(path))
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &stackedReader{Reader: reader, closers: []io.Closer{reader, file}}, nil
}

// Decompress wraps reader according to compression. CompressionAuto is
// treated as none, since a bare stream has no extension to go by.
func Decompress(reader io.Reader, compression Compression) (io.ReadCloser, error) {
	switch compression {
	case CompressionAuto, CompressionNone, "":
		return io.NopCloser(reader), nil
	case CompressionZstd:
		decoder, err := zstd.NewReader(reader)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader: %w", err)
		}
		return decoder.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(reader)), nil
	default:
		return nil, fmt.Errorf("unknown compression %q", compression)
	}
}

// ReadAll reads and decompresses the whole input at path.
func ReadAll(path string, compression Compression) ([]byte, error) {
	reader, err := Open(path, compression)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// stackedReader closes a decompressor and its underlying file in order.
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var first error
	for _, closer := range s.closers {
		if err := closer.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
