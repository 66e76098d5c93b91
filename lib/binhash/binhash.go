// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/zklogic/lib/digest"
)

// HashFile computes the BLAKE3-256 digest of the file at path. The file
// is streamed through the hasher so memory use is constant regardless
// of file size.
func HashFile(path string) (digest.Hash, error) {
	file, err := os.Open(path)
	if err != nil {
		return digest.Hash{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hash, err := HashReader(file)
	if err != nil {
		return digest.Hash{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return hash, nil
}

// HashReader computes the BLAKE3-256 digest of everything read from
// reader until EOF.
func HashReader(reader io.Reader) (digest.Hash, error) {
	hasher := blake3.New()
	if _, err := io.Copy(hasher, reader); err != nil {
		return digest.Hash{}, err
	}
	var result digest.Hash
	hasher.Sum(result[:0])
	return result, nil
}

// HashSelf computes the binary hash of the running executable and
// returns it with the executable's path. On Linux os.Executable reads
// /proc/self/exe, so the path names the binary the process started
// from even if it has since been replaced on disk.
func HashSelf() (hash digest.Hash, path string, err error) {
	path, err = os.Executable()
	if err != nil {
		return digest.Hash{}, "", fmt.Errorf("locating own executable: %w", err)
	}
	hash, err = HashFile(path)
	if err != nil {
		return digest.Hash{}, "", fmt.Errorf("hashing own binary at %s: %w", path, err)
	}
	return hash, path, nil
}
