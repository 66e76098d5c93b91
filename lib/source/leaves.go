// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/zklogic/lib/digest"
)

// leafDocument is the object form of a leaf list.
type leafDocument struct {
	Leaves []digest.Hash `json:"leaves"`
}

// ParseLeafList strips JSONC comments and trailing commas from data and
// decodes either a bare array of hex digests or {"leaves": [...]}.
func ParseLeafList(data []byte) ([]digest.Hash, error) {
	stripped := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(stripped) == 0 {
		return nil, fmt.Errorf("parsing leaf list: empty document")
	}

	var leaves []digest.Hash
	if stripped[0] == '[' {
		if err := json.Unmarshal(stripped, &leaves); err != nil {
			return nil, fmt.Errorf("parsing leaf list: %w", err)
		}
		return leaves, nil
	}

	var document leafDocument
	if err := json.Unmarshal(stripped, &document); err != nil {
		return nil, fmt.Errorf("parsing leaf list: %w", err)
	}
	return document.Leaves, nil
}

// ReadLeafList reads a leaf list from path ("-" for stdin).
func ReadLeafList(path string) ([]digest.Hash, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading leaf list: %w", err)
	}
	return ParseLeafList(data)
}
