// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"fmt"
	"slices"
	"testing"

	"github.com/bureau-foundation/zklogic/lib/digest"
	"github.com/bureau-foundation/zklogic/lib/testutil"
)

func sampleLeaves() []digest.Hash {
	return testutil.Leaves(3, func(payload []byte) digest.Hash {
		return digest.Sum(digest.TagLeaf, payload)
	})
}

func TestParseLeafListForms(t *testing.T) {
	leaves := sampleLeaves()

	bareArray := fmt.Sprintf(`["%s", "%s", "%s"]`, leaves[0], leaves[1], leaves[2])
	object := fmt.Sprintf(`{
		// chunk hashes in order
		"leaves": [
			"%s",
			"%s", /* middle */
			"%s",
		],
	}`, leaves[0], leaves[1], leaves[2])

	for name, document := range map[string]string{"array": bareArray, "object": object} {
		t.Run(name, func(t *testing.T) {
			got, err := ParseLeafList([]byte(document))
			if err != nil {
				t.Fatalf("ParseLeafList: %v", err)
			}
			if !slices.Equal(got, leaves) {
				t.Errorf("ParseLeafList = %v, want %v", got, leaves)
			}
		})
	}
}

func TestParseLeafListErrors(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"only_comment": "// nothing here",
		"bad_hex":      `["zz"]`,
		"short_digest": `["abcd"]`,
		"not_json":     `leaves: [a, b]`,
	}
	for name, document := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseLeafList([]byte(document)); err == nil {
				t.Errorf("ParseLeafList(%q) succeeded, want error", document)
			}
		})
	}
}

func TestReadLeafList(t *testing.T) {
	leaves := sampleLeaves()
	path := testutil.WriteFile(t, "leaves.jsonc", []byte(fmt.Sprintf(`{"leaves": ["%s", "%s", "%s"]}`,
		leaves[0], leaves[1], leaves[2])))

	got, err := ReadLeafList(path)
	if err != nil {
		t.Fatalf("ReadLeafList: %v", err)
	}
	if !slices.Equal(got, leaves) {
		t.Errorf("ReadLeafList = %v, want %v", got, leaves)
	}
}
