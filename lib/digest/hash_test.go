// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/zklogic/lib/testutil"
)

func TestSumIsTagThenPayload(t *testing.T) {
	// The wire contract is BLAKE3(tag || payload). Check against a
	// one-shot hash of the explicit concatenation.
	payload := []byte("payload bytes")
	for _, tag := range Tags() {
		concatenated := append([]byte(tag), payload...)
		want := Hash(blake3.Sum256(concatenated))
		if got := Sum(tag, payload); got != want {
			t.Errorf("Sum(%q) = %s, want %s", tag, got, want)
		}
	}
}

// Fixed outputs of Sum. Any other implementation of the tags must
// reproduce these exactly.
func TestSumKnownValues(t *testing.T) {
	tests := []struct {
		name    string
		tag     Tag
		payload []byte
		want    string
	}{
		{"content empty", TagContent, nil, "3fba5250be9ac259c56e7250c526bc83bacb4be825f2799d3d59e5b4878dd74e"},
		{"content abc", TagContent, []byte("abc"), "be6381bec5f095b231b08ef86792946b8336328a472a7ebb585502e77fc51d59"},
		{"leaf empty", TagLeaf, nil, "9f44ea12f7e20af934f90ffaaa2aa6ca2488ea3bc238a25bd8d1684ce935fd83"},
		{"node zero pair", TagNode, make([]byte, 2*Size), "2f98d5d0ce7f11a8a16dcebc706f7af7440dd3185f0fb8f737b3322dbf186648"},
		{"entangled-id zero", TagEntangledID, make([]byte, Size+8), "c995577c9a92aa1efaa473945b6f2b37cda2bafa8e628c3108e1bcc08c3f8877"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(Sum(tt.tag, tt.payload)); got != tt.want {
				t.Errorf("Sum(%q, %x) = %s, want %s", tt.tag, tt.payload, got, tt.want)
			}
		})
	}

	if got, want := Format(SumPair(TagNode, Hash{}, Hash{})), tests[3].want; got != want {
		t.Errorf("SumPair(node, zero, zero) = %s, want %s", got, want)
	}
}

func TestSumPartsMatchConcatenation(t *testing.T) {
	joined := Sum(TagEntangledID, []byte("abcdef"))
	split := Sum(TagEntangledID, []byte("ab"), []byte("cd"), nil, []byte("ef"))
	if joined != split {
		t.Error("Sum over split parts differs from Sum over the joined payload")
	}
}

func TestSumEmptyPayload(t *testing.T) {
	hash := Sum(TagContent)
	if hash.IsZero() {
		t.Error("Sum with no payload returned zero hash")
	}
	if hash != Sum(TagContent, nil) || hash != Sum(TagContent, []byte{}) {
		t.Error("no parts, nil part, and empty part should all hash the same")
	}
}

func TestTagsAreDistinct(t *testing.T) {
	payload := []byte("the same input bytes for every domain")
	seen := make(map[Hash]Tag)
	for _, tag := range Tags() {
		hash := Sum(tag, payload)
		if previous, exists := seen[hash]; exists {
			t.Errorf("tags %q and %q produced the same hash", previous, tag)
		}
		seen[hash] = tag
	}
}

func TestTagsArePrefixFree(t *testing.T) {
	tags := Tags()
	for i := range tags {
		for j := range tags {
			if i != j && strings.HasPrefix(string(tags[j]), string(tags[i])) {
				t.Errorf("tag %q is a prefix of %q", tags[i], tags[j])
			}
		}
	}
}

func TestTagWireValues(t *testing.T) {
	// These byte strings are shared with every other implementation.
	want := map[Tag]string{
		TagContent:     "content",
		TagLeaf:        "leaf",
		TagNode:        "node",
		TagEntangledID: "entangled-id",
	}
	for tag, value := range want {
		if string(tag) != value {
			t.Errorf("tag %q has wire value %q, want %q", tag, string(tag), value)
		}
	}
}

func TestSumPair(t *testing.T) {
	left := Sum(TagLeaf, []byte("left"))
	right := Sum(TagLeaf, []byte("right"))

	want := Sum(TagNode, left[:], right[:])
	if got := SumPair(TagNode, left, right); got != want {
		t.Errorf("SumPair = %s, want %s", got, want)
	}
	if SumPair(TagNode, left, right) == SumPair(TagNode, right, left) {
		t.Error("SumPair is order-independent")
	}
}

func TestEqual(t *testing.T) {
	a := Sum(TagContent, []byte("a"))
	b := a
	if !Equal(a, b) {
		t.Error("Equal returned false for identical hashes")
	}

	// Differences at the first and last byte both fail.
	first := a
	first[0] ^= 0x01
	last := a
	last[Size-1] ^= 0x80
	if Equal(a, first) {
		t.Error("Equal ignored a difference in the first byte")
	}
	if Equal(a, last) {
		t.Error("Equal ignored a difference in the last byte")
	}
}

func TestSumConcurrent(t *testing.T) {
	want := Sum(TagLeaf, []byte("concurrent"))

	testutil.RunConcurrently(t, 64, 10*time.Second, func(worker int) error {
		for range 100 {
			if got := Sum(TagLeaf, []byte("concurrent")); got != want {
				return fmt.Errorf("worker %d: concurrent Sum = %s, want %s", worker, got, want)
			}
		}
		return nil
	})
}

func TestFormatParseRoundTrip(t *testing.T) {
	original := Sum(TagContent, []byte("roundtrip test"))
	formatted := Format(original)

	if len(formatted) != 64 {
		t.Errorf("Format length = %d, want 64", len(formatted))
	}
	if _, err := hex.DecodeString(formatted); err != nil {
		t.Errorf("Format produced invalid hex: %v", err)
	}

	parsed, err := Parse(formatted)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed != original {
		t.Errorf("Parse roundtrip failed: got %s, want %s", parsed, original)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too_short", "abcdef"},
		{"too_long", strings.Repeat("ab", 33)},
		{"invalid_hex", strings.Repeat("zz", 32)},
		{"odd_length", strings.Repeat("a", 63)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.input); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.input)
			}
		})
	}
}

func TestHashJSON(t *testing.T) {
	type wrapper struct {
		Root Hash `json:"root"`
	}
	original := wrapper{Root: Sum(TagNode, []byte("json"))}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), original.Root.String()) {
		t.Errorf("JSON %s does not contain hex digest %s", data, original.Root)
	}

	var decoded wrapper
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("JSON roundtrip: got %s, want %s", decoded.Root, original.Root)
	}

	if err := json.Unmarshal([]byte(`{"root":"nothex"}`), &decoded); err == nil {
		t.Error("Unmarshal accepted a non-hex digest")
	}
}

func TestBackendNamed(t *testing.T) {
	switch Backend() {
	case "host", "zkvm", "zkvm-sp1", "zkvm-risc0":
	default:
		t.Errorf("Backend() = %q, not a known backend", Backend())
	}
}

func TestWriterMatchesSum(t *testing.T) {
	writer := NewWriter(TagContent)
	writer.Write([]byte("stream"))
	writer.Write([]byte("ed "))
	writer.Write([]byte("payload"))

	if got, want := writer.Sum(), Sum(TagContent, []byte("streamed payload")); got != want {
		t.Errorf("Writer.Sum = %s, want %s", got, want)
	}
}
