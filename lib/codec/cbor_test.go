// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/zklogic/lib/digest"
)

// sampleInput mirrors the shape of a guest input: a variable-length key,
// a fixed digest, and an integer.
type sampleInput struct {
	PublicKey  []byte      `cbor:"public_key"`
	BinaryHash digest.Hash `cbor:"binary_hash"`
	Nonce      uint64      `cbor:"nonce"`
	Label      string      `cbor:"label,omitempty"`
}

type sampleDualMessage struct {
	Index int         `json:"index"`
	Root  digest.Hash `json:"root"`
}

func newSampleInput() sampleInput {
	return sampleInput{
		PublicKey:  []byte("public key bytes"),
		BinaryHash: digest.Sum(digest.TagContent, []byte("binary")),
		Nonce:      12345,
	}
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := newSampleInput()

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded sampleInput
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !bytes.Equal(decoded.PublicKey, original.PublicKey) ||
		decoded.BinaryHash != original.BinaryHash ||
		decoded.Nonce != original.Nonce {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	message := newSampleInput()

	first, err := Marshal(message)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(message)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestDigestEncodesAsByteString(t *testing.T) {
	hash := digest.Sum(digest.TagLeaf, []byte("x"))

	data, err := Marshal(hash)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	// Major type 2 (byte string), length 32 in the one-byte argument
	// form: 0x58 0x20, followed by the raw digest.
	want := append([]byte{0x58, 0x20}, hash[:]...)
	if !bytes.Equal(data, want) {
		t.Errorf("digest encoded as %x, want %x", data, want)
	}

	var decoded digest.Hash
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != hash {
		t.Errorf("digest roundtrip: got %s, want %s", decoded, hash)
	}
}

func TestEncoderDecoderStreamRoundtrip(t *testing.T) {
	messages := []sampleInput{newSampleInput(), newSampleInput(), newSampleInput()}
	for i := range messages {
		messages[i].Nonce = uint64(i)
	}

	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, message := range messages {
		if err := encoder.Encode(message); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for i, want := range messages {
		var got sampleInput
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode message %d: %v", i, err)
		}
		if got.Nonce != want.Nonce || got.BinaryHash != want.BinaryHash {
			t.Errorf("message %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestJSONTagFallback(t *testing.T) {
	original := sampleDualMessage{Index: 3, Root: digest.Sum(digest.TagNode, []byte("root"))}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleDualMessage
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("json-tag roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestOmitemptyRespected(t *testing.T) {
	withLabel := newSampleInput()
	withLabel.Label = "x"
	withoutLabel := newSampleInput()

	dataWith, err := Marshal(withLabel)
	if err != nil {
		t.Fatal(err)
	}
	dataWithout, err := Marshal(withoutLabel)
	if err != nil {
		t.Fatal(err)
	}

	if len(dataWithout) >= len(dataWith) {
		t.Errorf("omitempty not effective: without=%d bytes, with=%d bytes",
			len(dataWithout), len(dataWith))
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var message sampleInput
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &message); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestUnmarshalRejectsDuplicateKeys(t *testing.T) {
	// {"nonce": 1, "nonce": 2}
	data := []byte{0xa2, 0x65, 'n', 'o', 'n', 'c', 'e', 0x01, 0x65, 'n', 'o', 'n', 'c', 'e', 0x02}
	var message sampleInput
	if err := Unmarshal(data, &message); err == nil {
		t.Errorf("Unmarshal accepted duplicate map keys, decoded nonce %d", message.Nonce)
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(map[string]any{"index": 4})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"index"`) || !strings.Contains(notation, "4") {
		t.Errorf("notation %q does not describe the encoded map", notation)
	}
}

func BenchmarkMarshal(b *testing.B) {
	message := newSampleInput()

	b.ReportAllocs()
	for b.Loop() {
		Marshal(message)
	}
}
