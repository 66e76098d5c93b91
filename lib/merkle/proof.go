// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package merkle

import (
	"fmt"

	"github.com/bureau-foundation/zklogic/lib/codec"
	"github.com/bureau-foundation/zklogic/lib/digest"
)

// Side is the position the path node occupied within its pair at one
// level of the tree. The sibling is on the other side. The zero value
// is invalid, so a step decoded without a side never verifies.
type Side uint8

const (
	// Left means the path node is the left child: parent = N(node, sibling).
	Left Side = 1
	// Right means the path node is the right child: parent = N(sibling, node).
	Right Side = 2
)

// String returns "left", "right", or "invalid(N)".
func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("invalid(%d)", uint8(s))
	}
}

// MarshalText encodes the side as "left" or "right" for JSON.
func (s Side) MarshalText() ([]byte, error) {
	if s != Left && s != Right {
		return nil, fmt.Errorf("%w: side %s", ErrProofInvalid, s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText parses "left" or "right".
func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "left":
		*s = Left
	case "right":
		*s = Right
	default:
		return fmt.Errorf("%w: unknown side %q", ErrProofInvalid, text)
	}
	return nil
}

// Step is one level of an inclusion proof.
type Step struct {
	Sibling digest.Hash `json:"sibling"`
	Side    Side        `json:"side"`
}

// Proof is an inclusion proof for one leaf. It is only meaningful
// together with the leaf value and the root of a tree of exactly
// LeafCount leaves.
type Proof struct {
	Index     int    `json:"index"`
	LeafCount int    `json:"leaf_count"`
	Steps     []Step `json:"steps"`
}

// Verify recomputes the root from leaf along the proof's steps and
// compares it to root in constant time. The steps must match the
// shape of a tree of LeafCount leaves exactly: a truncated, extended,
// reordered, or side-flipped proof is rejected. Every failure returns
// ErrProofInvalid.
func (p Proof) Verify(leaf, root digest.Hash) error {
	if p.LeafCount < 1 || p.Index < 0 || p.Index >= p.LeafCount {
		return ErrProofInvalid
	}

	current := leaf
	consumed := 0
	for count, position := p.LeafCount, p.Index; count > 1; count, position = count/2+count%2, position/2 {
		if promoted(count, position) {
			continue
		}
		if consumed >= len(p.Steps) {
			return ErrProofInvalid
		}
		step := p.Steps[consumed]
		consumed++
		if step.Side != sideAt(position) {
			return ErrProofInvalid
		}
		if step.Side == Left {
			current = HashNode(current, step.Sibling)
		} else {
			current = HashNode(step.Sibling, current)
		}
	}
	if consumed != len(p.Steps) {
		return ErrProofInvalid
	}

	if !digest.Equal(current, root) {
		return ErrProofInvalid
	}
	return nil
}

// proofWire is the CBOR layout of a Proof. Keeping it separate from
// Proof stops codec from recursing into MarshalBinary.
type proofWire struct {
	Index     int        `cbor:"index"`
	LeafCount int        `cbor:"leaf_count"`
	Steps     []stepWire `cbor:"steps"`
}

// stepWire carries the sibling as a plain byte string so its length
// can be checked on decode.
type stepWire struct {
	Sibling []byte `cbor:"sibling"`
	Side    Side   `cbor:"side"`
}

// MarshalBinary encodes the proof as deterministic CBOR.
func (p Proof) MarshalBinary() ([]byte, error) {
	wire := proofWire{
		Index:     p.Index,
		LeafCount: p.LeafCount,
		Steps:     make([]stepWire, len(p.Steps)),
	}
	for i, step := range p.Steps {
		wire.Steps[i] = stepWire{Sibling: step.Sibling[:], Side: step.Side}
	}
	data, err := codec.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encoding merkle proof: %w", err)
	}
	return data, nil
}

// UnmarshalBinary decodes a CBOR proof. Structurally impossible proofs
// (bad side values, index outside the leaf count, or a step count that
// does not match the tree shape) are rejected with ErrProofInvalid
// before any hashing happens.
func (p *Proof) UnmarshalBinary(data []byte) error {
	var wire proofWire
	if err := codec.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decoding merkle proof: %w", err)
	}

	decoded := Proof{
		Index:     wire.Index,
		LeafCount: wire.LeafCount,
		Steps:     make([]Step, len(wire.Steps)),
	}
	for i, step := range wire.Steps {
		if step.Side != Left && step.Side != Right {
			return fmt.Errorf("%w: step %d has side %s", ErrProofInvalid, i, step.Side)
		}
		if len(step.Sibling) != digest.Size {
			return fmt.Errorf("%w: step %d sibling is %d bytes", ErrProofInvalid, i, len(step.Sibling))
		}
		decoded.Steps[i].Side = step.Side
		copy(decoded.Steps[i].Sibling[:], step.Sibling)
	}
	if err := decoded.checkShape(); err != nil {
		return err
	}

	*p = decoded
	return nil
}

// checkShape validates the leaf count, index, and step count without
// hashing.
func (p Proof) checkShape() error {
	if p.LeafCount < 1 {
		return fmt.Errorf("%w: leaf count %d", ErrProofInvalid, p.LeafCount)
	}
	if p.Index < 0 || p.Index >= p.LeafCount {
		return fmt.Errorf("%w: index %d outside %d leaves", ErrProofInvalid, p.Index, p.LeafCount)
	}
	if want := PathLength(p.LeafCount, p.Index); len(p.Steps) != want {
		return fmt.Errorf("%w: %d steps, tree shape requires %d", ErrProofInvalid, len(p.Steps), want)
	}
	return nil
}
