// Copyright 2025 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// Package literal converts between the textual literal lists used in semantic
// test expectations and the 32-byte word encoding of the EVM calling
// convention.
//
// Encoding is driven by the syntax of each literal and yields one Tag per
// literal. Decoding has no type information of its own: it renders bytes
// using a tag list obtained by encoding some other, expected, literal list and
// falls back to word-wise hex for anything the tags cannot describe.
package literal

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// WordSize is the size of a single calling convention word.
const WordSize = 32

// Kind describes how a tagged byte range is rendered back to text.
type Kind uint8

const (
	SignedDec Kind = iota
	Dec
	Hex
	Hash
	Bool
	ByteString
	String
	RawBytes
)

var kindNames = [...]string{
	SignedDec:  "SignedDec",
	Dec:        "Dec",
	Hex:        "Hex",
	Hash:       "Hash",
	Bool:       "Bool",
	ByteString: "ByteString",
	String:     "String",
	RawBytes:   "RawBytes",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// FixedWord reports whether every range of this kind is exactly one word.
func (k Kind) FixedWord() bool {
	switch k {
	case SignedDec, Dec, Hex, Hash, Bool:
		return true
	}
	return false
}

// Tag pairs the length of an encoded byte range with the kind that produced it.
type Tag struct {
	Length int
	Kind   Kind
}

func (t Tag) String() string { return fmt.Sprintf("(%d, %s)", t.Length, t.Kind) }

// Tags is produced once per literal list, in literal order, and is never
// mutated afterwards.
type Tags []Tag

// Size is the number of bytes the tagged literals occupy.
func (ts Tags) Size() int {
	n := 0
	for _, t := range ts {
		n += t.Length
	}
	return n
}

// Literal is one parsed token of a literal list.
type Literal interface {
	Kind() Kind
	fmt.Stringer
}

// Integer is a signed, unsigned or hex integer. Value already holds the
// two's complement form of negative numbers.
type Integer struct {
	Value    uint256.Int
	Negative bool
	IsHex    bool
}

func (i *Integer) Kind() Kind {
	switch {
	case i.IsHex:
		return Hex
	case i.Negative:
		return SignedDec
	}
	return Dec
}

func (i *Integer) String() string {
	switch i.Kind() {
	case Hex:
		return i.Value.Hex()
	case SignedDec:
		return renderSigned(&i.Value)
	}
	return i.Value.Dec()
}

type Boolean struct {
	Value bool
}

func (b *Boolean) Kind() Kind { return Bool }

func (b *Boolean) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// QuotedString is laid out as its raw bytes right-padded to a word boundary.
type QuotedString struct {
	Value []byte
}

func (s *QuotedString) Kind() Kind     { return ByteString }
func (s *QuotedString) String() string { return `"` + string(s.Value) + `"` }

// AbiString is laid out as an ABI dynamic string: offset word, length word and
// padded content.
type AbiString struct {
	Value []byte
}

func (s *AbiString) Kind() Kind     { return String }
func (s *AbiString) String() string { return `string("` + string(s.Value) + `")` }

// RawByteList is a sequence of single unpadded bytes.
type RawByteList struct {
	Value []byte
}

func (r *RawByteList) Kind() Kind     { return RawBytes }
func (r *RawByteList) String() string { return renderRawBytes(r.Value) }

// HashLiteral is the keccak256 hash of the encoding of a nested literal list.
type HashLiteral struct {
	Elems []Literal
}

func (h *HashLiteral) Kind() Kind { return Hash }

func (h *HashLiteral) String() string {
	return "keccak256(" + Join(h.Elems) + ")"
}

// Join prints a literal list in canonical form.
func Join(lits []Literal) string {
	var sb strings.Builder
	for i, l := range lits {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(l.String())
	}
	return sb.String()
}
