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

package literal

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	"github.com/erigontech/isoltest/common"
)

// Render prints data as a literal list. Tagged ranges are rendered according
// to their kind until the tags run out, a tag does not fit the remaining
// bytes, or a range fails its format check. Everything left is rendered
// heuristically: whole words as hex, a shorter tail as rawbytes.
func Render(data []byte, tags Tags) string {
	segments, rest := renderTagged(data, tags)
	segments = append(segments, renderHeuristic(rest)...)
	return strings.Join(segments, ", ")
}

func renderTagged(data []byte, tags Tags) (segments []string, rest []byte) {
	rest = data
	for _, tag := range tags {
		if len(rest) == 0 || tag.Length == 0 || len(rest) < tag.Length {
			break
		}
		s, err := Format(rest[:tag.Length], tag.Kind)
		if err != nil {
			break
		}
		segments = append(segments, s)
		rest = rest[tag.Length:]
	}
	return segments, rest
}

func renderHeuristic(rest []byte) []string {
	var segments []string
	for len(rest) >= WordSize {
		segments = append(segments, new(uint256.Int).SetBytes(rest[:WordSize]).Hex())
		rest = rest[WordSize:]
	}
	if len(rest) > 0 {
		segments = append(segments, renderRawBytes(rest))
	}
	return segments
}

// Format renders a single range of bytes as a literal of the given kind. It
// fails with ErrDecodeFormatMismatch if the bytes could not have been
// produced by encoding such a literal.
func Format(b []byte, kind Kind) (string, error) {
	if kind.FixedWord() && len(b) != WordSize {
		return "", mismatch(kind, "%d bytes, want %d", len(b), WordSize)
	}
	switch kind {
	case SignedDec:
		return renderSigned(new(uint256.Int).SetBytes(b)), nil
	case Dec:
		return new(uint256.Int).SetBytes(b).Dec(), nil
	case Hex, Hash:
		return new(uint256.Int).SetBytes(b).Hex(), nil
	case Bool:
		v := new(uint256.Int).SetBytes(b)
		switch {
		case v.IsZero():
			return "false", nil
		case v.IsUint64() && v.Uint64() == 1:
			return "true", nil
		}
		return "", mismatch(kind, "word %s is neither 0 nor 1", v.Hex())
	case ByteString:
		return formatByteString(b)
	case String:
		return formatAbiString(b)
	case RawBytes:
		if len(b) == 0 {
			return "", mismatch(kind, "empty range")
		}
		return renderRawBytes(b), nil
	}
	return "", mismatch(kind, "unknown kind")
}

func formatByteString(b []byte) (string, error) {
	content := b
	for i, v := range b {
		if v == 0 {
			content = b[:i]
			if !common.IsZero(b[i:]) {
				return "", mismatch(ByteString, "non-zero byte after padding at %d", i+indexNonZero(b[i:]))
			}
			break
		}
	}
	if err := checkPrintable(ByteString, content); err != nil {
		return "", err
	}
	// the rendered string has to encode back to exactly len(b) bytes
	if common.PaddedLength(len(content), WordSize) != len(b) {
		return "", mismatch(ByteString, "%d content bytes cannot fill %d bytes", len(content), len(b))
	}
	return `"` + string(content) + `"`, nil
}

func formatAbiString(b []byte) (string, error) {
	if len(b) <= 2*WordSize {
		return "", mismatch(String, "%d bytes is too short", len(b))
	}
	offset := new(uint256.Int).SetBytes(b[:WordSize])
	if !offset.IsUint64() || offset.Uint64() != WordSize {
		return "", mismatch(String, "offset word %s, want 0x20", offset.Hex())
	}
	length := new(uint256.Int).SetBytes(b[WordSize : 2*WordSize])
	body := b[2*WordSize:]
	if !length.IsUint64() || length.Uint64() > uint64(len(body)) {
		return "", mismatch(String, "declared length %s exceeds %d available bytes", length.Dec(), len(body))
	}
	n := int(length.Uint64())
	content, padding := body[:n], body[n:]
	if err := checkPrintable(String, content); err != nil {
		return "", err
	}
	if len(padding) != (WordSize-n%WordSize)%WordSize || !common.IsZero(padding) {
		return "", mismatch(String, "bad padding after %d content bytes", n)
	}
	return `string("` + string(content) + `")`, nil
}

// checkPrintable rejects bytes the lexer could not read back: control
// characters, non-ASCII and the double quote, since quoted strings have no
// escapes.
func checkPrintable(kind Kind, content []byte) error {
	for i, c := range content {
		if c < 0x20 || c > 0x7e || c == '"' {
			return mismatch(kind, "unprintable byte 0x%02x at %d", c, i)
		}
	}
	return nil
}

func indexNonZero(b []byte) int {
	for i, v := range b {
		if v != 0 {
			return i
		}
	}
	return -1
}

func renderSigned(v *uint256.Int) string {
	if v.Sign() < 0 {
		return "-" + new(uint256.Int).Neg(v).Dec()
	}
	return v.Dec()
}

func renderRawBytes(b []byte) string {
	var sb strings.Builder
	sb.WriteString(rawBytesPrefix)
	for i, c := range b {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "0x%02x", c)
	}
	sb.WriteByte(')')
	return sb.String()
}
