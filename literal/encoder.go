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

	"github.com/holiman/uint256"

	"github.com/erigontech/isoltest/common"
)

// Encode parses text and converts it into its word encoding together with one
// tag per literal.
func Encode(text string) ([]byte, Tags, error) {
	lits, err := Parse(text)
	if err != nil {
		return nil, nil, err
	}
	return EncodeLiterals(lits)
}

// MustEncode is Encode for literal lists known to be valid.
func MustEncode(text string) ([]byte, Tags) {
	data, tags, err := Encode(text)
	if err != nil {
		panic(err)
	}
	return data, tags
}

// EncodeLiterals converts already parsed literals.
func EncodeLiterals(lits []Literal) ([]byte, Tags, error) {
	var (
		data []byte
		tags = make(Tags, 0, len(lits))
		err  error
	)
	for _, lit := range lits {
		if data, tags, err = appendLiteral(data, tags, lit); err != nil {
			return nil, nil, err
		}
	}
	return data, tags, nil
}

func appendLiteral(data []byte, tags Tags, lit Literal) ([]byte, Tags, error) {
	switch l := lit.(type) {
	case *Integer:
		w := l.Value.Bytes32()
		return append(data, w[:]...), append(tags, Tag{WordSize, l.Kind()}), nil
	case *Boolean:
		var w [WordSize]byte
		if l.Value {
			w[WordSize-1] = 1
		}
		return append(data, w[:]...), append(tags, Tag{WordSize, Bool}), nil
	case *QuotedString:
		padded := common.RightPadBytes(l.Value, WordSize)
		return append(data, padded...), append(tags, Tag{len(padded), ByteString}), nil
	case *AbiString:
		offset := uint256.NewInt(WordSize).Bytes32()
		length := uint256.NewInt(uint64(len(l.Value))).Bytes32()
		padded := common.RightPadBytes(l.Value, WordSize)
		data = append(data, offset[:]...)
		data = append(data, length[:]...)
		data = append(data, padded...)
		return data, append(tags, Tag{2*WordSize + len(padded), String}), nil
	case *RawByteList:
		return append(data, l.Value...), append(tags, Tag{len(l.Value), RawBytes}), nil
	case *HashLiteral:
		nested, _, err := EncodeLiterals(l.Elems)
		if err != nil {
			return nil, nil, err
		}
		h, err := common.HashData(nested)
		if err != nil {
			return nil, nil, fmt.Errorf("hashing nested literal list: %w", err)
		}
		return append(data, h[:]...), append(tags, Tag{WordSize, Hash}), nil
	}
	return nil, nil, fmt.Errorf("%w: unsupported literal %T", ErrMalformedLiteral, lit)
}
