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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseKinds(t *testing.T) {
	tests := []struct {
		in    string
		kinds []Kind
	}{
		{"", nil},
		{"   ", nil},
		{"42", []Kind{Dec}},
		{"-1", []Kind{SignedDec}},
		{"0x2a", []Kind{Hex}},
		{"-0x2a", []Kind{Hex}},
		{"true, false", []Kind{Bool, Bool}},
		{`"abc"`, []Kind{ByteString}},
		{`string("abc")`, []Kind{String}},
		{"rawbytes(0x01, 2, 0x03)", []Kind{RawBytes}},
		{"keccak256(1, keccak256(2))", []Kind{Hash}},
		{` 1 ,"x",  string("y") , rawbytes(1)`, []Kind{Dec, ByteString, String, RawBytes}},
		{"1,", []Kind{Dec}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lits, err := Parse(tt.in)
			require.NoError(t, err)
			require.Len(t, lits, len(tt.kinds))
			for i, l := range lits {
				require.Equal(t, tt.kinds[i], l.Kind(), "literal %d", i)
			}
		})
	}
}

func TestParseValues(t *testing.T) {
	lits, err := Parse(`-5, "a b", rawbytes(0x01, 255), keccak256("x", true)`)
	require.NoError(t, err)
	require.Len(t, lits, 4)

	i := lits[0].(*Integer)
	require.True(t, i.Negative)
	require.Equal(t, "-5", i.String())

	require.Equal(t, []byte("a b"), lits[1].(*QuotedString).Value)
	require.Equal(t, []byte{0x01, 0xff}, lits[2].(*RawByteList).Value)

	h := lits[3].(*HashLiteral)
	require.Len(t, h.Elems, 2)
	require.Equal(t, `keccak256("x", true)`, h.String())
}

func TestParseNestedParentheses(t *testing.T) {
	lits, err := Parse(`keccak256(keccak256(rawbytes(1, 2)), ")(", string("(")), 7`)
	require.NoError(t, err)
	require.Len(t, lits, 2)
	h := lits[0].(*HashLiteral)
	require.Len(t, h.Elems, 3)
	require.Equal(t, Hash, h.Elems[0].Kind())
	require.Equal(t, []byte(")("), h.Elems[1].(*QuotedString).Value)
	require.Equal(t, "7", lits[1].String())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in  string
		err error
	}{
		{"abc", ErrMalformedLiteral},
		{"True", ErrMalformedLiteral},
		{"1 2", ErrMalformedLiteral},
		{"-x", ErrMalformedLiteral},
		{"truex", ErrMalformedLiteral},
		{"string(abc)", ErrMalformedLiteral},
		{`"abc`, ErrUnexpectedEnd},
		{`string("abc"`, ErrUnexpectedEnd},
		{`string("abc`, ErrUnexpectedEnd},
		{"string(", ErrUnexpectedEnd},
		{"keccak256(1", ErrUnexpectedEnd},
		{"rawbytes(0x01", ErrUnexpectedEnd},
		{"rawbytes(0x01,", ErrUnexpectedEnd},
		{"rawbytes(0x01, ", ErrUnexpectedEnd},
		{"rawbytes(", ErrUnexpectedEnd},
		{"rawbytes(0x01,)", ErrInvalidNumericLiteral},
		{"rawbytes()", ErrInvalidNumericLiteral},
		{"rawbytes(0x100)", ErrInvalidNumericLiteral},
		{"rawbytes(-1)", ErrInvalidNumericLiteral},
		{"12a", ErrInvalidNumericLiteral},
		{"0x", ErrInvalidNumericLiteral},
		{"0xzz", ErrInvalidNumericLiteral},
		{"1-2", ErrInvalidNumericLiteral},
		{"115792089237316195423570985008687907853269984665640564039457584007913129639936", ErrInvalidNumericLiteral},
		{"-115792089237316195423570985008687907853269984665640564039457584007913129639935", ErrInvalidNumericLiteral},
		{"-57896044618658097711785492504343953926634992332820282019728792003956564819969", ErrInvalidNumericLiteral},
		{"-0x8000000000000000000000000000000000000000000000000000000000000001", ErrInvalidNumericLiteral},
		{"keccak256(foo)", ErrMalformedLiteral},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lits, err := Parse(tt.in)
			require.Nil(t, lits)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, err := Parse("1, foo")
	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	require.Equal(t, 3, se.Pos)

	_, err = Parse("1, keccak256(2, x)")
	require.True(t, errors.As(err, &se))
	require.Equal(t, 16, se.Pos)
}

func TestParseMaxWord(t *testing.T) {
	lits, err := Parse("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	require.NoError(t, err)
	require.Equal(t, "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", lits[0].(*Integer).Value.Hex())
}

func TestParseSignedBounds(t *testing.T) {
	lits, err := Parse("-57896044618658097711785492504343953926634992332820282019728792003956564819968, -0x8000000000000000000000000000000000000000000000000000000000000000, 007")
	require.NoError(t, err)
	require.Equal(t, "0x8000000000000000000000000000000000000000000000000000000000000000", lits[0].(*Integer).Value.Hex())
	require.Equal(t, lits[0].(*Integer).Value, lits[1].(*Integer).Value)
	require.Equal(t, uint64(7), lits[2].(*Integer).Value.Uint64())

	_, err = RenderChecked(MustEncode("-57896044618658097711785492504343953926634992332820282019728792003956564819968"))
	require.NoError(t, err)
}
