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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderScenarios(t *testing.T) {
	for _, in := range []string{
		"42",
		"-1",
		"-5",
		"5",
		"true, false",
		"rawbytes(0x01, 0x02, 0x03)",
		`string("hi")`,
		`"hello world"`,
		"0x2a",
		"-57896044618658097711785492504343953926634992332820282019728792003956564819968",
		`1, rawbytes(0xff), "x", string("0123456789012345678901234567890123456789"), false`,
	} {
		t.Run(in, func(t *testing.T) {
			data, tags := MustEncode(in)
			out, err := RenderChecked(data, tags)
			require.NoError(t, err)
			require.Equal(t, in, out)
		})
	}
}

func TestRenderHash(t *testing.T) {
	data, tags := MustEncode("keccak256(1)")
	out, err := RenderChecked(data, tags)
	require.NoError(t, err)
	require.Equal(t, "0xb10e2d527612073b26eecdfd717e6a320cf44b4afac2b0732d9fcbe2b7fa0cf6", out)
}

func TestRenderWithExpectedTags(t *testing.T) {
	// the actual bytes are rendered the way the expected literals look
	_, tags := MustEncode(`-3, 0x10, true`)
	data, _ := MustEncode(`7, 255, false`)
	require.Equal(t, "7, 0xff, false", Render(data, tags))
}

func TestRenderHeuristicSuffix(t *testing.T) {
	_, tags := MustEncode("1")
	data := concat(word(1), word(2), word(3), []byte{4, 5, 6})
	out, err := RenderChecked(data, tags)
	require.NoError(t, err)
	require.Equal(t, "1, 0x2, 0x3, rawbytes(0x04, 0x05, 0x06)", out)
}

func TestRenderHeuristicNoTags(t *testing.T) {
	require.Equal(t, "", Render(nil, nil))
	require.Equal(t, "0x0", Render(word(), nil))
	require.Equal(t, "rawbytes(0xab)", Render([]byte{0xab}, nil))
}

func TestRenderTagLongerThanData(t *testing.T) {
	_, tags := MustEncode("1")
	require.Equal(t, "rawbytes(0x01, 0x02, 0x03)", Render([]byte{1, 2, 3}, tags))
}

func TestRenderZeroLengthTagStops(t *testing.T) {
	_, tags := MustEncode(`"", 1`)
	require.Equal(t, Tags{{0, ByteString}, {32, Dec}}, tags)
	require.Equal(t, "0x1", Render(word(1), tags))
}

func TestRenderBoolMismatch(t *testing.T) {
	_, tags := MustEncode("true, true")
	// a failing tag stops tag driven rendering even if later tags would fit
	out, err := RenderChecked(concat(word(2), word(1)), tags)
	require.NoError(t, err)
	require.Equal(t, "0x2, 0x1", out)
}

func TestRenderByteStringPadding(t *testing.T) {
	_, tags := MustEncode(`"ab"`)
	data := word()
	copy(data, "ab")
	require.Equal(t, `"ab"`, Render(data, tags))

	data[31] = 1
	out, err := RenderChecked(data, tags)
	require.NoError(t, err)
	require.Equal(t, "0x6162"+strings.Repeat("00", 29)+"01", out)
}

func TestRenderByteStringRejects(t *testing.T) {
	_, tags := MustEncode(`"ab"`)

	// all zero: `""` would not encode back to a word
	require.Equal(t, "0x0", Render(word(), tags))

	unprintable := word()
	copy(unprintable, "a\x01")
	require.True(t, strings.HasPrefix(Render(unprintable, tags), "0x6101"))

	quote := word()
	copy(quote, `a"`)
	require.True(t, strings.HasPrefix(Render(quote, tags), "0x6122"))
}

func TestRenderAbiStringRejects(t *testing.T) {
	_, tags := MustEncode(`string("hi")`)
	good, _ := MustEncode(`string("hi")`)

	badOffset := bytes.Clone(good)
	badOffset[31] = 0x40
	require.Equal(t, "0x40, 0x2, 0x6869"+strings.Repeat("00", 30), Render(badOffset, tags))

	tooLong := bytes.Clone(good)
	tooLong[63] = 33
	require.True(t, strings.HasPrefix(Render(tooLong, tags), "0x20, 0x21, "))

	badPadding := bytes.Clone(good)
	badPadding[95] = 1
	require.True(t, strings.HasPrefix(Render(badPadding, tags), "0x20, 0x2, "))

	// an empty ABI string is only 64 bytes and never chosen by the decoder
	data, tags := MustEncode(`string("")`)
	out, err := RenderChecked(data, tags)
	require.NoError(t, err)
	require.Equal(t, "0x20, 0x0", out)
}

func TestRenderSigned(t *testing.T) {
	_, tags := MustEncode("-1")
	require.Equal(t, "5", Render(word(5), tags))
	require.Equal(t, "-1", Render(bytes.Repeat([]byte{0xff}, 32), tags))

	_, tags = MustEncode("1")
	require.Equal(t, "115792089237316195423570985008687907853269984665640564039457584007913129639935",
		Render(bytes.Repeat([]byte{0xff}, 32), tags))
}

func TestFormatMismatchErrors(t *testing.T) {
	_, err := Format(word(2), Bool)
	require.ErrorIs(t, err, ErrDecodeFormatMismatch)

	_, err = Format([]byte{1}, Dec)
	require.ErrorIs(t, err, ErrDecodeFormatMismatch)

	_, err = Format(nil, RawBytes)
	require.ErrorIs(t, err, ErrDecodeFormatMismatch)

	s, err := Format([]byte{0, 0x10}, RawBytes)
	require.NoError(t, err)
	require.Equal(t, "rawbytes(0x00, 0x10)", s)
}
