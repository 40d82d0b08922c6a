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

package literal_test

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/isoltest/literal"
)

// FuzzEncodeRender: anything that encodes renders back to the same bytes
// with its own tags.
func FuzzEncodeRender(f *testing.F) {
	seeds := []string{
		"1, -2, 0x3",
		"true, false",
		`"abc", string("def")`,
		"rawbytes(0x00, 0xff)",
		`keccak256(1, "x", keccak256(rawbytes(1)))`,
		`"a` + "\x00" + `b"`,
		`"ü"`,
		`string("` + "\x7f" + `")`,
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, text string) {
		if len(text) > 1<<12 {
			return
		}
		data, tags, err := literal.Encode(text)
		if err != nil {
			return
		}
		require.Equal(t, len(data), tags.Size())
		_, err = literal.RenderChecked(data, tags)
		require.NoError(t, err)
	})
}

// Foreign tags must never produce text that fails to encode back.
func TestRenderArbitraryTags(t *testing.T) {
	dataFuzzer := fuzz.New().NilChance(0).NumElements(0, 5*literal.WordSize)
	tagFuzzer := fuzz.New().NilChance(0).NumElements(0, 6).Funcs(
		func(tag *literal.Tag, c fuzz.Continue) {
			tag.Kind = literal.Kind(c.Intn(8))
			if tag.Kind.FixedWord() && c.RandBool() {
				tag.Length = literal.WordSize
				return
			}
			tag.Length = c.Intn(4 * literal.WordSize)
		},
	)
	for i := 0; i < 2000; i++ {
		var (
			data []byte
			tags literal.Tags
		)
		dataFuzzer.Fuzz(&data)
		tagFuzzer.Fuzz(&tags)
		out, err := literal.RenderChecked(data, tags)
		require.NoError(t, err, "data %x tags %v rendered %q", data, tags, out)
	}
}

// Bytes produced by encoding random expectations rendered with the tags of
// other random expectations.
func TestRenderForeignEncodings(t *testing.T) {
	f := fuzz.New()
	pick := func() string {
		var n uint8
		f.Fuzz(&n)
		switch n % 6 {
		case 0:
			return "-7"
		case 1:
			return "true"
		case 2:
			return `"hello"`
		case 3:
			return `string("hello")`
		case 4:
			return "rawbytes(1, 2, 3)"
		}
		return "0x1234"
	}
	for i := 0; i < 500; i++ {
		want := pick() + ", " + pick()
		got := pick() + ", " + pick() + ", " + pick()
		_, tags := literal.MustEncode(want)
		data, _ := literal.MustEncode(got)
		_, err := literal.RenderChecked(data, tags)
		require.NoError(t, err, "rendering %q with tags of %q", got, want)
	}
}
