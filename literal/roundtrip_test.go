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
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func nonEmpty(s string) bool { return s != "" }

// literalGen generates literals in the form Render prints them.
func literalGen() gopter.Gen {
	return gen.OneGenOf(
		gen.UInt64().Map(func(v uint64) string { return strconv.FormatUint(v, 10) }),
		gen.Int64Range(math.MinInt64, -1).Map(func(v int64) string { return strconv.FormatInt(v, 10) }),
		gen.UInt64().Map(func(v uint64) string { return fmt.Sprintf("0x%x", v) }),
		gen.Bool().Map(func(v bool) string { return strconv.FormatBool(v) }),
		gen.AlphaString().SuchThat(nonEmpty).Map(func(s string) string { return `"` + s + `"` }),
		gen.AlphaString().SuchThat(nonEmpty).Map(func(s string) string { return `string("` + s + `")` }),
		gen.SliceOf(gen.UInt8()).SuchThat(func(b []uint8) bool { return len(b) > 0 }).Map(func(b []uint8) string {
			return renderRawBytes(b)
		}),
	)
}

func TestRoundTripLaw(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("render(encode(L)) == L for canonical L", prop.ForAll(
		func(items []string) bool {
			text := strings.Join(items, ", ")
			data, tags, err := Encode(text)
			if err != nil {
				return false
			}
			out, err := RenderChecked(data, tags)
			return err == nil && out == text
		},
		gen.SliceOf(literalGen()).SuchThat(func(items []string) bool { return len(items) > 0 }),
	))

	properties.Property("whitespace around commas is normalised", prop.ForAll(
		func(items []string) bool {
			canonical, err := Canonical(strings.Join(items, " ,\t"))
			return err == nil && canonical == strings.Join(items, ", ")
		},
		gen.SliceOf(literalGen()).SuchThat(func(items []string) bool { return len(items) > 0 }),
	))

	properties.Property("heuristic suffix is whole words then at most one rawbytes", prop.ForAll(
		func(extra []uint8) bool {
			data, tags := MustEncode("1")
			out, err := RenderChecked(append(data, extra...), tags)
			if err != nil || !strings.HasPrefix(out, "1") {
				return false
			}
			words, tail := len(extra)/WordSize, extra[len(extra)/WordSize*WordSize:]
			head := out
			if len(tail) > 0 {
				raw := ", " + renderRawBytes(tail)
				if !strings.HasSuffix(out, raw) {
					return false
				}
				head = strings.TrimSuffix(out, raw)
			}
			return strings.Count(head, ", 0x") == words && !strings.Contains(head, "rawbytes")
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}

func TestValidateRoundTrip(t *testing.T) {
	data, _ := MustEncode("1, 2")
	require.NoError(t, ValidateRoundTrip("1, 0x2", data))

	err := ValidateRoundTrip("1", data)
	require.ErrorIs(t, err, ErrRoundTripViolation)
	var rte *RoundTripError
	require.ErrorAs(t, err, &rte)
	require.Equal(t, data, rte.Want)
	require.Len(t, rte.Got, 32)

	err = ValidateRoundTrip("1, nope", data)
	require.ErrorIs(t, err, ErrRoundTripViolation)
	require.ErrorIs(t, err, ErrMalformedLiteral)
}

func TestEqual(t *testing.T) {
	eq, err := Equal("1,2", " 0x1 ,  2")
	require.NoError(t, err)
	require.True(t, eq)

	eq, err = Equal("true", "1")
	require.NoError(t, err)
	require.True(t, eq)

	eq, err = Equal(`"a"`, `string("a")`)
	require.NoError(t, err)
	require.False(t, eq)

	_, err = Equal("1", "x")
	require.ErrorIs(t, err, ErrMalformedLiteral)
}

func TestCanonical(t *testing.T) {
	out, err := Canonical(" -0x1 ,rawbytes( 1 ,2 ), keccak256()")
	require.NoError(t, err)
	require.Equal(t, "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff, rawbytes(0x01, 0x02), "+
		"0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", out)
}
