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
)

// RenderChecked renders data like Render and then verifies that the result
// encodes back to data. On a violation the rendered text is still returned,
// together with a *RoundTripError.
func RenderChecked(data []byte, tags Tags) (string, error) {
	text := Render(data, tags)
	return text, ValidateRoundTrip(text, data)
}

// ValidateRoundTrip checks that text encodes to exactly data.
func ValidateRoundTrip(text string, data []byte) error {
	got, _, err := Encode(text)
	if err != nil {
		return &RoundTripError{Text: text, Want: data, Cause: err}
	}
	if !bytes.Equal(got, data) {
		return &RoundTripError{Text: text, Want: data, Got: got}
	}
	return nil
}

// Canonical re-renders text with its own tags, normalising whitespace and
// number formatting. Hash literals come back as plain hex.
func Canonical(text string) (string, error) {
	data, tags, err := Encode(text)
	if err != nil {
		return "", err
	}
	return RenderChecked(data, tags)
}

// Equal reports whether two literal lists have the same encoding.
func Equal(a, b string) (bool, error) {
	da, _, err := Encode(a)
	if err != nil {
		return false, err
	}
	db, _, err := Encode(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(da, db), nil
}
