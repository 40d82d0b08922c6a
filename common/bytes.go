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

package common

// PaddedLength rounds n up to the next multiple of the word size.
func PaddedLength(n, word int) int {
	return (n + word - 1) / word * word
}

// RightPadBytes zero-pads b on the right up to the next multiple of word.
func RightPadBytes(b []byte, word int) []byte {
	l := PaddedLength(len(b), word)
	if l == len(b) {
		return b
	}
	padded := make([]byte, l)
	copy(padded, b)
	return padded
}

// IsZero reports whether every byte of b is zero.
func IsZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
