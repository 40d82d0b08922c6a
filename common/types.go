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

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Lengths of hashes and function selectors in bytes.
const (
	HashLength     = 32
	SelectorLength = 4
)

// Hash represents the 32 byte Keccak256 hash of arbitrary data.
type Hash [HashLength]byte

// Bytes gets the byte representation of the underlying hash.
func (h Hash) Bytes() []byte { return h[:] }

// Hex converts a hash to a hex string.
func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

// String implements the stringer interface and is used also by the logger when
// doing full logging into a file.
func (h Hash) String() string { return h.Hex() }

// TerminalString implements log.TerminalStringer, formatting a string for console
// output during logging.
func (h Hash) TerminalString() string {
	return fmt.Sprintf("%x..%x", h[:3], h[29:])
}

// Selector is the first four bytes of the keccak256 hash of a canonical
// function signature, e.g. "transfer(address,uint256)".
type Selector [SelectorLength]byte

// FunctionSelector derives the call selector of signature. Whitespace is not
// part of a canonical signature and is stripped.
func FunctionSelector(signature string) Selector {
	signature = strings.Join(strings.Fields(signature), "")
	var s Selector
	copy(s[:], Keccak256([]byte(signature)).Bytes())
	return s
}

// CallData prefixes args with the selector of signature.
func CallData(signature string, args []byte) []byte {
	sel := FunctionSelector(signature)
	data := make([]byte, 0, SelectorLength+len(args))
	data = append(data, sel[:]...)
	return append(data, args...)
}

func (s Selector) Hex() string { return "0x" + hex.EncodeToString(s[:]) }
