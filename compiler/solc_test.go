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

package compiler

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ledgerwatch/log/v3"
	"github.com/stretchr/testify/require"
)

const combined = `{"contracts":{"<stdin>:A":{"bin":"6001"},"<stdin>:B":{"bin":"60026003"},"<stdin>:I":{"bin":""}},"version":"0.8.30"}`

func TestLastContract(t *testing.T) {
	name, err := LastContract("contract A {}\n// contract in comment\ncontract B is A { function f() {} }")
	require.NoError(t, err)
	require.Equal(t, "B", name)

	name, err = LastContract("contract C { function f() public returns (uint) { return 1; } }\n// this contract returns one\n")
	require.NoError(t, err)
	require.Equal(t, "C", name)

	name, err = LastContract("/* contract X */ contract D { string s = \"contract Y\"; bytes1 c = '\\''; }\n/*\ncontract Z\n*/")
	require.NoError(t, err)
	require.Equal(t, "D", name)

	_, err = LastContract("// contract A {}\nlibrary L {}")
	require.ErrorIs(t, err, ErrNoContract)

	_, err = LastContract("library L {}")
	require.ErrorIs(t, err, ErrNoContract)
}

func TestExtractBytecode(t *testing.T) {
	code, err := ExtractBytecode([]byte(combined), "B")
	require.NoError(t, err)
	require.Equal(t, []byte{0x60, 0x02, 0x60, 0x03}, code)

	_, err = ExtractBytecode([]byte(combined), "I")
	require.ErrorIs(t, err, ErrNotCompiled)
	_, err = ExtractBytecode([]byte(combined), "C")
	require.ErrorIs(t, err, ErrNotCompiled)
	_, err = ExtractBytecode([]byte("{"), "B")
	require.Error(t, err)
}

func fakeSolc(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script compiler stub")
	}
	path := filepath.Join(t.TempDir(), "solc")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestSolcCompile(t *testing.T) {
	s := NewSolc(fakeSolc(t, "cat > /dev/null\necho '"+combined+"'\n"), log.New())
	code, err := s.Compile(context.Background(), "contract A {} contract B {}")
	require.NoError(t, err)
	require.Equal(t, []byte{0x60, 0x02, 0x60, 0x03}, code)

	s = NewSolc(fakeSolc(t, "echo 'Error: bad' >&2\nexit 1\n"), log.New())
	_, err = s.Compile(context.Background(), "contract A {}")
	require.ErrorIs(t, err, ErrCompilerFail)
	require.Contains(t, err.Error(), "Error: bad")
}
