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

package dir

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestListFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	root := "/tests"
	for _, name := range []string{"a.sol", "b.txt", ".hidden.sol", "sub/c.sol"} {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(root, name), []byte("x"), 0644))
	}

	files, err := ListFiles(fs, root, ".sol")
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "a.sol")}, files)

	files, err = ListFiles(fs, root)
	require.NoError(t, err)
	require.Len(t, files, 2)

	entries, err := ReadDir(fs, root)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.True(t, IsDir(fs, filepath.Join(root, "sub")))
}

func TestExistAndWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	ok, err := Exist(fs, "/x/y")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, fs.MkdirAll("/x", 0755))
	ok, err = FileExist(fs, "/x")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, WriteFileWithFsync(fs, "/x/y", []byte("long content"), 0644))
	require.NoError(t, WriteFileWithFsync(fs, "/x/y", []byte("short"), 0644))
	ok, err = FileExist(fs, "/x/y")
	require.NoError(t, err)
	require.True(t, ok)

	data, err := afero.ReadFile(fs, "/x/y")
	require.NoError(t, err)
	require.Equal(t, "short", string(data))
}
