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

package runner

import (
	"bufio"
	"io"
	"os"

	"github.com/logrusorgru/aurora/v4"
	"golang.org/x/term"
)

type formatter struct {
	au *aurora.Aurora
}

func newFormatter(color bool) formatter {
	return formatter{au: aurora.New(aurora.WithColors(color))}
}

func (f formatter) bold(s string) string { return f.au.Bold(s).String() }

func (f formatter) boldRed(s string) string { return f.au.Bold(f.au.Red(s)).String() }

func (f formatter) boldGreen(s string) string { return f.au.Bold(f.au.Green(s)).String() }

func (f formatter) boldCyan(s string) string { return f.au.Bold(f.au.Cyan(s)).String() }

func (f formatter) boldYellow(s string) string { return f.au.Bold(f.au.Yellow(s)).String() }

// Input delivers single key presses for the interactive prompt.
type Input interface {
	ReadChar() (byte, error)
}

// TerminalInput reads one key at a time from a terminal in raw mode, or
// plain bytes when the file is not a terminal.
type TerminalInput struct {
	f *os.File
	r *bufio.Reader
}

func NewTerminalInput(f *os.File) *TerminalInput {
	return &TerminalInput{f: f, r: bufio.NewReader(f)}
}

func (in *TerminalInput) ReadChar() (byte, error) {
	fd := int(in.f.Fd())
	if !term.IsTerminal(fd) {
		return in.r.ReadByte()
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return in.r.ReadByte()
	}
	defer term.Restore(fd, state) //nolint:errcheck

	var b [1]byte
	if _, err := io.ReadFull(in.f, b[:]); err != nil {
		return 0, err
	}
	// ctrl-c and ctrl-d are swallowed by raw mode
	if b[0] == 3 || b[0] == 4 {
		return 'q', nil
	}
	return b[0], nil
}
