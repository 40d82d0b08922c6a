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


// Package compiler turns test contract sources into creation bytecode.
package compiler

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/ledgerwatch/log/v3"
)

var (
	ErrNoContract   = errors.New("source defines no contract")
	ErrNotCompiled  = errors.New("contract missing from compiler output")
	ErrCompilerFail = errors.New("compiler failed")
)

//go:generate mockgen -destination=./compiler_mock.go -package=compiler . Compiler
type Compiler interface {
	// Compile returns the creation bytecode of the last contract defined in
	// source.
	Compile(ctx context.Context, source string) ([]byte, error)
}

var contractRe = regexp.MustCompile(`\bcontract\s+(\w+)`)

// LastContract returns the name of the last contract declared in source.
// Comments and string literals are ignored.
func LastContract(source string) (string, error) {
	matches := contractRe.FindAllStringSubmatch(stripNonCode(source), -1)
	if len(matches) == 0 {
		return "", ErrNoContract
	}
	return matches[len(matches)-1][1], nil
}

// stripNonCode blanks out comments and string literals, keeping newlines.
func stripNonCode(source string) string {
	var b strings.Builder
	b.Grow(len(source))
	for i := 0; i < len(source); i++ {
		c := source[i]
		switch {
		case c == '/' && i+1 < len(source) && source[i+1] == '/':
			for i < len(source) && source[i] != '\n' {
				i++
			}
			if i < len(source) {
				b.WriteByte('\n')
			}
		case c == '/' && i+1 < len(source) && source[i+1] == '*':
			end := strings.Index(source[i+2:], "*/")
			if end < 0 {
				return b.String()
			}
			b.WriteByte(' ')
			i += end + 3
		case c == '"' || c == '\'':
			i++
			for i < len(source) && source[i] != c && source[i] != '\n' {
				if source[i] == '\\' {
					i++
				}
				i++
			}
			b.WriteByte(' ')
			if i < len(source) && source[i] == '\n' {
				b.WriteByte('\n')
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

type Solc struct {
	Path   string
	Args   []string
	logger log.Logger
}

var _ Compiler = (*Solc)(nil)

func NewSolc(path string, logger log.Logger) *Solc {
	if path == "" {
		path = "solc"
	}
	return &Solc{Path: path, logger: logger}
}

func (s *Solc) Compile(ctx context.Context, source string) ([]byte, error) {
	name, err := LastContract(source)
	if err != nil {
		return nil, err
	}

	args := append([]string{"--combined-json", "bin"}, s.Args...)
	args = append(args, "-")
	cmd := exec.CommandContext(ctx, s.Path, args...)
	cmd.Stdin = strings.NewReader(source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	s.logger.Debug("compiling", "solc", s.Path, "contract", name)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %v: %s", ErrCompilerFail, err, strings.TrimSpace(stderr.String()))
	}
	return ExtractBytecode(stdout.Bytes(), name)
}

type combinedOutput struct {
	Contracts map[string]struct {
		Bin string `json:"bin"`
	} `json:"contracts"`
	Version string `json:"version"`
}

// ExtractBytecode finds contract name in solc --combined-json output. Keys
// are "<source>:<name>".
func ExtractBytecode(output []byte, name string) ([]byte, error) {
	var out combinedOutput
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(output, &out); err != nil {
		return nil, fmt.Errorf("parsing compiler output: %w", err)
	}
	for key, c := range out.Contracts {
		if key != name && !strings.HasSuffix(key, ":"+name) {
			continue
		}
		code, err := hex.DecodeString(strings.TrimPrefix(c.Bin, "0x"))
		if err != nil {
			return nil, fmt.Errorf("contract %s bytecode: %w", name, err)
		}
		if len(code) == 0 {
			return nil, fmt.Errorf("%w: %s is abstract", ErrNotCompiled, name)
		}
		return code, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotCompiled, name)
}
