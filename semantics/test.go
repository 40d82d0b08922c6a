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


// Package semantics models semantic test files: a contract source followed
// by a list of calls and their expected results.
//
//	contract C { function f(uint a) public returns (uint) { return a; } }
//	// ----
//	// f(uint256): 1
//	// -> 1
//	// g()[100]
//	// REVERT
package semantics

import (
	"bufio"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/holiman/uint256"
	"github.com/spf13/afero"

	"github.com/erigontech/isoltest/common/dir"
	"github.com/erigontech/isoltest/literal"
)

// Delimiter separates the contract source from the expectations.
const Delimiter = "// ----"

var ErrInvalidExpectation = errors.New("invalid test expectation")

type ExpectationError struct {
	Line int
	Msg  string
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("%v at line %d: %s", ErrInvalidExpectation, e.Line, e.Msg)
}

func (e *ExpectationError) Is(target error) bool { return target == ErrInvalidExpectation }

// FunctionCall is one call of a test together with its result. Result is a
// literal list and is meaningless when Reverted is set.
type FunctionCall struct {
	Signature string
	Arguments string
	// Value is the wei amount sent along, nil if none.
	Value    *uint256.Int
	Result   string
	Reverted bool
	// Line is the 1-based line of the call in the test file, 0 if unknown.
	Line int
}

type Test struct {
	Path         string
	Source       string
	Expectations []FunctionCall
	// Render turns obtained return data into a literal list, checking that
	// the text encodes back to the data. Nil means literal.RenderChecked.
	Render func(data []byte, tags literal.Tags) (string, error)

	results    []FunctionCall
	violations []error
}

// Load reads and parses the test file at path.
func Load(fs afero.Fs, path string) (*Test, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot open test contract %q: %w", path, err)
	}
	t, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t.Path = path
	return t, nil
}

func Parse(text string) (*Test, error) {
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var (
		source strings.Builder
		lineNo int
	)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.HasPrefix(line, Delimiter) {
			break
		}
		source.WriteString(line)
		source.WriteByte('\n')
	}

	t := &Test{Source: source.String()}
	for sc.Scan() {
		lineNo++
		rest := trimPrefix(sc.Text())
		if rest == "" {
			continue
		}
		call, err := parseCall(rest, lineNo)
		if err != nil {
			return nil, err
		}
		if !sc.Scan() {
			return nil, &ExpectationError{Line: lineNo, Msg: "no result specified"}
		}
		lineNo++
		if err := parseResult(trimPrefix(sc.Text()), lineNo, &call); err != nil {
			return nil, err
		}
		t.Expectations = append(t.Expectations, call)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// trimPrefix drops the comment slashes and the whitespace after them.
func trimPrefix(line string) string {
	line = strings.TrimLeft(line, "/")
	return strings.TrimLeft(line, " \t")
}

func parseCall(s string, line int) (FunctionCall, error) {
	call := FunctionCall{Line: line}

	end, depth := -1, 0
	for i := 0; i < len(s) && end < 0; i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth <= 0 {
				end = i + 1
			}
		}
	}
	if end < 0 {
		return call, &ExpectationError{Line: line, Msg: `expected ")"`}
	}
	call.Signature = s[:end]
	s = s[end:]

	if strings.HasPrefix(s, "[") {
		closing := strings.IndexByte(s, ']')
		if closing < 0 {
			return call, &ExpectationError{Line: line, Msg: `expected "]"`}
		}
		value, err := uint256.FromDecimal(strings.TrimSpace(s[1:closing]))
		if err != nil {
			return call, &ExpectationError{Line: line, Msg: fmt.Sprintf("invalid value %q: %v", s[1:closing], err)}
		}
		call.Value = value
		s = s[closing+1:]
	}

	s = strings.TrimLeft(s, " \t")
	if s != "" {
		if s[0] != ':' {
			return call, &ExpectationError{Line: line, Msg: `expected ":"`}
		}
		call.Arguments = strings.TrimSpace(s[1:])
	}
	return call, nil
}

func parseResult(s string, line int, call *FunctionCall) error {
	switch {
	case strings.HasPrefix(s, "->"):
		call.Result = strings.TrimSpace(s[2:])
	case strings.HasPrefix(s, "REVERT"):
		call.Reverted = true
	default:
		return &ExpectationError{Line: line, Msg: `expected "->" or "REVERT"`}
	}
	return nil
}

// FormatCalls prints calls in test file syntax, each line starting with
// prefix.
func FormatCalls(calls []FunctionCall, prefix string) string {
	var b strings.Builder
	for _, call := range calls {
		b.WriteString(prefix)
		b.WriteString(call.Signature)
		if call.Value != nil && !call.Value.IsZero() {
			b.WriteString("[")
			b.WriteString(call.Value.Dec())
			b.WriteString("]")
		}
		if call.Arguments != "" {
			b.WriteString(": ")
			b.WriteString(call.Arguments)
		}
		b.WriteString("\n")
		b.WriteString(prefix)
		switch {
		case call.Reverted:
			b.WriteString("REVERT")
		case call.Result == "":
			b.WriteString("->")
		default:
			b.WriteString("-> ")
			b.WriteString(call.Result)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Results returns the obtained calls of the last Run.
func (t *Test) Results() []FunctionCall { return t.results }

// Violations returns the round-trip violations of the last Run.
func (t *Test) Violations() []error { return t.violations }

// Format renders the whole test file with the given calls as expectations.
func (t *Test) Format(calls []FunctionCall) string {
	var b strings.Builder
	b.WriteString(t.Source)
	b.WriteString(Delimiter)
	b.WriteString("\n")
	b.WriteString(FormatCalls(calls, "// "))
	return b.String()
}

// UpdateExpectations rewrites the test file with the results of the last Run.
func (t *Test) UpdateExpectations(fs afero.Fs) error {
	if t.Path == "" {
		return errors.New("test has no file")
	}
	if err := dir.WriteFileWithFsync(fs, t.Path, []byte(t.Format(t.results)), 0o644); err != nil {
		return fmt.Errorf("updating %s: %w", t.Path, err)
	}
	t.Expectations = slices.Clone(t.results)
	return nil
}
