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
	"errors"
	"fmt"
)

var (
	ErrMalformedLiteral      = errors.New("malformed literal")
	ErrUnexpectedEnd         = errors.New("unexpected end of input")
	ErrInvalidNumericLiteral = errors.New("invalid numeric literal")
	// ErrDecodeFormatMismatch is never returned by Render; a mismatching tag
	// demotes the rest of the buffer to heuristic rendering.
	ErrDecodeFormatMismatch = errors.New("decode format mismatch")
	ErrRoundTripViolation   = errors.New("literal round-trip violation")
)

// SyntaxError locates a lexer or encoder failure in the source text.
type SyntaxError struct {
	Pos int
	Msg string
	Err error
}

func (e *SyntaxError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%v at offset %d", e.Err, e.Pos)
	}
	return fmt.Sprintf("%v at offset %d: %s", e.Err, e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// RoundTripError reports that rendered text does not encode back to the bytes
// it was rendered from. It indicates a defect in the codec or in the tags
// handed to it, never a legitimate expectation mismatch.
type RoundTripError struct {
	Text  string
	Want  []byte
	Got   []byte
	Cause error
}

func (e *RoundTripError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: rendered %q does not encode: %v", ErrRoundTripViolation, e.Text, e.Cause)
	}
	return fmt.Sprintf("%v: rendered %q encodes to %d bytes %x, want %d bytes %x",
		ErrRoundTripViolation, e.Text, len(e.Got), e.Got, len(e.Want), e.Want)
}

func (e *RoundTripError) Is(target error) bool { return target == ErrRoundTripViolation }

func (e *RoundTripError) Unwrap() error { return e.Cause }

type formatError struct {
	kind Kind
	msg  string
}

func (e *formatError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrDecodeFormatMismatch, e.kind, e.msg)
}

func (e *formatError) Unwrap() error { return ErrDecodeFormatMismatch }

func mismatch(kind Kind, format string, args ...any) error {
	return &formatError{kind: kind, msg: fmt.Sprintf(format, args...)}
}
