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
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

const (
	hashPrefix     = "keccak256("
	rawBytesPrefix = "rawbytes("
	stringPrefix   = "string("
)

// Parse splits a comma separated literal list into literals. Any failure
// aborts the whole list; no partial result is returned.
func Parse(text string) ([]Literal, error) {
	l := &lexer{src: text}
	return l.list()
}

type lexer struct {
	src  string
	pos  int
	base int // offset of src inside the outermost text, for error positions
}

func (l *lexer) eof() bool { return l.pos >= len(l.src) }

func (l *lexer) peek() byte { return l.src[l.pos] }

func (l *lexer) rest() string { return l.src[l.pos:] }

func (l *lexer) errorf(pos int, err error, msg string) error {
	return &SyntaxError{Pos: l.base + pos, Msg: msg, Err: err}
}

func (l *lexer) skipSpace() {
	for !l.eof() && isSpace(l.peek()) {
		l.pos++
	}
}

func (l *lexer) expect(c byte) error {
	if l.eof() {
		return l.errorf(l.pos, ErrUnexpectedEnd, "expected '"+string(c)+"'")
	}
	if l.peek() != c {
		return l.errorf(l.pos, ErrMalformedLiteral, "expected '"+string(c)+"', found '"+string(l.peek())+"'")
	}
	l.pos++
	return nil
}

func (l *lexer) list() ([]Literal, error) {
	var lits []Literal
	l.skipSpace()
	for !l.eof() {
		lit, err := l.literal()
		if err != nil {
			return nil, err
		}
		lits = append(lits, lit)

		l.skipSpace()
		if l.eof() {
			break
		}
		if err := l.expect(','); err != nil {
			return nil, err
		}
		l.skipSpace()
	}
	return lits, nil
}

func (l *lexer) literal() (Literal, error) {
	c := l.peek()
	switch {
	case isDigit(c) || (c == '-' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1])):
		return l.integer()
	case c == '"':
		l.pos++
		s, err := l.quoted()
		if err != nil {
			return nil, err
		}
		return &QuotedString{Value: []byte(s)}, nil
	case strings.HasPrefix(l.rest(), hashPrefix):
		return l.hash()
	case strings.HasPrefix(l.rest(), rawBytesPrefix):
		return l.rawBytes()
	case strings.HasPrefix(l.rest(), "true"):
		l.pos += len("true")
		return &Boolean{Value: true}, nil
	case strings.HasPrefix(l.rest(), "false"):
		l.pos += len("false")
		return &Boolean{Value: false}, nil
	case strings.HasPrefix(l.rest(), stringPrefix):
		l.pos += len(stringPrefix)
		if err := l.expect('"'); err != nil {
			return nil, err
		}
		s, err := l.quoted()
		if err != nil {
			return nil, err
		}
		if err := l.expect(')'); err != nil {
			return nil, err
		}
		return &AbiString{Value: []byte(s)}, nil
	}
	return nil, l.errorf(l.pos, ErrMalformedLiteral, "unrecognised literal")
}

// quoted consumes everything up to and including the next double quote.
// Escape sequences are not supported.
func (l *lexer) quoted() (string, error) {
	end := strings.IndexByte(l.rest(), '"')
	if end < 0 {
		return "", l.errorf(len(l.src), ErrUnexpectedEnd, `expected '"'`)
	}
	s := l.src[l.pos : l.pos+end]
	l.pos += end + 1
	return s, nil
}

// numberSpan returns the text of a number token, which ends at whitespace,
// a comma or a closing parenthesis.
func (l *lexer) numberSpan() (string, int) {
	start := l.pos
	for !l.eof() {
		c := l.peek()
		if isSpace(c) || c == ',' || c == ')' {
			break
		}
		l.pos++
	}
	return l.src[start:l.pos], start
}

func (l *lexer) integer() (Literal, error) {
	text, start := l.numberSpan()
	v, neg, isHex, err := parseInteger(text)
	if err != nil {
		return nil, l.errorf(start, ErrInvalidNumericLiteral, err.Error())
	}
	return &Integer{Value: *v, Negative: neg, IsHex: isHex}, nil
}

func (l *lexer) hash() (Literal, error) {
	l.pos += len(hashPrefix)
	start := l.pos
	for depth := 1; ; l.pos++ {
		if l.eof() {
			return nil, l.errorf(l.pos, ErrUnexpectedEnd, "expected ')'")
		}
		switch l.peek() {
		case '(':
			depth++
		case ')':
			depth--
		case '"':
			// parentheses inside strings do not count
			if end := strings.IndexByte(l.src[l.pos+1:], '"'); end >= 0 {
				l.pos += end + 1
			}
		}
		if depth == 0 {
			break
		}
	}
	nested := &lexer{src: l.src[start:l.pos], base: l.base + start}
	elems, err := nested.list()
	if err != nil {
		return nil, err
	}
	l.pos++ // ')'
	return &HashLiteral{Elems: elems}, nil
}

func (l *lexer) rawBytes() (Literal, error) {
	l.pos += len(rawBytesPrefix)
	var raw []byte
	for {
		l.skipSpace()
		if l.eof() {
			return nil, l.errorf(l.pos, ErrUnexpectedEnd, "unterminated rawbytes")
		}
		text, start := l.numberSpan()
		b, err := parseByte(text)
		if err != nil {
			return nil, l.errorf(start, ErrInvalidNumericLiteral, err.Error())
		}
		raw = append(raw, b)

		l.skipSpace()
		if l.eof() {
			return nil, l.errorf(l.pos, ErrUnexpectedEnd, "unterminated rawbytes")
		}
		if l.peek() == ')' {
			break
		}
		if err := l.expect(','); err != nil {
			return nil, err
		}
	}
	l.pos++ // ')'
	return &RawByteList{Value: raw}, nil
}

type numberError string

func (e numberError) Error() string { return string(e) }

// parseInteger accepts '-'? digit+ and '-'? '0x' hexdigit+ of at most 256 bits.
func parseInteger(text string) (v *uint256.Int, negative, isHex bool, err error) {
	digits := text
	if strings.HasPrefix(digits, "-") {
		negative = true
		digits = digits[1:]
	}
	if strings.HasPrefix(digits, "0x") {
		isHex = true
		digits = digits[2:]
	}
	if digits == "" {
		return nil, false, false, numberError("no digits in " + quote(text))
	}
	for i := 0; i < len(digits); i++ {
		if !(isDigit(digits[i]) || (isHex && isHexLetter(digits[i]))) {
			return nil, false, false, numberError("bad digit in " + quote(text))
		}
	}
	if isHex {
		// uint256.FromHex rejects leading zero digits such as 0x01.
		b, ok := new(big.Int).SetString(digits, 16)
		if !ok {
			return nil, false, false, numberError("cannot parse " + quote(text))
		}
		var overflow bool
		if v, overflow = uint256.FromBig(b); overflow {
			return nil, false, false, numberError(quote(text) + " exceeds 256 bits")
		}
	} else if v, err = uint256.FromDecimal(digits); err != nil {
		return nil, false, false, numberError(quote(text) + " exceeds 256 bits")
	}
	if negative {
		if v.Gt(minInt256Magnitude) {
			return nil, false, false, numberError(quote(text) + " is below -2^255")
		}
		v.Neg(v)
	}
	return v, negative, isHex, nil
}

// minInt256Magnitude is 2^255, the magnitude of the smallest int256.
var minInt256Magnitude = new(uint256.Int).Lsh(uint256.NewInt(1), 255)

func parseByte(text string) (byte, error) {
	if strings.HasPrefix(text, "-") {
		return 0, numberError("negative raw byte " + quote(text))
	}
	v, _, _, err := parseInteger(text)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() || v.Uint64() > 0xff {
		return 0, numberError("raw byte " + quote(text) + " exceeds 0xff")
	}
	return byte(v.Uint64()), nil
}

func quote(s string) string { return `"` + s + `"` }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexLetter(c byte) bool { return (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }
