// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ebay/drql/util/cmp"
	"github.com/vektah/goparsify"
)

// Lexer produces the tokens of a query one at a time. The zero value is not
// usable; use New. A Lexer is not safe for concurrent use, but independent
// Lexers never interfere.
type Lexer struct {
	in  string
	pos int
}

// New returns a Lexer positioned at the start of 'in'.
func New(in string) *Lexer {
	return &Lexer{in: in}
}

// Next returns the next token. At the end of the input it returns an EOF
// token, and keeps doing so on later calls. If the input at the current
// position isn't a valid token, Next returns a *LexError and doesn't advance.
func (l *Lexer) Next() (Token, error) {
	state := goparsify.NewState(l.in)
	state.Pos = l.pos
	state.WS = goparsify.NoWhitespace
	Whitespace(state)
	if state.Pos >= len(l.in) {
		l.pos = state.Pos
		return Token{Kind: EOF, Offset: len(l.in)}, nil
	}
	start := state.Pos
	result := goparsify.Result{}
	anyToken(state, &result)
	if state.Errored() {
		return Token{}, newLexError(l.in, start)
	}
	l.pos = state.Pos
	return result.Result.(Token), nil
}

// Reset moves the Lexer back to the start of its input.
func (l *Lexer) Reset() {
	l.pos = 0
}

// Tokenize returns all the tokens of 'in', not including the final EOF token.
func Tokenize(in string) ([]Token, error) {
	l := New(in)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// TokenAt returns the token starting at or after 'offset' in 'tokens', or an
// EOF token if there is none.
func TokenAt(tokens []Token, offset int, inputLen int) Token {
	for _, tok := range tokens {
		if tok.Offset >= offset {
			return tok
		}
	}
	return Token{Kind: EOF, Offset: inputLen}
}

// LexError describes input that isn't a valid token.
type LexError struct {
	// The input string to the lexer which resulted in this error.
	Input string
	// The first character of the invalid token.
	Char rune
	// Offset is the byte offset into 'Input' at which the error occurred.
	Offset int
	// Line and Column locate Offset. Column counts runes, from 1.
	Line   int
	Column int
	// What was wrong, such as "unexpected character".
	Details string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unable to tokenize query: line %d column %d: %s %q",
		e.Line, e.Column, e.Details, e.Char)
}

func newLexError(in string, offset int) *LexError {
	c, _ := utf8.DecodeRuneInString(in[offset:])
	details := "unexpected character"
	switch {
	case c == '\'':
		details = "unterminated string literal starting with"
	case c == '[':
		details = "malformed bracketed identifier starting with"
	case c >= '0' && c <= '9':
		details = "malformed integer literal starting with"
	}
	pos := PositionOf(in, offset)
	return &LexError{
		Input:   in,
		Char:    c,
		Offset:  offset,
		Line:    pos.Line,
		Column:  pos.Column,
		Details: details,
	}
}

// Position is a location in a query.
type Position struct {
	Offset int
	Line   int
	Column int
}

// PositionOf returns the line & column of the supplied offset in the string
// 'input'. Offset is in bytes, the returned column value is in runes. Both
// line and column start at 1.
func PositionOf(input string, offset int) Position {
	// Trailing whitespace isn't where people expect errors to be reported.
	trimmed := strings.TrimRightFunc(input, unicode.IsSpace)
	at := cmp.MaxInt(0, cmp.MinInt(offset, len(trimmed)))
	line := 1 + strings.Count(trimmed[:at], "\n")
	lineStart := strings.LastIndexByte(trimmed[:at], '\n') + 1
	return Position{
		Offset: offset,
		Line:   line,
		Column: utf8.RuneCountInString(trimmed[lineStart:at]) + 1,
	}
}
