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
	"strconv"
	"strings"

	"github.com/ebay/drql/util/unicode"
	"github.com/vektah/goparsify"
)

// The terminals below are goparsify parsers. Each one consumes leading
// whitespace using the state's WS parser, then either consumes exactly one
// token and sets the result's Result to its Token, or reports an error at the
// token's start without consuming anything.

var (
	// Word matches a keyword or an identifier.
	Word goparsify.Parser
	// Identifier matches an identifier, which may be a dotted path.
	Identifier goparsify.Parser
	// Name matches an identifier without dots.
	Name goparsify.Parser
	// Bracketed matches a bracketed identifier like [Table1].
	Bracketed goparsify.Parser
	// Integer matches an unsigned decimal integer literal.
	Integer goparsify.Parser
	// StringLit matches a single quoted string literal.
	StringLit goparsify.Parser
	// AnySymbol matches any operator or punctuation token.
	AnySymbol goparsify.Parser
	// anyToken matches any single token.
	anyToken goparsify.Parser
)

func init() {
	Word = goparsify.NewParser("word", func(s *goparsify.State, r *goparsify.Result) {
		s.WS(s)
		tok, ok := scanWord(s.Input, s.Pos)
		if !ok {
			s.ErrorHere("word")
			return
		}
		emit(s, r, tok)
	})
	Identifier = goparsify.NewParser("identifier", func(s *goparsify.State, r *goparsify.Result) {
		s.WS(s)
		tok, ok := scanWord(s.Input, s.Pos)
		if !ok || tok.Kind != IdentifierToken {
			s.ErrorHere("identifier")
			return
		}
		emit(s, r, tok)
	})
	Name = goparsify.NewParser("name", func(s *goparsify.State, r *goparsify.Result) {
		s.WS(s)
		tok, ok := scanWord(s.Input, s.Pos)
		if !ok || tok.Kind != IdentifierToken || strings.IndexByte(tok.Text, '.') >= 0 {
			s.ErrorHere("name")
			return
		}
		emit(s, r, tok)
	})
	Bracketed = goparsify.NewParser("bracketed", func(s *goparsify.State, r *goparsify.Result) {
		s.WS(s)
		in := s.Get()
		if len(in) == 0 || in[0] != '[' {
			s.ErrorHere("bracketed identifier")
			return
		}
		end := strings.IndexAny(in, "]\n")
		if end < 2 || in[end] != ']' {
			s.ErrorHere("bracketed identifier")
			return
		}
		emit(s, r, Token{Kind: BracketedIdentifier, Text: in[:end+1], Offset: s.Pos})
	})
	Integer = goparsify.NewParser("integer", func(s *goparsify.State, r *goparsify.Result) {
		s.WS(s)
		in := s.Get()
		n := 0
		for n < len(in) && isDigit(in[n]) {
			n++
		}
		if n == 0 || (n < len(in) && isIdentPart(in[n])) {
			s.ErrorHere("integer")
			return
		}
		if _, err := strconv.ParseUint(in[:n], 10, 64); err != nil {
			s.ErrorHere("integer")
			return
		}
		emit(s, r, Token{Kind: IntegerToken, Text: in[:n], Offset: s.Pos})
	})
	StringLit = goparsify.NewParser("string", func(s *goparsify.State, r *goparsify.Result) {
		s.WS(s)
		value, n, ok := scanString(s.Get())
		if !ok {
			s.ErrorHere("string")
			return
		}
		tok := Token{Kind: String, Text: unicode.Normalize(value), Offset: s.Pos}
		r.Token = s.Input[s.Pos : s.Pos+n]
		r.Result = tok
		s.Advance(n)
	})
	AnySymbol = goparsify.NewParser("symbol", func(s *goparsify.State, r *goparsify.Result) {
		s.WS(s)
		tok, ok := scanSymbol(s.Input, s.Pos)
		if !ok {
			s.ErrorHere("operator or punctuation")
			return
		}
		emit(s, r, tok)
	})
	anyToken = goparsify.Any(Word, Bracketed, Integer, StringLit, AnySymbol)
}

// Keyword returns a parser that matches the given keyword, ignoring case.
// It won't match a keyword that is only the prefix of a longer word.
func Keyword(word string) goparsify.Parser {
	word = strings.ToUpper(word)
	if !reserved[word] {
		panic(fmt.Sprintf("%q is not a DRQL keyword", word))
	}
	return goparsify.NewParser(word, func(s *goparsify.State, r *goparsify.Result) {
		s.WS(s)
		tok, ok := scanWord(s.Input, s.Pos)
		if !ok || tok.Keyword() != word {
			s.ErrorHere(word)
			return
		}
		emit(s, r, tok)
	})
}

// Symbol returns a parser that matches the given operator or punctuation. It
// won't match "<" at the start of "<=" or "<>".
func Symbol(text string) goparsify.Parser {
	if _, ok := scanSymbol(text, 0); !ok {
		panic(fmt.Sprintf("%q is not a DRQL operator or punctuation", text))
	}
	return goparsify.NewParser(text, func(s *goparsify.State, r *goparsify.Result) {
		s.WS(s)
		tok, ok := scanSymbol(s.Input, s.Pos)
		if !ok || tok.Text != text {
			s.ErrorHere(text)
			return
		}
		emit(s, r, tok)
	})
}

// Whitespace is a goparsify whitespace parser that understands DRQL's
// whitespace rules. Whitespace chars are ' ' \t \r \n only. "--" starts a
// comment which runs to the end of the line.
func Whitespace(s *goparsify.State) {
	for s.Pos < len(s.Input) {
		switch s.Input[s.Pos] {
		case ' ', '\t', '\r', '\n':
			s.Pos++
		case '-':
			if !strings.HasPrefix(s.Input[s.Pos:], "--") {
				return
			}
			end := strings.IndexByte(s.Input[s.Pos:], '\n')
			if end < 0 {
				s.Pos = len(s.Input)
				return
			}
			s.Pos += end + 1
		default:
			return
		}
	}
}

func emit(s *goparsify.State, r *goparsify.Result, tok Token) {
	r.Token = tok.Text
	r.Result = tok
	s.Advance(len(tok.Text))
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// scanWord reads a word starting at in[pos]: an identifier start followed by
// identifier characters, optionally followed by more '.' separated segments.
// The word is a KeywordToken if it has no dots and is reserved.
func scanWord(in string, pos int) (Token, bool) {
	if pos >= len(in) || !isIdentStart(in[pos]) {
		return Token{}, false
	}
	end := pos + 1
	for {
		for end < len(in) && isIdentPart(in[end]) {
			end++
		}
		if end+1 < len(in) && in[end] == '.' && isIdentStart(in[end+1]) {
			end++
			continue
		}
		break
	}
	text := in[pos:end]
	kind := IdentifierToken
	if reserved[strings.ToUpper(text)] {
		kind = KeywordToken
	}
	return Token{Kind: kind, Text: text, Offset: pos}, true
}

// scanSymbol reads the longest operator or punctuation token at in[pos].
func scanSymbol(in string, pos int) (Token, bool) {
	rest := in[pos:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			return Token{Kind: Operator, Text: op, Offset: pos}, true
		}
	}
	if len(rest) > 0 && strings.IndexByte(punctuation, rest[0]) >= 0 {
		return Token{Kind: Punctuation, Text: rest[:1], Offset: pos}, true
	}
	return Token{}, false
}

// scanString decodes the single quoted string literal at the start of 'in'.
// Two consecutive quotes inside the literal stand for one quote. It returns
// the decoded value and the number of bytes consumed.
func scanString(in string) (value string, n int, ok bool) {
	if len(in) == 0 || in[0] != '\'' {
		return "", 0, false
	}
	var b strings.Builder
	for i := 1; i < len(in); i++ {
		if in[i] != '\'' {
			b.WriteByte(in[i])
			continue
		}
		if i+1 < len(in) && in[i+1] == '\'' {
			b.WriteByte('\'')
			i++
			continue
		}
		return b.String(), i + 1, true
	}
	return "", 0, false
}
