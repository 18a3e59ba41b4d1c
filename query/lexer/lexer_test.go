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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Tokenize(t *testing.T) {
	type tc struct {
		in  string
		exp []Token
	}
	tests := []tc{
		{"", nil},
		{"  \n\t ", nil},
		{"SELECT column1 FROM table1", []Token{
			{KeywordToken, "SELECT", 0},
			{IdentifierToken, "column1", 7},
			{KeywordToken, "FROM", 15},
			{IdentifierToken, "table1", 20},
		}},
		{"select COUNT(r1.m2.f3) within r1.m2 as cnt from [Table1];", []Token{
			{KeywordToken, "select", 0},
			{IdentifierToken, "COUNT", 7},
			{Punctuation, "(", 12},
			{IdentifierToken, "r1.m2.f3", 13},
			{Punctuation, ")", 21},
			{KeywordToken, "within", 23},
			{IdentifierToken, "r1.m2", 30},
			{KeywordToken, "as", 36},
			{IdentifierToken, "cnt", 39},
			{KeywordToken, "from", 43},
			{BracketedIdentifier, "[Table1]", 48},
			{Punctuation, ";", 56},
		}},
		{"a>=1 b<=2 c<>3 d!=4 e=5 f>6 g<7", []Token{
			{IdentifierToken, "a", 0}, {Operator, ">=", 1}, {IntegerToken, "1", 3},
			{IdentifierToken, "b", 5}, {Operator, "<=", 6}, {IntegerToken, "2", 8},
			{IdentifierToken, "c", 10}, {Operator, "<>", 11}, {IntegerToken, "3", 13},
			{IdentifierToken, "d", 15}, {Operator, "!=", 16}, {IntegerToken, "4", 18},
			{IdentifierToken, "e", 20}, {Operator, "=", 21}, {IntegerToken, "5", 22},
			{IdentifierToken, "f", 24}, {Operator, ">", 25}, {IntegerToken, "6", 26},
			{IdentifierToken, "g", 28}, {Operator, "<", 29}, {IntegerToken, "7", 30},
		}},
		{"'it''s' 'caf\u00e9'", []Token{
			{String, "it's", 0},
			{String, "caf\u00e9", 8},
		}},
		{"'Beyonce\u0301'", []Token{
			{String, "Beyonc\u00e9", 0},
		}},
		{"t.order orders ORDER", []Token{
			{IdentifierToken, "t.order", 0},
			{IdentifierToken, "orders", 8},
			{KeywordToken, "ORDER", 15},
		}},
		{"a -- the rest is a comment\n,b --trailing", []Token{
			{IdentifierToken, "a", 0},
			{Punctuation, ",", 27},
			{IdentifierToken, "b", 28},
		}},
		{"18446744073709551615", []Token{
			{IntegerToken, "18446744073709551615", 0},
		}},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			tokens, err := Tokenize(test.in)
			require.NoError(t, err)
			assert.Equal(t, test.exp, tokens)
		})
	}
}

func Test_TokenizeErrors(t *testing.T) {
	type tc struct {
		in  string
		err string
	}
	tests := []tc{
		{"SELECT $x FROM t", `unable to tokenize query: line 1 column 8: unexpected character '$'`},
		{"SELECT a\nFROM t WHERE a = 'open", `unable to tokenize query: line 2 column 18: unterminated string literal starting with '\''`},
		{"SELECT 12abc FROM t", `unable to tokenize query: line 1 column 8: malformed integer literal starting with '1'`},
		{"SELECT 18446744073709551616", `unable to tokenize query: line 1 column 8: malformed integer literal starting with '1'`},
		{"FROM [Table1", `unable to tokenize query: line 1 column 6: malformed bracketed identifier starting with '['`},
		{"FROM []", `unable to tokenize query: line 1 column 6: malformed bracketed identifier starting with '['`},
		{"a.", `unable to tokenize query: line 1 column 2: unexpected character '.'`},
		{"a.1b", `unable to tokenize query: line 1 column 2: unexpected character '.'`},
		{"SELECT t._x, t.2 FROM t", `unable to tokenize query: line 1 column 15: unexpected character '.'`},
		{"a ! b", `unable to tokenize query: line 1 column 3: unexpected character '!'`},
		{"caf\u00e9 \u00e9", "unable to tokenize query: line 1 column 4: unexpected character '\u00e9'"},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			_, err := Tokenize(test.in)
			assert.EqualError(t, err, test.err)
			assert.IsType(t, &LexError{}, err)
		})
	}
}

func Test_LexErrorFields(t *testing.T) {
	_, err := Tokenize("SELECT a,\n  #b")
	require.Error(t, err)
	lexErr := err.(*LexError)
	assert.Equal(t, '#', lexErr.Char)
	assert.Equal(t, 12, lexErr.Offset)
	assert.Equal(t, 2, lexErr.Line)
	assert.Equal(t, 3, lexErr.Column)
}

func Test_LexerRestartable(t *testing.T) {
	assert := assert.New(t)
	l := New("SELECT a")
	first, err := l.Next()
	assert.NoError(err)
	assert.Equal(Token{KeywordToken, "SELECT", 0}, first)
	tok, err := l.Next()
	assert.NoError(err)
	assert.Equal(Token{IdentifierToken, "a", 7}, tok)
	for i := 0; i < 2; i++ {
		tok, err = l.Next()
		assert.NoError(err)
		assert.Equal(Token{Kind: EOF, Offset: 8}, tok)
	}
	l.Reset()
	tok, err = l.Next()
	assert.NoError(err)
	assert.Equal(first, tok)
}

func Test_LexerDoesNotAdvanceOnError(t *testing.T) {
	l := New("a $")
	_, err := l.Next()
	assert.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = l.Next()
		assert.Error(t, err)
	}
}

func Test_Token(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("SELECT", Token{Kind: KeywordToken, Text: "select"}.Keyword())
	assert.Equal("", Token{Kind: IdentifierToken, Text: "select_x"}.Keyword())
	assert.Equal("end of input", Token{Kind: EOF}.String())
	assert.Equal("'it''s'", Token{Kind: String, Text: "it's"}.String())
	assert.Equal("[T]", Token{Kind: BracketedIdentifier, Text: "[T]"}.String())
	assert.Equal("BracketedIdentifier", BracketedIdentifier.String())
	assert.Equal("Keyword", KeywordToken.String())
	assert.Equal("Identifier", IdentifierToken.String())
	assert.Equal("Integer", IntegerToken.String())
	assert.Equal("Kind(42)", Kind(42).String())
	assert.True(IsReserved("within"))
	assert.False(IsReserved("COUNT"))
}

func Test_TokenAt(t *testing.T) {
	tokens, err := Tokenize("SELECT a FROM t")
	require.NoError(t, err)
	assert.Equal(t, Token{IdentifierToken, "a", 7}, TokenAt(tokens, 7, 15))
	assert.Equal(t, Token{KeywordToken, "FROM", 9}, TokenAt(tokens, 8, 15))
	assert.Equal(t, Token{Kind: EOF, Offset: 15}, TokenAt(tokens, 15, 15))
}

func Test_PositionOf(t *testing.T) {
	type tc struct {
		in     string
		offset int
		line   int
		col    int
	}
	tests := []tc{
		{"", 0, 1, 1},
		{"abc", 0, 1, 1},
		{"abc", 2, 1, 3},
		{"abc\ndef", 4, 2, 1},
		{"abc\ndef", 6, 2, 3},
		{"\u00e9t\u00e9 x", 6, 1, 5},
		{"abc   \n\n", 8, 1, 4},
	}
	for _, test := range tests {
		pos := PositionOf(test.in, test.offset)
		assert.Equal(t, test.line, pos.Line, "line of %q @ %d", test.in, test.offset)
		assert.Equal(t, test.col, pos.Column, "column of %q @ %d", test.in, test.offset)
		assert.Equal(t, test.offset, pos.Offset)
	}
}
