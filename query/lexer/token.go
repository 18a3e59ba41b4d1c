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

// Package lexer splits DRQL query text into tokens.
//
// The token terminals are goparsify parsers. The grammar in package parser
// is built from the same terminals, so the lexer and the parser always agree
// on where one token ends and the next begins.
package lexer

import (
	"fmt"
	"strings"
)

// Kind is the category of a Token.
type Kind int

// The token kinds.
const (
	EOF Kind = iota
	KeywordToken
	IdentifierToken
	BracketedIdentifier
	IntegerToken
	String
	Operator
	Punctuation
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case KeywordToken:
		return "Keyword"
	case IdentifierToken:
		return "Identifier"
	case BracketedIdentifier:
		return "BracketedIdentifier"
	case IntegerToken:
		return "Integer"
	case String:
		return "String"
	case Operator:
		return "Operator"
	case Punctuation:
		return "Punctuation"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one lexical unit of a query.
type Token struct {
	Kind Kind
	// Text is the token exactly as written in the query, except for String
	// tokens where it is the decoded, NFC normalized value.
	Text string
	// Offset is the byte offset of the token's first character.
	Offset int
}

// Keyword returns the upper-cased keyword for KeywordToken tokens, and "" for all
// other kinds.
func (t Token) Keyword() string {
	if t.Kind != KeywordToken {
		return ""
	}
	return strings.ToUpper(t.Text)
}

// String returns the token as it would be quoted in an error message.
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case String:
		return "'" + strings.Replace(t.Text, "'", "''", -1) + "'"
	}
	return t.Text
}

// reserved is the set of DRQL keywords, upper-cased.
var reserved = map[string]bool{
	"SELECT": true,
	"FROM":   true,
	"WHERE":  true,
	"GROUP":  true,
	"BY":     true,
	"HAVING": true,
	"ORDER":  true,
	"ASC":    true,
	"DESC":   true,
	"LIMIT":  true,
	"INNER":  true,
	"JOIN":   true,
	"ON":     true,
	"AS":     true,
	"WITHIN": true,
	"RECORD": true,
	"AND":    true,
	"OR":     true,
}

// IsReserved returns true if word is a DRQL keyword, ignoring case.
func IsReserved(word string) bool {
	return reserved[strings.ToUpper(word)]
}

// operators are the comparison operators, longest first so that scanning
// prefers "<=" over "<".
var operators = []string{">=", "<=", "<>", "!=", "=", ">", "<"}

// punctuation is the set of single character punctuation tokens.
const punctuation = ",();"
