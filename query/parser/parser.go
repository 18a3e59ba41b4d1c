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

package parser

import (
	"fmt"
	"strings"

	"github.com/ebay/drql/query/lexer"
	"github.com/sirupsen/logrus"
	"github.com/vektah/goparsify"
)

// DefaultMaxDepth is the nesting limit used when Options.MaxDepth isn't set.
const DefaultMaxDepth = 64

// Options control parsing.
type Options struct {
	// MaxDepth limits how deeply parentheses (including sub-selects) may nest.
	// Zero means DefaultMaxDepth.
	MaxDepth int
}

// MustParse parses a DRQL query and panics if an error occurs. It simplifies
// variable initialization. This is primarily meant for writing unit tests.
func MustParse(in string) *Statement {
	stmt, err := Parse(in)
	if err != nil {
		panic(fmt.Sprintf("unable to parse query: '%s': %v", strings.Replace(in, "\n", "\\n", -1), err))
	}
	return stmt
}

// Parse parses a DRQL query using the default Options. Invalid tokens result
// in a *lexer.LexError, anything else that doesn't match the grammar in a
// *SyntaxError.
func Parse(in string) (*Statement, error) {
	return ParseWithOptions(in, Options{})
}

// ParseWithOptions is like Parse with control over the parser's limits.
func ParseWithOptions(in string, opts Options) (*Statement, error) {
	p := &parser{in: in, opts: opts}
	return p.parseStatement()
}

// ParseExpr parses a single expression, such as the contents of a WHERE
// clause.
func ParseExpr(in string) (Expr, error) {
	p := &parser{in: in}
	result, err := p.parse(expr)
	if err != nil {
		return nil, err
	}
	e, ok := result.Result.(Expr)
	if !ok {
		return nil, fmt.Errorf("invalid result type: %T", result.Result)
	}
	return e, nil
}

// parser holds the state of a single parse call.
type parser struct {
	in     string
	opts   Options
	tokens []lexer.Token
}

// parse tokenizes the input, then runs 'root' over it. If it's unable to fully
// parse the input a SyntaxError will be returned that includes the position of
// where it parsed to, and what the problem is.
func (p *parser) parse(root goparsify.Parser) (*goparsify.Result, error) {
	tokens, err := lexer.Tokenize(p.in)
	if err != nil {
		return nil, err
	}
	p.tokens = tokens
	if err := p.checkDepth(); err != nil {
		return nil, err
	}
	// parse the query; see lang_def.go for the combinator semantics
	state := goparsify.NewState(p.in)
	state.WS = lexer.Whitespace
	result := &goparsify.Result{}
	root(state, result)
	if state.Errored() {
		return nil, p.syntaxError(state.Error.Pos(), expectedText(&state.Error))
	}
	// consume tail whitespace and check for unparsed text
	state.WS(state)
	if state.Get() != "" {
		return nil, p.syntaxError(state.Pos, "end of query")
	}
	return result, nil
}

// parseStatement parses the entire query.
func (p *parser) parseStatement() (*Statement, error) {
	result, err := p.parse(statement)
	if err != nil {
		return nil, err
	}
	stmt, ok := result.Result.(*Statement)
	if !ok {
		return nil, fmt.Errorf("invalid result type: %T", result.Result)
	}
	return stmt, nil
}

// checkDepth rejects input whose parentheses nest deeper than MaxDepth. The
// grammar recurses once per level, so this bounds its stack use.
func (p *parser) checkDepth() error {
	max := p.opts.MaxDepth
	if max <= 0 {
		max = DefaultMaxDepth
	}
	depth := 0
	for _, tok := range p.tokens {
		if tok.Kind != lexer.Punctuation {
			continue
		}
		switch tok.Text {
		case "(":
			depth++
			if depth > max {
				return p.syntaxError(tok.Offset, fmt.Sprintf("at most %d nested parentheses", max))
			}
		case ")":
			depth--
		}
	}
	return nil
}

func (p *parser) syntaxError(offset int, expected string) *SyntaxError {
	pos := lexer.PositionOf(p.in, offset)
	return &SyntaxError{
		Input:    p.in,
		Offset:   offset,
		Line:     pos.Line,
		Column:   pos.Column,
		Expected: expected,
		Found:    lexer.TokenAt(p.tokens, offset, len(p.in)).String(),
	}
}

// SyntaxError captures more detailed information about a parsing error, and
// where it occurred.
type SyntaxError struct {
	// The input string to the parser which resulted in this error.
	Input string
	// Offset is the byte offset into 'Input' at which the error occurred.
	Offset int
	// Line is the line number in 'Input' at which the error occurred.
	Line int
	// Column is the column (in runes) into the indicated Line that the error
	// occurred. Line & Column represent the same point in 'Input' as 'Offset'.
	Column int
	// The construct the parser was looking for.
	Expected string
	// The token found instead, or "end of input".
	Found string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("unable to parse query: line %d column %d: expected %s, found %s",
		e.Line, e.Column, e.Expected, e.Found)
}

// expectedText extracts from the supplied goparsify Error the expected text
// i.e. the error from an unmatched parser. This relies on the format of the
// error message generated by goparsify.
func expectedText(e *goparsify.Error) string {
	msg := e.Error()
	expectedIdx := strings.Index(msg, "expected")
	if expectedIdx == -1 {
		logrus.WithField("err", msg).
			Warn("Got goparsify error with missing 'expected' string")
		return msg
	}
	expected := msg[expectedIdx+len("expected")+1:]
	// goparsify's Any reports "!EOF" when it runs out of input.
	if expected == "!EOF" {
		return "more input"
	}
	return expected
}
