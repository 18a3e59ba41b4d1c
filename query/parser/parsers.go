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
	"github.com/vektah/goparsify"
)

// repeatZeroOrMore matches zero or more parsers and returns the value as
// .Child[n]. An optional separator can be provided and that value will be
// consumed but not returned. Only one separator can be provided. A separator
// must be followed by another item; "a," is an error, not a list of one.
//
// This and repeatOneOrMore exist because the difference between Some & Many is
// not obvious from the name.
func repeatZeroOrMore(p goparsify.Parserish, sep ...goparsify.Parserish) goparsify.Parser {
	if len(sep) == 0 {
		return goparsify.Some(p)
	}
	items := separatedList(p, sep[0])
	return func(ps *goparsify.State, node *goparsify.Result) {
		startpos := ps.Pos
		items(ps, node)
		if ps.Errored() && ps.Cut <= startpos {
			ps.Recover()
			node.Child = nil
		}
	}
}

// repeatOneOrMore matches one or more parsers and returns the value as
// .Child[n]. An optional separator can be provided and that value will be
// consumed but not returned. Only one separator can be provided. A separator
// must be followed by another item.
func repeatOneOrMore(p goparsify.Parserish, sep ...goparsify.Parserish) goparsify.Parser {
	if len(sep) == 0 {
		return goparsify.Many(p)
	}
	return separatedList(p, sep[0])
}

// separatedList matches 'item (sep item)*'. goparsify's Many backtracks over
// a separator whose following item fails, so here the separator is followed
// by a Cut: once a separator is consumed, a missing item is a syntax error.
// The items are flattened into .Child[n].
func separatedList(item goparsify.Parserish, sep goparsify.Parserish) goparsify.Parser {
	next := goparsify.Seq(sep, goparsify.Cut(), item).Map(func(n *goparsify.Result) {
		n.Result = n.Child[2].Result
	})
	return goparsify.Seq(item, goparsify.Some(next)).Map(func(n *goparsify.Result) {
		items := make([]goparsify.Result, 0, 1+len(n.Child[1].Child))
		items = append(items, n.Child[0])
		items = append(items, n.Child[1].Child...)
		n.Child = items
	})
}

// named reports a failure to match 'parser' at its first token as "expected
// <expected>". Without it, an Any reports whichever of its alternatives it
// tried last. Errors found past the first token are left alone.
func named(expected string, parser goparsify.Parser) goparsify.Parser {
	return func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)
		startpos := ps.Pos
		parser(ps, node)
		if ps.Errored() && ps.Error.Pos() == startpos {
			ps.Pos = startpos
			ps.ErrorHere(expected)
		}
	}
}

// binaryLevel returns a parser for one left-associative precedence level:
// next (op next)*. The results are folded left, so "a AND b AND c" is
// ((a AND b) AND c). Each level is built from the next tighter one, which
// is how the expression grammar climbs precedence.
func binaryLevel(next goparsify.Parser, op goparsify.Parser) goparsify.Parser {
	tail := goparsify.Seq(op, goparsify.Cut(), next).Map(operand)
	return goparsify.Seq(next, repeatZeroOrMore(tail)).Map(func(n *goparsify.Result) {
		left := n.Child[0].Result.(Expr)
		for _, c := range n.Child[1].Child {
			left = c.Result.(*binaryTail).apply(left)
		}
		n.Result = left
	})
}
