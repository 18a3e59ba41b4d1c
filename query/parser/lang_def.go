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
	"github.com/ebay/drql/query/lexer"
	p "github.com/vektah/goparsify"
)

var (
	// statement is the parser function called by Parse. It extracts a whole
	// query, including an optional trailing ';'.
	statement p.Parser
	// selectQuery extracts a SELECT query. It is also used for sub-selects.
	selectQuery p.Parser
	// expr is the parser function called by ParseExpr. It extracts an
	// expression with OR binding loosest, then AND, then comparisons.
	expr p.Parser
)

func init() {
	// If you need to debug what the parser is doing, you can enable goparsify's
	// built in debug support by building with -tags debug. See the docs for
	// more details https://github.com/vektah/goparsify#debugging-parsers
	//
	// The parser_debug.go file will setup sending the parser debug output to
	// stdOut when the debug tag is used.
	kw := lexer.Keyword
	sym := lexer.Symbol

	// forward references for the recursive productions
	exprRef := p.NewParser("expression", func(s *p.State, r *p.Result) {
		expr(s, r)
	})
	queryRef := p.NewParser("query", func(s *p.State, r *p.Result) {
		selectQuery(s, r)
	})

	path := lexer.Identifier.Map(path)
	alias := p.Seq(kw("AS"), p.Cut(), lexer.Name).Map(name(2)) // AS cnt

	// Expressions
	args := p.Seq(sym("("), p.Cut(), repeatZeroOrMore(exprRef, sym(",")), sym(")")).Map(args)
	pathOrCall := p.Seq(lexer.Identifier, p.Maybe(args)).Map(pathOrCall) // r1.m2.f3 || COUNT(f1)
	integer := lexer.Integer.Map(integer)                                 // 55
	str := lexer.StringLit.Map(str)                                       // 'abc'
	paren := p.Seq(sym("("), p.Cut(), exprRef, sym(")")).Map(paren)      // (a = 1 OR b = 2)
	primary := named("expression", p.Any(pathOrCall, integer, str, paren))

	cmpOp := p.Any(sym(">="), sym("<="), sym("<>"), sym("!="), sym("="), sym(">"), sym("<"))
	comparison := p.Seq(primary, p.Maybe(p.Seq(cmpOp, p.Cut(), primary).Map(operand))).Map(comparison)
	and := binaryLevel(comparison, kw("AND"))
	or := binaryLevel(and, kw("OR"))
	expr = or

	// SELECT list
	within := p.Seq(kw("WITHIN"), p.Cut(), p.Any(kw("RECORD"), lexer.Identifier)).Map(within)
	resultCol := p.Seq(or, p.Maybe(within), p.Maybe(alias)).Map(resultCol)

	// FROM list
	tableRef := p.Seq(p.Any(lexer.Bracketed, lexer.Identifier), p.Maybe(alias)).Map(tableRef) // [Table1] AS t
	subSelect := p.Seq(sym("("), p.Cut(), queryRef, sym(")"), p.Maybe(alias)).Map(subSelect)
	fromItem := p.Any(subSelect, tableRef)
	joinCond := p.Seq(path, sym("="), p.Cut(), path).Map(joinCond) // a.id = b.aId
	joinItem := p.Seq(kw("INNER"), p.Cut(), kw("JOIN"), tableRef, kw("ON"),
		repeatOneOrMore(joinCond, kw("AND"))).Map(joinItem)
	fromList := p.Seq(repeatOneOrMore(fromItem, sym(",")), repeatZeroOrMore(joinItem)).Map(fromList)

	// Optional clauses
	where := p.Seq(kw("WHERE"), p.Cut(), or).Map(child(2))
	having := p.Seq(kw("HAVING"), p.Cut(), or).Map(child(2))
	groupBy := p.Seq(kw("GROUP"), p.Cut(), kw("BY"), repeatOneOrMore(path, sym(",")), p.Maybe(having)).Map(groupBy)
	orderItem := p.Seq(path, p.Maybe(p.Any(kw("ASC"), kw("DESC")))).Map(orderItem)
	orderBy := p.Seq(kw("ORDER"), p.Cut(), kw("BY"), repeatOneOrMore(orderItem, sym(","))).Map(orderBy)
	limit := p.Seq(kw("LIMIT"), p.Cut(), integer).Map(child(2))

	selectQuery = p.Seq(kw("SELECT"), p.Cut(), repeatOneOrMore(resultCol, sym(",")),
		kw("FROM"), fromList,
		p.Maybe(where), p.Maybe(groupBy), p.Maybe(orderBy), p.Maybe(limit)).Map(selectStatement)
	statement = p.Seq(selectQuery, p.Maybe(sym(";"))).Map(child(0))
}
