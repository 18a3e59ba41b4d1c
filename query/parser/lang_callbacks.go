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
	"strconv"

	"github.com/ebay/drql/query/lexer"
	"github.com/vektah/goparsify"
)

// binaryTail is the 'op right' part of a binary expression, waiting for its
// left operand.
type binaryTail struct {
	op    lexer.Token
	right Expr
}

func (t *binaryTail) apply(left Expr) Expr {
	op := t.op.Text
	if t.op.Kind == lexer.KeywordToken {
		op = t.op.Keyword()
	}
	return &Binary{
		Offset: t.op.Offset,
		Op:     op,
		Left:   left,
		Right:  t.right,
	}
}

func token(r *goparsify.Result) lexer.Token {
	return r.Result.(lexer.Token)
}

func path(n *goparsify.Result) {
	tok := token(n)
	n.Result = &Path{Offset: tok.Offset, Text: tok.Text}
}

func name(idx int) func(*goparsify.Result) {
	return func(n *goparsify.Result) {
		tok := token(&n.Child[idx])
		n.Result = &Name{Offset: tok.Offset, Text: tok.Text}
	}
}

func child(idx int) func(*goparsify.Result) {
	return func(n *goparsify.Result) {
		n.Result = n.Child[idx].Result
	}
}

func args(n *goparsify.Result) {
	// 0: '('
	// 1: Cut()
	// 2: ${args}
	// 3: ')'
	res := make([]Expr, 0, len(n.Child[2].Child))
	for _, c := range n.Child[2].Child {
		res = append(res, c.Result.(Expr))
	}
	n.Result = res
}

func pathOrCall(n *goparsify.Result) {
	tok := token(&n.Child[0])
	if n.Child[1].Result == nil {
		n.Result = &Path{Offset: tok.Offset, Text: tok.Text}
		return
	}
	n.Result = &Call{
		Offset: tok.Offset,
		Name:   tok.Text,
		Args:   n.Child[1].Result.([]Expr),
	}
}

func integer(n *goparsify.Result) {
	tok := token(n)
	// The lexer has already checked that the literal fits in a uint64.
	v, _ := strconv.ParseUint(tok.Text, 10, 64)
	n.Result = &Int{Offset: tok.Offset, Value: v}
}

func str(n *goparsify.Result) {
	tok := token(n)
	n.Result = &Str{Offset: tok.Offset, Value: tok.Text}
}

func paren(n *goparsify.Result) {
	n.Result = &Paren{
		Offset: token(&n.Child[0]).Offset,
		Inner:  n.Child[2].Result.(Expr),
	}
}

func operand(n *goparsify.Result) {
	n.Result = &binaryTail{
		op:    token(&n.Child[0]),
		right: n.Child[2].Result.(Expr),
	}
}

func comparison(n *goparsify.Result) {
	left := n.Child[0].Result.(Expr)
	if n.Child[1].Result == nil {
		n.Result = left
		return
	}
	n.Result = n.Child[1].Result.(*binaryTail).apply(left)
}

func within(n *goparsify.Result) {
	tok := token(&n.Child[0])
	target := token(&n.Child[2])
	res := &Within{Offset: tok.Offset}
	if target.Kind == lexer.KeywordToken {
		res.Record = true
	} else {
		res.Path = &Path{Offset: target.Offset, Text: target.Text}
	}
	n.Result = res
}

func resultCol(n *goparsify.Result) {
	res := &ResultCol{Expr: n.Child[0].Result.(Expr)}
	if n.Child[1].Result != nil {
		res.Within = n.Child[1].Result.(*Within)
	}
	if n.Child[2].Result != nil {
		res.Alias = n.Child[2].Result.(*Name)
	}
	n.Result = res
}

func tableRef(n *goparsify.Result) {
	tok := token(&n.Child[0])
	res := &TableRef{Offset: tok.Offset, Name: tok.Text}
	if n.Child[1].Result != nil {
		res.Alias = n.Child[1].Result.(*Name)
	}
	n.Result = res
}

func subSelect(n *goparsify.Result) {
	// 0: '('
	// 1: Cut()
	// 2: ${query}
	// 3: ')'
	// 4: ${alias}
	res := &SubSelect{
		Offset: token(&n.Child[0]).Offset,
		Query:  n.Child[2].Result.(*Statement),
	}
	if n.Child[4].Result != nil {
		res.Alias = n.Child[4].Result.(*Name)
	}
	n.Result = res
}

func joinCond(n *goparsify.Result) {
	n.Result = &JoinCond{
		Left:  n.Child[0].Result.(*Path),
		Right: n.Child[3].Result.(*Path),
	}
}

func joinItem(n *goparsify.Result) {
	// 0: INNER
	// 1: Cut()
	// 2: JOIN
	// 3: ${table}
	// 4: ON
	// 5: ${conditions}
	res := &JoinItem{
		Offset: token(&n.Child[0]).Offset,
		Table:  n.Child[3].Result.(*TableRef),
	}
	for _, c := range n.Child[5].Child {
		res.Conditions = append(res.Conditions, c.Result.(*JoinCond))
	}
	n.Result = res
}

// fromClause carries the FROM list and its joins to selectStatement.
type fromClause struct {
	items []FromItem
	joins []*JoinItem
}

func fromList(n *goparsify.Result) {
	res := &fromClause{}
	for _, c := range n.Child[0].Child {
		res.items = append(res.items, c.Result.(FromItem))
	}
	for _, c := range n.Child[1].Child {
		res.joins = append(res.joins, c.Result.(*JoinItem))
	}
	n.Result = res
}

// groupClause carries the GROUP BY list and the optional HAVING expression to
// selectStatement.
type groupClause struct {
	paths  []*Path
	having Expr
}

func groupBy(n *goparsify.Result) {
	// 0: GROUP
	// 1: Cut()
	// 2: BY
	// 3: ${paths}
	// 4: ${having}
	res := &groupClause{}
	for _, c := range n.Child[3].Child {
		res.paths = append(res.paths, c.Result.(*Path))
	}
	if n.Child[4].Result != nil {
		res.having = n.Child[4].Result.(Expr)
	}
	n.Result = res
}

func orderItem(n *goparsify.Result) {
	res := &OrderItem{Path: n.Child[0].Result.(*Path)}
	if n.Child[1].Result != nil {
		res.Desc = token(&n.Child[1]).Keyword() == "DESC"
	}
	n.Result = res
}

func orderBy(n *goparsify.Result) {
	items := n.Child[3].Child
	res := make([]*OrderItem, 0, len(items))
	for _, c := range items {
		res = append(res, c.Result.(*OrderItem))
	}
	n.Result = res
}

func selectStatement(n *goparsify.Result) {
	// 0: SELECT
	// 1: Cut()
	// 2: ${resultCols}
	// 3: FROM
	// 4: ${fromList}
	// 5: ${where}
	// 6: ${groupBy}
	// 7: ${orderBy}
	// 8: ${limit}
	from := n.Child[4].Result.(*fromClause)
	stmt := &Statement{
		Offset: token(&n.Child[0]).Offset,
		From:   from.items,
		Joins:  from.joins,
	}
	for _, c := range n.Child[2].Child {
		stmt.Columns = append(stmt.Columns, c.Result.(*ResultCol))
	}
	if n.Child[5].Result != nil {
		stmt.Where = n.Child[5].Result.(Expr)
	}
	if n.Child[6].Result != nil {
		group := n.Child[6].Result.(*groupClause)
		stmt.GroupBy = group.paths
		stmt.Having = group.having
	}
	if n.Child[7].Result != nil {
		stmt.OrderBy = n.Child[7].Result.([]*OrderItem)
	}
	if n.Child[8].Result != nil {
		stmt.Limit = n.Child[8].Result.(*Int)
	}
	n.Result = stmt
}
