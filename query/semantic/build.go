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

package semantic

import (
	"fmt"

	"github.com/ebay/drql/query/parser"
)

// SemanticError is returned by Build when a parse tree can't be resolved into
// a model. Trees produced by the parser always resolve; this only happens for
// trees constructed some other way.
type SemanticError struct {
	// Construct names the offending part of the tree, such as "expression".
	Construct string
	// Offset is the position in the query text of the construct, or of its
	// closest enclosing node.
	Offset int
	Reason string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("unable to build query model: %s at offset %d: %s",
		e.Construct, e.Offset, e.Reason)
}

// Build resolves a parse tree into a Query. It doesn't modify the tree and
// keeps no state between calls.
func Build(stmt *parser.Statement) (*Query, error) {
	if stmt == nil {
		return nil, &SemanticError{Construct: "query", Reason: "missing statement"}
	}
	return buildQuery(stmt)
}

func buildQuery(stmt *parser.Statement) (*Query, error) {
	if len(stmt.Columns) == 0 {
		return nil, &SemanticError{Construct: "SELECT", Offset: stmt.Offset, Reason: "no result columns"}
	}
	if len(stmt.From) == 0 {
		return nil, &SemanticError{Construct: "FROM", Offset: stmt.Offset, Reason: "no FROM items"}
	}
	q := &Query{
		resultColumns: make([]*ResultColumn, len(stmt.Columns)),
		from:          make([]*Query, len(stmt.From)),
		groupBy:       make([]*Symbol, len(stmt.GroupBy)),
		orderBy:       make([]OrderItem, len(stmt.OrderBy)),
	}
	var err error
	for i, col := range stmt.Columns {
		if q.resultColumns[i], err = buildResultColumn(stmt.Offset, col); err != nil {
			return nil, err
		}
	}
	for i, item := range stmt.From {
		if q.from[i], err = buildFromItem(stmt.Offset, item); err != nil {
			return nil, err
		}
	}
	if len(stmt.Joins) > 0 {
		q.joins = make([]*JoinOnClause, len(stmt.Joins))
		for i, join := range stmt.Joins {
			if q.joins[i], err = buildJoin(q.from[0], join); err != nil {
				return nil, err
			}
		}
	}
	if stmt.Where != nil {
		if q.where, err = buildExpr(stmt.Where); err != nil {
			return nil, err
		}
	}
	for i, p := range stmt.GroupBy {
		if q.groupBy[i], err = columnSymbol(stmt.Offset, "GROUP BY", p); err != nil {
			return nil, err
		}
	}
	if stmt.Having != nil {
		if q.having, err = buildExpr(stmt.Having); err != nil {
			return nil, err
		}
	}
	for i, o := range stmt.OrderBy {
		if o == nil {
			return nil, &SemanticError{Construct: "ORDER BY", Offset: stmt.Offset, Reason: "missing item"}
		}
		sym, err := columnSymbol(stmt.Offset, "ORDER BY", o.Path)
		if err != nil {
			return nil, err
		}
		q.orderBy[i] = OrderItem{symbol: sym, direction: Ascending}
		if o.Desc {
			q.orderBy[i].direction = Descending
		}
	}
	if stmt.Limit != nil {
		limit := stmt.Limit.Value
		q.limit = &limit
	}
	return q, nil
}

func buildResultColumn(offset int, col *parser.ResultCol) (*ResultColumn, error) {
	if col == nil {
		return nil, &SemanticError{Construct: "result column", Offset: offset, Reason: "missing column"}
	}
	expr, err := buildExpr(col.Expr)
	if err != nil {
		return nil, err
	}
	rc := &ResultColumn{expr: expr, scope: FullScope}
	if col.Within != nil {
		switch {
		case col.Within.Record:
			rc.scope = RecordScope
		case col.Within.Path != nil:
			rc.scope = ColumnScope
			rc.columnScope = NewSymbol(ColumnSymbol, col.Within.Path.Text)
		default:
			return nil, &SemanticError{Construct: "WITHIN", Offset: col.Within.Offset,
				Reason: "neither RECORD nor a path"}
		}
	}
	if col.Alias != nil {
		rc.alias = NewSymbol(ColumnAliasSymbol, col.Alias.Text)
		// A plain column also carries its alias on its symbol.
		if c, ok := expr.(*Column); ok {
			rc.expr = NewColumn(NewAliasedSymbol(ColumnSymbol, c.symbol.name,
				NewSymbol(ColumnAliasSymbol, col.Alias.Text)))
		}
	}
	return rc, nil
}

func buildFromItem(offset int, item parser.FromItem) (*Query, error) {
	switch item := item.(type) {
	case *parser.TableRef:
		return NewTable(tableSymbol(item)), nil
	case *parser.SubSelect:
		if item.Query == nil {
			return nil, &SemanticError{Construct: "sub-select", Offset: item.Offset, Reason: "missing query"}
		}
		q, err := buildQuery(item.Query)
		if err != nil {
			return nil, err
		}
		if item.Alias != nil {
			q.alias = NewSymbol(TableAliasSymbol, item.Alias.Text)
		}
		return q, nil
	case nil:
		return nil, &SemanticError{Construct: "FROM item", Offset: offset, Reason: "missing item"}
	default:
		return nil, &SemanticError{Construct: "FROM item", Offset: item.Pos(),
			Reason: fmt.Sprintf("unexpected node type %T", item)}
	}
}

func tableSymbol(t *parser.TableRef) *Symbol {
	if t.Alias == nil {
		return NewSymbol(TableSymbol, t.Name)
	}
	return NewAliasedSymbol(TableSymbol, t.Name, NewSymbol(TableAliasSymbol, t.Alias.Text))
}

// buildJoin resolves a join. 'driving' is the first FROM item, which is the
// join's left side.
func buildJoin(driving *Query, join *parser.JoinItem) (*JoinOnClause, error) {
	if join == nil || join.Table == nil {
		return nil, &SemanticError{Construct: "INNER JOIN", Reason: "missing table"}
	}
	j := &JoinOnClause{
		joined:     tableSymbol(join.Table),
		conditions: make([]JoinCondition, len(join.Conditions)),
	}
	switch {
	case driving.IsJustATable():
		j.table = driving.table.clone()
	case driving.alias != nil:
		j.table = NewSymbol(TableSymbol, driving.alias.name)
	}
	for i, cond := range join.Conditions {
		if cond == nil {
			return nil, &SemanticError{Construct: "ON", Offset: join.Offset, Reason: "missing condition"}
		}
		left, err := columnSymbol(join.Offset, "ON", cond.Left)
		if err != nil {
			return nil, err
		}
		right, err := columnSymbol(join.Offset, "ON", cond.Right)
		if err != nil {
			return nil, err
		}
		j.conditions[i] = JoinCondition{left: left, right: right}
	}
	return j, nil
}

func columnSymbol(offset int, construct string, p *parser.Path) (*Symbol, error) {
	if p == nil {
		return nil, &SemanticError{Construct: construct, Offset: offset, Reason: "missing column"}
	}
	return NewSymbol(ColumnSymbol, p.Text), nil
}

func buildExpr(e parser.Expr) (Expression, error) {
	switch e := e.(type) {
	case *parser.Path:
		return NewColumn(NewSymbol(ColumnSymbol, e.Text)), nil
	case *parser.Call:
		args := make([]Expression, len(e.Args))
		for i, arg := range e.Args {
			var err error
			if args[i], err = buildExpr(arg); err != nil {
				return nil, err
			}
		}
		return NewFunction(NewSymbol(FunctionSymbol, e.Name), args...), nil
	case *parser.Binary:
		op, ok := operatorsBySymbol[e.Op]
		if !ok {
			return nil, &SemanticError{Construct: "operator", Offset: e.Offset,
				Reason: fmt.Sprintf("unknown operator %q", e.Op)}
		}
		left, err := buildExpr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := buildExpr(e.Right)
		if err != nil {
			return nil, err
		}
		return NewBinaryOp(op, left, right), nil
	case *parser.Int:
		return NewIntLiteral(e.Value), nil
	case *parser.Str:
		return NewStringLiteral(e.Value), nil
	case *parser.Paren:
		return buildExpr(e.Inner)
	case nil:
		return nil, &SemanticError{Construct: "expression", Reason: "missing expression"}
	default:
		return nil, &SemanticError{Construct: "expression", Offset: e.Pos(),
			Reason: fmt.Sprintf("unexpected node type %T", e)}
	}
}
