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
	"strconv"
	"strings"

	"github.com/ebay/drql/util/cmp"
)

// Query is the semantic model of a DRQL query. A Query is either just a table
// (as found in a FROM item) or a full SELECT with its own clauses; the
// IsJustATable method tells them apart.
type Query struct {
	// table is set only for a query that's just a table.
	table *Symbol
	// alias is the TABLE_ALIAS symbol of a sub-select used as a FROM item.
	alias         *Symbol
	resultColumns []*ResultColumn
	from          []*Query
	joins         []*JoinOnClause
	where         Expression
	groupBy       []*Symbol
	having        Expression
	orderBy       []OrderItem
	limit         *uint64
}

// NewTable returns a Query that's just the given TABLE symbol.
func NewTable(table *Symbol) *Query {
	return &Query{table: table}
}

// IsJustATable returns true if the query is a plain table reference.
func (q *Query) IsJustATable() bool {
	return q.table != nil
}

// Table returns the TABLE symbol of a query that's just a table, and nil
// otherwise.
func (q *Query) Table() *Symbol {
	return q.table
}

// Alias returns the TABLE_ALIAS symbol of a sub-select, or nil. A plain table's
// alias is found on its Table symbol.
func (q *Query) Alias() *Symbol {
	return q.alias
}

// ResultColumns returns the SELECT list in the order written.
func (q *Query) ResultColumns() []*ResultColumn {
	return append([]*ResultColumn(nil), q.resultColumns...)
}

// From returns the FROM items in the order written.
func (q *Query) From() []*Query {
	return append([]*Query(nil), q.from...)
}

// Where returns the WHERE condition, or nil if there isn't one.
func (q *Query) Where() Expression {
	return q.where
}

// GroupBy returns the GROUP BY columns. The result is empty but non-nil if
// there's no GROUP BY clause.
func (q *Query) GroupBy() []*Symbol {
	return append(make([]*Symbol, 0, len(q.groupBy)), q.groupBy...)
}

// Having returns the HAVING condition, or nil if there isn't one.
func (q *Query) Having() Expression {
	return q.having
}

// JoinOnClause returns the first INNER JOIN, or nil if there isn't one.
func (q *Query) JoinOnClause() *JoinOnClause {
	if len(q.joins) == 0 {
		return nil
	}
	return q.joins[0]
}

// Joins returns all the INNER JOINs in the order written.
func (q *Query) Joins() []*JoinOnClause {
	return append([]*JoinOnClause(nil), q.joins...)
}

// OrderBy returns the ORDER BY columns. The result is empty but non-nil if
// there's no ORDER BY clause.
func (q *Query) OrderBy() []*Symbol {
	res := make([]*Symbol, len(q.orderBy))
	for i := range q.orderBy {
		res[i] = q.orderBy[i].symbol
	}
	return res
}

// OrderItems is like OrderBy but includes the sort direction of each column.
func (q *Query) OrderItems() []OrderItem {
	return append(make([]OrderItem, 0, len(q.orderBy)), q.orderBy...)
}

// Limit returns the LIMIT value. It returns false if there's no LIMIT clause.
func (q *Query) Limit() (uint64, bool) {
	if q.limit == nil {
		return 0, false
	}
	return *q.limit, true
}

// AliasedColumn returns the first result column named 'alias' with AS, or nil
// if there's none.
func (q *Query) AliasedColumn(alias string) *ResultColumn {
	for _, rc := range q.resultColumns {
		if rc.alias != nil && rc.alias.name == alias {
			return rc
		}
	}
	return nil
}

// Scope is the level of a nested record that a result column operates over.
type Scope int

const (
	// FullScope is the default: the expression ranges over the full result.
	FullScope Scope = iota + 1
	// ColumnScope ranges over the sub-record named by ColumnScope().
	ColumnScope
	// RecordScope ranges over each top-level record.
	RecordScope
)

func (s Scope) String() string {
	switch s {
	case FullScope:
		return "FULL"
	case ColumnScope:
		return "COLUMN"
	case RecordScope:
		return "RECORD"
	default:
		return fmt.Sprintf("Unknown Scope (%d)", int(s))
	}
}

// ResultColumn is one item of a SELECT list.
type ResultColumn struct {
	expr        Expression
	alias       *Symbol
	scope       Scope
	columnScope *Symbol
}

// Expression returns the projected expression.
func (rc *ResultColumn) Expression() Expression {
	return rc.expr
}

// Alias returns the COLUMN_ALIAS symbol given with AS, or nil.
func (rc *ResultColumn) Alias() *Symbol {
	return rc.alias
}

// Scope returns the declared scope, which is FullScope without WITHIN.
func (rc *ResultColumn) Scope() Scope {
	return rc.scope
}

// ColumnScope returns the path of WITHIN path, and nil for other scopes.
func (rc *ResultColumn) ColumnScope() *Symbol {
	return rc.columnScope
}

// JoinOnClause is an INNER JOIN with its equality conditions.
type JoinOnClause struct {
	table      *Symbol
	joined     *Symbol
	conditions []JoinCondition
}

// Table returns the TABLE symbol of the driving table: the first FROM item.
// It's nil if that item isn't a plain table or an aliased sub-select.
func (j *JoinOnClause) Table() *Symbol {
	return j.table
}

// JoinedTable returns the TABLE symbol of the table after JOIN.
func (j *JoinOnClause) JoinedTable() *Symbol {
	return j.joined
}

// Conditions returns the ON conditions in the order written.
func (j *JoinOnClause) Conditions() []JoinCondition {
	return append([]JoinCondition(nil), j.conditions...)
}

// JoinCondition is 'left = right' in a JOIN's ON list.
type JoinCondition struct {
	left  *Symbol
	right *Symbol
}

// Left returns the COLUMN symbol left of '='.
func (c JoinCondition) Left() *Symbol {
	return c.left
}

// Right returns the COLUMN symbol right of '='.
func (c JoinCondition) Right() *Symbol {
	return c.right
}

// Direction is the sort order of an ORDER BY item.
type Direction int

const (
	// Ascending is the default order.
	Ascending Direction = iota + 1
	// Descending is requested with DESC.
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ASC"
	case Descending:
		return "DESC"
	default:
		return fmt.Sprintf("Unknown Direction (%d)", int(d))
	}
}

// OrderItem is a column of ORDER BY with its direction.
type OrderItem struct {
	symbol    *Symbol
	direction Direction
}

// Symbol returns the COLUMN symbol to sort by.
func (o OrderItem) Symbol() *Symbol {
	return o.symbol
}

// Direction returns the sort direction.
func (o OrderItem) Direction() Direction {
	return o.direction
}

// String returns the query as canonical DRQL text. Parsing that text again
// results in an equal model.
func (q *Query) String() string {
	return cmp.GetKey(q)
}

// Key implements cmp.Key.
func (q *Query) Key(b *strings.Builder) {
	if q.IsJustATable() {
		q.table.Key(b)
		return
	}
	b.WriteString("SELECT ")
	for i, rc := range q.resultColumns {
		if i > 0 {
			b.WriteString(", ")
		}
		rc.Key(b)
	}
	b.WriteString(" FROM ")
	for i, item := range q.from {
		if i > 0 {
			b.WriteString(", ")
		}
		if item.IsJustATable() {
			item.Key(b)
			continue
		}
		b.WriteByte('(')
		item.Key(b)
		b.WriteByte(')')
		if item.alias != nil {
			b.WriteString(" AS ")
			b.WriteString(item.alias.name)
		}
	}
	for _, j := range q.joins {
		b.WriteByte(' ')
		j.Key(b)
	}
	if q.where != nil {
		b.WriteString(" WHERE ")
		q.where.Key(b)
	}
	if len(q.groupBy) > 0 {
		b.WriteString(" GROUP BY ")
		for i, s := range q.groupBy {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(s.name)
		}
		if q.having != nil {
			b.WriteString(" HAVING ")
			q.having.Key(b)
		}
	}
	if len(q.orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		for i, o := range q.orderBy {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(o.symbol.name)
			if o.direction == Descending {
				b.WriteString(" DESC")
			}
		}
	}
	if q.limit != nil {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.FormatUint(*q.limit, 10))
	}
}

func (rc *ResultColumn) String() string {
	return cmp.GetKey(rc)
}

// Key implements cmp.Key.
func (rc *ResultColumn) Key(b *strings.Builder) {
	rc.expr.Key(b)
	switch rc.scope {
	case RecordScope:
		b.WriteString(" WITHIN RECORD")
	case ColumnScope:
		b.WriteString(" WITHIN ")
		b.WriteString(rc.columnScope.name)
	}
	if rc.alias != nil {
		b.WriteString(" AS ")
		b.WriteString(rc.alias.name)
	}
}

func (j *JoinOnClause) String() string {
	return cmp.GetKey(j)
}

// Key implements cmp.Key.
func (j *JoinOnClause) Key(b *strings.Builder) {
	b.WriteString("INNER JOIN ")
	j.joined.Key(b)
	b.WriteString(" ON ")
	for i, c := range j.conditions {
		if i > 0 {
			b.WriteString(" AND ")
		}
		b.WriteString(c.left.name)
		b.WriteString(" = ")
		b.WriteString(c.right.name)
	}
}
