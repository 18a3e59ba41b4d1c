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

// The parse tree mirrors the DRQL grammar. It is built once by the grammar
// callbacks and not modified afterwards. Every node records the byte offset
// in the query text where it starts, so later stages can report positions.

// Statement is a parsed SELECT query.
type Statement struct {
	Offset  int
	Columns []*ResultCol
	// From has at least one item.
	From  []FromItem
	Joins []*JoinItem
	// Where is nil if there's no WHERE clause.
	Where   Expr
	GroupBy []*Path
	// Having is nil if there's no HAVING clause.
	Having  Expr
	OrderBy []*OrderItem
	// Limit is nil if there's no LIMIT clause.
	Limit *Int
}

// ResultCol is one item of the SELECT list.
type ResultCol struct {
	Expr Expr
	// Within is nil if there's no WITHIN modifier.
	Within *Within
	// Alias is nil if there's no AS.
	Alias *Name
}

// Within is a WITHIN RECORD or WITHIN path modifier. Path is nil for WITHIN
// RECORD.
type Within struct {
	Offset int
	Record bool
	Path   *Path
}

// Name is a plain identifier, used for aliases.
type Name struct {
	Offset int
	Text   string
}

// FromItem is a *TableRef or a *SubSelect.
type FromItem interface {
	fromItem()
	Pos() int
}

// TableRef names a table, either as an identifier or bracketed like [Table1].
// Name keeps the brackets.
type TableRef struct {
	Offset int
	Name   string
	Alias  *Name
}

// SubSelect is a parenthesized query used as a FROM item.
type SubSelect struct {
	Offset int
	Query  *Statement
	Alias  *Name
}

func (*TableRef) fromItem()  {}
func (*SubSelect) fromItem() {}

// Pos returns the offset of the table name.
func (t *TableRef) Pos() int { return t.Offset }

// Pos returns the offset of the opening parenthesis.
func (s *SubSelect) Pos() int { return s.Offset }

// JoinItem is an INNER JOIN clause.
type JoinItem struct {
	Offset     int
	Table      *TableRef
	Conditions []*JoinCond
}

// JoinCond is one 'left = right' condition of a JOIN's ON list.
type JoinCond struct {
	Left  *Path
	Right *Path
}

// OrderItem is one ORDER BY item.
type OrderItem struct {
	Path *Path
	Desc bool
}

// Expr is one of *Path, *Call, *Binary, *Int, *Str or *Paren.
type Expr interface {
	exprNode()
	// Pos returns the offset of the node in the query text.
	Pos() int
}

// Path is a column path such as r1.m2.f3.
type Path struct {
	Offset int
	Text   string
}

// Call is a function call like COUNT(f1).
type Call struct {
	Offset int
	Name   string
	Args   []Expr
}

// Binary is a comparison or a boolean connective. Op is the operator as
// written for comparisons, and the upper-cased keyword for AND and OR.
// Offset is the offset of the operator.
type Binary struct {
	Offset int
	Op     string
	Left   Expr
	Right  Expr
}

// Int is an integer literal.
type Int struct {
	Offset int
	Value  uint64
}

// Str is a string literal. Value is decoded and normalized.
type Str struct {
	Offset int
	Value  string
}

// Paren is a parenthesized expression.
type Paren struct {
	Offset int
	Inner  Expr
}

func (*Path) exprNode()   {}
func (*Call) exprNode()   {}
func (*Binary) exprNode() {}
func (*Int) exprNode()    {}
func (*Str) exprNode()    {}
func (*Paren) exprNode()  {}

// Pos implements Expr.
func (e *Path) Pos() int { return e.Offset }

// Pos implements Expr.
func (e *Call) Pos() int { return e.Offset }

// Pos implements Expr.
func (e *Binary) Pos() int { return e.Offset }

// Pos implements Expr.
func (e *Int) Pos() int { return e.Offset }

// Pos implements Expr.
func (e *Str) Pos() int { return e.Offset }

// Pos implements Expr.
func (e *Paren) Pos() int { return e.Offset }
