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

// Expression is one of *Column, *Function, *BinaryOp or *Literal. Consumers
// are expected to type switch over these and handle each one.
type Expression interface {
	isExpression()
	cmp.Key
	String() string
}

var _ = []Expression{
	(*Column)(nil),
	(*Function)(nil),
	(*BinaryOp)(nil),
	(*Literal)(nil),
}

// Column is a reference to a column.
type Column struct {
	symbol *Symbol
}

// NewColumn returns a Column expression for the given COLUMN symbol.
func NewColumn(symbol *Symbol) *Column {
	return &Column{symbol: symbol}
}

// Symbol returns the column's COLUMN symbol.
func (c *Column) Symbol() *Symbol {
	return c.symbol
}

// Function is a function call. The number of arguments isn't checked.
type Function struct {
	symbol *Symbol
	args   []Expression
}

// NewFunction returns a call of the FUNCTION symbol with the given arguments.
func NewFunction(symbol *Symbol, args ...Expression) *Function {
	return &Function{symbol: symbol, args: args}
}

// Symbol returns the FUNCTION symbol naming the function.
func (f *Function) Symbol() *Symbol {
	return f.symbol
}

// Args returns the arguments in the order written.
func (f *Function) Args() []Expression {
	return append([]Expression(nil), f.args...)
}

// BinaryOp is a comparison or a boolean connective.
type BinaryOp struct {
	op    Operator
	left  Expression
	right Expression
}

// NewBinaryOp returns 'left op right'.
func NewBinaryOp(op Operator, left, right Expression) *BinaryOp {
	return &BinaryOp{op: op, left: left, right: right}
}

// Operator returns the operator.
func (b *BinaryOp) Operator() Operator {
	return b.op
}

// Left returns the left operand.
func (b *BinaryOp) Left() Expression {
	return b.left
}

// Right returns the right operand.
func (b *BinaryOp) Right() Expression {
	return b.right
}

// LiteralKind is the type of a Literal.
type LiteralKind int

const (
	// IntLiteral is an unsigned integer.
	IntLiteral LiteralKind = iota + 1
	// StringLiteral is a quoted string.
	StringLiteral
)

func (k LiteralKind) String() string {
	switch k {
	case IntLiteral:
		return "INTEGER"
	case StringLiteral:
		return "STRING"
	default:
		return fmt.Sprintf("Unknown LiteralKind (%d)", int(k))
	}
}

// Literal is a constant value.
type Literal struct {
	kind LiteralKind
	i    uint64
	s    string
}

// NewIntLiteral returns an integer literal.
func NewIntLiteral(v uint64) *Literal {
	return &Literal{kind: IntLiteral, i: v}
}

// NewStringLiteral returns a string literal.
func NewStringLiteral(v string) *Literal {
	return &Literal{kind: StringLiteral, s: v}
}

// Kind returns the literal's type.
func (l *Literal) Kind() LiteralKind {
	return l.kind
}

// Int returns the value of an IntLiteral, and 0 for other kinds.
func (l *Literal) Int() uint64 {
	return l.i
}

// Text returns the value of a StringLiteral, and "" for other kinds.
func (l *Literal) Text() string {
	return l.s
}

func (*Column) isExpression()   {}
func (*Function) isExpression() {}
func (*BinaryOp) isExpression() {}
func (*Literal) isExpression()  {}

// Operator is a binary operator.
type Operator int

// The operators, comparisons first.
const (
	Equal Operator = iota + 1
	GreaterThan
	LessThan
	GreaterOrEqual
	LessOrEqual
	NotEqual
	And
	Or
)

var operatorInfo = map[Operator]struct {
	name   string
	symbol string
	prec   int
}{
	Equal:          {"EQUAL", "=", 3},
	GreaterThan:    {"GREATER_THAN", ">", 3},
	LessThan:       {"LESS_THAN", "<", 3},
	GreaterOrEqual: {"GREATER_OR_EQUAL", ">=", 3},
	LessOrEqual:    {"LESS_OR_EQUAL", "<=", 3},
	NotEqual:       {"NOT_EQUAL", "<>", 3},
	And:            {"AND", "AND", 2},
	Or:             {"OR", "OR", 1},
}

// operatorsBySymbol maps the operators as written in queries. "!=" is another
// way to write "<>".
var operatorsBySymbol = map[string]Operator{
	"=":   Equal,
	">":   GreaterThan,
	"<":   LessThan,
	">=":  GreaterOrEqual,
	"<=":  LessOrEqual,
	"<>":  NotEqual,
	"!=":  NotEqual,
	"AND": And,
	"OR":  Or,
}

// Name returns the operator's name, such as GREATER_THAN.
func (op Operator) Name() string {
	if info, ok := operatorInfo[op]; ok {
		return info.name
	}
	return fmt.Sprintf("Unknown Operator (%d)", int(op))
}

// String returns the operator as written in a query, such as ">".
func (op Operator) String() string {
	if info, ok := operatorInfo[op]; ok {
		return info.symbol
	}
	return op.Name()
}

// IsComparison returns true for the comparison operators, and false for AND
// and OR.
func (op Operator) IsComparison() bool {
	return operatorInfo[op].prec == 3
}

// precedence returns how tightly the expression binds; higher binds tighter.
func precedence(e Expression) int {
	if b, ok := e.(*BinaryOp); ok {
		return operatorInfo[b.op].prec
	}
	return 4
}

// Walk calls fn for 'e' and then, if fn returned true, walks each of its
// children in order.
func Walk(e Expression, fn func(Expression) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch e := e.(type) {
	case *Function:
		for _, arg := range e.args {
			Walk(arg, fn)
		}
	case *BinaryOp:
		Walk(e.left, fn)
		Walk(e.right, fn)
	}
}

// Key implements cmp.Key.
func (c *Column) Key(b *strings.Builder) {
	b.WriteString(c.symbol.name)
}

// Key implements cmp.Key.
func (f *Function) Key(b *strings.Builder) {
	b.WriteString(f.symbol.name)
	b.WriteByte('(')
	for i, arg := range f.args {
		if i > 0 {
			b.WriteString(", ")
		}
		arg.Key(b)
	}
	b.WriteByte(')')
}

// Key implements cmp.Key. Operands are parenthesized where needed so the
// text parses back to the same tree.
func (op *BinaryOp) Key(b *strings.Builder) {
	prec := operatorInfo[op.op].prec
	leftParens := precedence(op.left) < prec || (precedence(op.left) == prec && op.op.IsComparison())
	writeOperand(b, op.left, leftParens)
	b.WriteByte(' ')
	b.WriteString(op.op.String())
	b.WriteByte(' ')
	writeOperand(b, op.right, precedence(op.right) <= prec)
}

func writeOperand(b *strings.Builder, e Expression, parens bool) {
	if parens {
		b.WriteByte('(')
	}
	e.Key(b)
	if parens {
		b.WriteByte(')')
	}
}

// Key implements cmp.Key.
func (l *Literal) Key(b *strings.Builder) {
	switch l.kind {
	case IntLiteral:
		b.WriteString(strconv.FormatUint(l.i, 10))
	case StringLiteral:
		b.WriteByte('\'')
		b.WriteString(strings.Replace(l.s, "'", "''", -1))
		b.WriteByte('\'')
	}
}

func (c *Column) String() string   { return cmp.GetKey(c) }
func (f *Function) String() string { return cmp.GetKey(f) }
func (op *BinaryOp) String() string { return cmp.GetKey(op) }
func (l *Literal) String() string  { return cmp.GetKey(l) }
