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
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Operators(t *testing.T) {
	type test struct {
		op         Operator
		name       string
		str        string
		comparison bool
	}
	tests := []test{
		{Equal, "EQUAL", "=", true},
		{GreaterThan, "GREATER_THAN", ">", true},
		{LessThan, "LESS_THAN", "<", true},
		{GreaterOrEqual, "GREATER_OR_EQUAL", ">=", true},
		{LessOrEqual, "LESS_OR_EQUAL", "<=", true},
		{NotEqual, "NOT_EQUAL", "<>", true},
		{And, "AND", "AND", false},
		{Or, "OR", "OR", false},
		{Operator(0), "Unknown Operator (0)", "Unknown Operator (0)", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.name, test.op.Name())
			assert.Equal(t, test.str, test.op.String())
			assert.Equal(t, test.comparison, test.op.IsComparison())
		})
	}
	assert.Equal(t, NotEqual, operatorsBySymbol["!="])
}

func Test_ExpressionString(t *testing.T) {
	a := func() Expression { return NewColumn(NewSymbol(ColumnSymbol, "a")) }
	one := func() Expression { return NewIntLiteral(1) }
	eq := func() Expression { return NewBinaryOp(Equal, a(), one()) }
	type test struct {
		expr Expression
		exp  string
	}
	tests := []test{
		{a(), "a"},
		{NewStringLiteral("o'k"), "'o''k'"},
		{NewStringLiteral(""), "''"},
		{NewFunction(NewSymbol(FunctionSymbol, "F")), "F()"},
		{NewFunction(NewSymbol(FunctionSymbol, "F"), a(), one()), "F(a, 1)"},
		{NewBinaryOp(Or, NewBinaryOp(Or, eq(), eq()), eq()), "a = 1 OR a = 1 OR a = 1"},
		{NewBinaryOp(Or, eq(), NewBinaryOp(Or, eq(), eq())), "a = 1 OR (a = 1 OR a = 1)"},
		{NewBinaryOp(And, NewBinaryOp(Or, eq(), eq()), eq()), "(a = 1 OR a = 1) AND a = 1"},
		{NewBinaryOp(Or, NewBinaryOp(And, eq(), eq()), eq()), "a = 1 AND a = 1 OR a = 1"},
		{NewBinaryOp(Equal, eq(), one()), "(a = 1) = 1"},
		{NewBinaryOp(Equal, one(), eq()), "1 = (a = 1)"},
	}
	for _, test := range tests {
		t.Run(test.exp, func(t *testing.T) {
			assert.Equal(t, test.exp, test.expr.String())
		})
	}
}

func Test_Literal(t *testing.T) {
	i := NewIntLiteral(42)
	assert.Equal(t, IntLiteral, i.Kind())
	assert.Equal(t, uint64(42), i.Int())
	assert.Equal(t, "", i.Text())
	s := NewStringLiteral("x")
	assert.Equal(t, StringLiteral, s.Kind())
	assert.Equal(t, "x", s.Text())
	assert.Equal(t, uint64(0), s.Int())
	assert.Equal(t, "INTEGER", IntLiteral.String())
	assert.Equal(t, "STRING", StringLiteral.String())
}

func Test_Walk(t *testing.T) {
	q := mustBuild(t, "SELECT a FROM t WHERE F(b, 2) = 'c' AND (d > 1 OR e < 2)")
	var visited []string
	Walk(q.Where(), func(e Expression) bool {
		switch e := e.(type) {
		case *Column:
			visited = append(visited, e.Symbol().Name())
		case *Function:
			visited = append(visited, e.Symbol().Name()+"()")
		case *BinaryOp:
			visited = append(visited, e.Operator().Name())
		case *Literal:
			visited = append(visited, e.String())
		}
		return true
	})
	assert.Equal(t, []string{"AND", "EQUAL", "F()", "b", "2", "'c'", "OR",
		"GREATER_THAN", "d", "1", "LESS_THAN", "e", "2"}, visited)

	visited = nil
	Walk(q.Where(), func(e Expression) bool {
		if op, ok := e.(*BinaryOp); ok {
			visited = append(visited, op.Operator().Name())
			return op.Operator() == And
		}
		return false
	})
	assert.Equal(t, []string{"AND", "EQUAL", "OR"}, visited)

	Walk(nil, func(Expression) bool {
		t.Error("called for nil expression")
		return true
	})
}

func Test_FunctionArgsCopy(t *testing.T) {
	fn := NewFunction(NewSymbol(FunctionSymbol, "F"), NewIntLiteral(1))
	args := fn.Args()
	args[0] = nil
	assert.NotNil(t, fn.Args()[0])
}

func Test_AliasedSymbol(t *testing.T) {
	alias := NewSymbol(ColumnAliasSymbol, "x")
	s := NewAliasedSymbol(ColumnSymbol, "a.b", alias)
	assert.Equal(t, "a.b", s.String())
	assert.Same(t, alias, s.Alias())
	assert.Panics(t, func() {
		NewAliasedSymbol(ColumnSymbol, "c", s)
	})
	clone := s.clone()
	assert.Equal(t, s, clone)
	assert.NotSame(t, s.Alias(), clone.Alias())
}
