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
	"encoding/json"
)

// The JSON encoding of the model is used by the HTTP API and the command line
// client. It isn't meant to be decoded back into a model; use the query text
// from Query.String() for that.

type jsonSymbol struct {
	Name  string  `json:"name"`
	Kind  string  `json:"kind"`
	Alias *Symbol `json:"alias,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (s *Symbol) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonSymbol{Name: s.name, Kind: s.kind.String(), Alias: s.alias})
}

type jsonExpr struct {
	Type     string       `json:"type"`
	Symbol   *Symbol      `json:"symbol,omitempty"`
	Args     []Expression `json:"args,omitempty"`
	Operator string       `json:"operator,omitempty"`
	Left     Expression   `json:"left,omitempty"`
	Right    Expression   `json:"right,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (c *Column) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonExpr{Type: "column", Symbol: c.symbol})
}

// MarshalJSON implements json.Marshaler.
func (f *Function) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonExpr{Type: "function", Symbol: f.symbol, Args: f.args})
}

// MarshalJSON implements json.Marshaler.
func (op *BinaryOp) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonExpr{
		Type:     "binary",
		Operator: op.op.Name(),
		Left:     op.left,
		Right:    op.right,
	})
}

// MarshalJSON implements json.Marshaler. Values are always present, even 0
// and "".
func (l *Literal) MarshalJSON() ([]byte, error) {
	type literal struct {
		Type  string      `json:"type"`
		Value interface{} `json:"value"`
	}
	if l.kind == IntLiteral {
		return json.Marshal(literal{Type: "integer", Value: l.i})
	}
	return json.Marshal(literal{Type: "string", Value: l.s})
}

// MarshalJSON implements json.Marshaler.
func (rc *ResultColumn) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Expression  Expression `json:"expression"`
		Alias       *Symbol    `json:"alias,omitempty"`
		Scope       string     `json:"scope"`
		ColumnScope *Symbol    `json:"columnScope,omitempty"`
	}{rc.expr, rc.alias, rc.scope.String(), rc.columnScope})
}

// MarshalJSON implements json.Marshaler.
func (j *JoinOnClause) MarshalJSON() ([]byte, error) {
	type condition struct {
		Left  *Symbol `json:"left"`
		Right *Symbol `json:"right"`
	}
	conds := make([]condition, len(j.conditions))
	for i, c := range j.conditions {
		conds[i] = condition{c.left, c.right}
	}
	return json.Marshal(struct {
		Table       *Symbol     `json:"table,omitempty"`
		JoinedTable *Symbol     `json:"joinedTable"`
		Conditions  []condition `json:"conditions"`
	}{j.table, j.joined, conds})
}

// MarshalJSON implements json.Marshaler.
func (o OrderItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Symbol    *Symbol `json:"symbol"`
		Direction string  `json:"direction"`
	}{o.symbol, o.direction.String()})
}

// MarshalJSON implements json.Marshaler. A query that's just a table encodes
// as {"table": ...}.
func (q *Query) MarshalJSON() ([]byte, error) {
	if q.IsJustATable() {
		return json.Marshal(struct {
			Table *Symbol `json:"table"`
		}{q.table})
	}
	return json.Marshal(struct {
		Alias         *Symbol         `json:"alias,omitempty"`
		ResultColumns []*ResultColumn `json:"resultColumns"`
		From          []*Query        `json:"from"`
		Joins         []*JoinOnClause `json:"joins,omitempty"`
		Where         Expression      `json:"where,omitempty"`
		GroupBy       []*Symbol       `json:"groupBy"`
		Having        Expression      `json:"having,omitempty"`
		OrderBy       []OrderItem     `json:"orderBy"`
		Limit         *uint64         `json:"limit,omitempty"`
	}{q.alias, q.resultColumns, q.from, q.joins, q.where, q.groupBy, q.having, q.orderBy, q.limit})
}
