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

// Package semantic defines the DRQL query model and builds it from a parse
// tree. The model resolves every identifier into a Symbol of a fixed kind and
// records each result column's scope over nested records.
//
// All model values are immutable once built. Accessors that return slices
// return copies, so callers can't modify a model, and a model can be shared
// freely between goroutines.
package semantic

import (
	"fmt"
	"strings"
)

// SymbolKind is the kind of thing a Symbol names.
type SymbolKind int

const (
	// TableSymbol names a table in a FROM item or a JOIN.
	TableSymbol SymbolKind = iota + 1
	// ColumnSymbol names a column, possibly a nested one like r1.m2.f3.
	ColumnSymbol
	// ColumnAliasSymbol is the name given to a result column with AS.
	ColumnAliasSymbol
	// TableAliasSymbol is the name given to a FROM item with AS.
	TableAliasSymbol
	// FunctionSymbol names the function of a function call.
	FunctionSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case TableSymbol:
		return "TABLE"
	case ColumnSymbol:
		return "COLUMN"
	case ColumnAliasSymbol:
		return "COLUMN_ALIAS"
	case TableAliasSymbol:
		return "TABLE_ALIAS"
	case FunctionSymbol:
		return "FUNCTION"
	default:
		return fmt.Sprintf("Unknown SymbolKind (%d)", int(k))
	}
}

// Symbol is a named reference with a fixed kind. The name is the text as
// written in the query, including dots in nested paths and the brackets of
// bracketed table names.
type Symbol struct {
	name  string
	kind  SymbolKind
	alias *Symbol
}

// NewSymbol returns a Symbol of the given kind with no alias.
func NewSymbol(kind SymbolKind, name string) *Symbol {
	return &Symbol{name: name, kind: kind}
}

// NewAliasedSymbol returns a Symbol of the given kind that is known by
// 'alias' in the rest of the query. The alias must not have an alias itself.
func NewAliasedSymbol(kind SymbolKind, name string, alias *Symbol) *Symbol {
	if alias != nil && alias.alias != nil {
		panic(fmt.Sprintf("alias %v of %v has its own alias", alias.name, name))
	}
	return &Symbol{name: name, kind: kind, alias: alias}
}

// Name returns the symbol's text.
func (s *Symbol) Name() string {
	return s.name
}

// Kind returns what the symbol names.
func (s *Symbol) Kind() SymbolKind {
	return s.kind
}

// Alias returns the symbol's alias, or nil if it doesn't have one.
func (s *Symbol) Alias() *Symbol {
	return s.alias
}

// clone returns a deep copy of s, for use in a different part of the model.
func (s *Symbol) clone() *Symbol {
	if s == nil {
		return nil
	}
	return &Symbol{name: s.name, kind: s.kind, alias: s.alias.clone()}
}

// Key implements cmp.Key.
func (s *Symbol) Key(b *strings.Builder) {
	b.WriteString(s.name)
	if s.alias != nil {
		b.WriteString(" AS ")
		b.WriteString(s.alias.name)
	}
}

func (s *Symbol) String() string {
	return s.name
}
