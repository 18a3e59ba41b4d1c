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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/ebay/drql/query"
	"github.com/ebay/drql/query/lexer"
	"github.com/ebay/drql/query/semantic"
	"github.com/ebay/drql/util/table"
	"github.com/pkg/errors"
)

// readQuery returns the query given on the command line, or standard input if
// none was given or it's "-".
func readQuery(options *options) (string, error) {
	if options.QueryString != "" && options.QueryString != "-" {
		return options.QueryString, nil
	}
	b, err := ioutil.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.Wrap(err, "unable to read query from stdin")
	}
	return string(b), nil
}

func parse(ctx context.Context, engine *query.Engine, w io.Writer, options *options) error {
	text, err := readQuery(options)
	if err != nil {
		return err
	}
	model, err := engine.Parse(ctx, text, query.Options{Debug: options.Debug, DebugOut: w})
	if err != nil {
		return errors.New(describeError(text, err))
	}
	if options.JSON {
		b, err := json.MarshalIndent(model, "", "  ")
		if err != nil {
			return errors.Wrap(err, "unable to encode model")
		}
		fmt.Fprintf(w, "%s\n", b)
		return nil
	}
	describe(w, model)
	return nil
}

// describe writes a human readable summary of the model to w.
func describe(w io.Writer, q *semantic.Query) {
	fmt.Fprintf(w, "Query: %v\n\n", q)
	rows := [][]string{{"Column", "Scope", "Within", "Alias"}}
	for _, rc := range q.ResultColumns() {
		within, alias := "", ""
		if rc.ColumnScope() != nil {
			within = rc.ColumnScope().Name()
		}
		if rc.Alias() != nil {
			alias = rc.Alias().Name()
		}
		rows = append(rows, []string{rc.Expression().String(), rc.Scope().String(), within, alias})
	}
	table.PrettyPrint(w, rows, table.HeaderRow)
	fmt.Fprintln(w)
	from := make([]string, len(q.From()))
	for i, item := range q.From() {
		if item.IsJustATable() {
			from[i] = item.Table().Name()
			if item.Table().Alias() != nil {
				from[i] += " AS " + item.Table().Alias().Name()
			}
		} else {
			from[i] = "(" + item.String() + ")"
			if item.Alias() != nil {
				from[i] += " AS " + item.Alias().Name()
			}
		}
	}
	fmt.Fprintf(w, "From:     %s\n", strings.Join(from, ", "))
	for _, join := range q.Joins() {
		fmt.Fprintf(w, "Join:     %v\n", join)
	}
	if q.Where() != nil {
		fmt.Fprintf(w, "Where:    %v\n", q.Where())
	}
	if groupBy := q.GroupBy(); len(groupBy) > 0 {
		names := make([]string, len(groupBy))
		for i, s := range groupBy {
			names[i] = s.Name()
		}
		fmt.Fprintf(w, "Group By: %s\n", strings.Join(names, ", "))
	}
	if q.Having() != nil {
		fmt.Fprintf(w, "Having:   %v\n", q.Having())
	}
	if items := q.OrderItems(); len(items) > 0 {
		names := make([]string, len(items))
		for i, o := range items {
			names[i] = o.Symbol().Name() + " " + o.Direction().String()
		}
		fmt.Fprintf(w, "Order By: %s\n", strings.Join(names, ", "))
	}
	if limit, ok := q.Limit(); ok {
		fmt.Fprintf(w, "Limit:    %d\n", limit)
	}
}

// describeError returns the error message followed by the line of the query
// it refers to, with a caret under the offending column.
func describeError(text string, err error) string {
	pos, ok := query.ErrorPosition(text, err)
	if !ok {
		return err.Error()
	}
	lines := strings.Split(text, "\n")
	if pos.Line > len(lines) {
		return err.Error()
	}
	line := strings.Replace(lines[pos.Line-1], "\t", " ", -1)
	return fmt.Sprintf("%v\n  %s\n  %s^", err, line, strings.Repeat(" ", pos.Column-1))
}

func tokens(w io.Writer, options *options) error {
	text, err := readQuery(options)
	if err != nil {
		return err
	}
	toks, err := lexer.Tokenize(text)
	if err != nil {
		return errors.New(describeError(text, err))
	}
	rows := [][]string{{"Offset", "Line:Col", "Kind", "Text"}}
	for _, tok := range toks {
		pos := lexer.PositionOf(text, tok.Offset)
		rows = append(rows, []string{
			strconv.Itoa(tok.Offset),
			fmt.Sprintf("%d:%d", pos.Line, pos.Column),
			tok.Kind.String(),
			tok.String(),
		})
	}
	table.PrettyPrint(w, rows, table.HeaderRow)
	fmtr.Fprintf(w, "\n%d tokens.\n", len(toks))
	return nil
}
