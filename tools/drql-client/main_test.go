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
	"strings"
	"testing"

	"github.com/ebay/drql/config"
	"github.com/ebay/drql/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_describe(t *testing.T) {
	model, err := query.Parse("SELECT COUNT(r1.m2.f3) WITHIN r1.m2 AS cnt, a FROM [Table1] AS t " +
		"WHERE a > 1 ORDER BY a DESC LIMIT 5")
	require.NoError(t, err)
	var out strings.Builder
	describe(&out, model)
	assert.Equal(t, `
Query: SELECT COUNT(r1.m2.f3) WITHIN r1.m2 AS cnt, a FROM [Table1] AS t WHERE a > 1 ORDER BY a DESC LIMIT 5

 Column          | Scope  | Within | Alias |
 --------------- | ------ | ------ | ----- |
 COUNT(r1.m2.f3) | COLUMN | r1.m2  | cnt   |
 a               | FULL   |        |       |

From:     [Table1] AS t
Where:    a > 1
Order By: a DESC
Limit:    5
`, "\n"+out.String())
}

func Test_describeJoin(t *testing.T) {
	model, err := query.Parse("SELECT c.id FROM c, (SELECT x FROM y) AS s INNER JOIN o ON c.id = o.cid " +
		"GROUP BY c.id HAVING COUNT(o.id) > 2")
	require.NoError(t, err)
	var out strings.Builder
	describe(&out, model)
	assert.Contains(t, out.String(), "\nFrom:     c, (SELECT x FROM y) AS s\n")
	assert.Contains(t, out.String(), "\nJoin:     INNER JOIN o ON c.id = o.cid\n")
	assert.Contains(t, out.String(), "\nGroup By: c.id\n")
	assert.Contains(t, out.String(), "\nHaving:   COUNT(o.id) > 2\n")
}

func Test_describeError(t *testing.T) {
	text := "SELECT a\nFROM t LIMIT x"
	_, err := query.Parse(text)
	require.Error(t, err)
	assert.Equal(t, "unable to parse query: line 2 column 14: expected integer, found x\n"+
		"  FROM t LIMIT x\n"+
		"               ^", describeError(text, err))
	assert.Equal(t, context.Canceled.Error(), describeError(text, context.Canceled))
}

func Test_readBatch(t *testing.T) {
	queries, err := readBatch(strings.NewReader("SELECT a FROM t\n\n-- a comment\n  SELECT b FROM u;  \n"))
	require.NoError(t, err)
	assert.Equal(t, []batchQuery{
		{line: 1, text: "SELECT a FROM t"},
		{line: 4, text: "SELECT b FROM u;"},
	}, queries)
}

func Test_runBatch(t *testing.T) {
	engine := query.NewEngine(config.Parser{BatchWorkers: 2})
	var out strings.Builder
	err := runBatch(context.Background(), engine, &out, []batchQuery{
		{line: 1, text: "SELECT a FROM t"},
		{line: 3, text: "SELECT a FROM t LIMIT x"},
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), " 1    | SELECT a FROM t ")
	assert.Contains(t, out.String(), " 3    | unable to parse query: line 1 column 23: expected integer, found x |")
	assert.True(t, strings.HasSuffix(out.String(), "\n1 of 2 queries parsed.\n"), out.String())
}

func Test_evaluate(t *testing.T) {
	engine := query.NewEngine(config.Parser{})
	var out strings.Builder
	evaluate(context.Background(), engine, &out, "SELECT a\nFROM t;")
	assert.True(t, strings.HasPrefix(out.String(), "Query: SELECT a FROM t\n"), out.String())
	out.Reset()
	evaluate(context.Background(), engine, &out, "SELECT #")
	assert.Equal(t, "unable to tokenize query: line 1 column 8: unexpected character '#'\n"+
		"  SELECT #\n"+
		"         ^\n\n", out.String())
}
