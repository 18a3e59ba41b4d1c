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

package debug

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ebay/drql/query/parser"
	"github.com/ebay/drql/query/semantic"
	"github.com/ebay/drql/util/clocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Report(t *testing.T) {
	clock := clocks.NewMock()
	var out strings.Builder
	const query = "SELECT a FROM t"
	tracker := New(true, &out, clock, query)
	clock.Advance(2 * time.Millisecond)
	stmt, err := parser.Parse(query)
	require.NoError(t, err)
	tracker.Parsed(stmt, nil)
	clock.Advance(3 * time.Millisecond)
	model, err := semantic.Build(stmt)
	require.NoError(t, err)
	tracker.Built(model, nil)
	clock.Advance(time.Millisecond)
	tracker.Close()
	assert.Equal(t, `
Started at: 1970-01-01 00:00:00.000000 UTC
Parsing   2ms
Building  3ms
Query Ended at: 1970-01-01 00:00:00.006000 UTC
Total: 6ms

Query:
SELECT a FROM t

Tokens:
 Offset | Kind       | Text   |
 ------ | ---------- | ------ |
 0      | Keyword    | SELECT |
 7      | Identifier | a      |
 9      | Keyword    | FROM   |
 14     | Identifier | t      |

Model:
SELECT a FROM t

`, "\n"+out.String())
}

func Test_ReportCached(t *testing.T) {
	var out strings.Builder
	tracker := New(true, &out, clocks.NewMock(), "select a from t")
	tracker.Cached(semantic.NewTable(semantic.NewSymbol(semantic.TableSymbol, "t")))
	tracker.Close()
	assert.Equal(t, `
Started at: 1970-01-01 00:00:00.000000 UTC
Model found in cache
Query Ended at: 1970-01-01 00:00:00.000000 UTC
Total: 0s

Query:
select a from t

Model:
t

`, "\n"+out.String())
}

func Test_ReportErrors(t *testing.T) {
	var out strings.Builder
	tracker := New(true, &out, clocks.NewMock(), "SELECT # FROM t")
	_, err := parser.Parse("SELECT # FROM t")
	require.Error(t, err)
	tracker.Parsed(nil, err)
	tracker.Close()
	report := out.String()
	assert.Contains(t, report, "\nTokens:\nError: unable to tokenize query: line 1 column 8")
	assert.Contains(t, report, "\nModel:\nError: unable to tokenize query: line 1 column 8")

	out.Reset()
	tracker = New(true, &out, clocks.NewMock(), "SELECT a FROM t")
	tracker.Parsed(nil, nil)
	tracker.Built(nil, errors.New("no model for you"))
	tracker.Close()
	assert.Contains(t, out.String(), "\nModel:\nError: no model for you\n")
	assert.Contains(t, out.String(), "Building  0s\n")
}

func Test_NoopTracker(t *testing.T) {
	var out strings.Builder
	tracker := New(false, &out, nil, "SELECT a FROM t")
	assert.Equal(t, noopTracker{}, tracker)
	tracker.Parsed(nil, nil)
	tracker.Built(nil, nil)
	tracker.Cached(nil)
	tracker.Close()
	assert.Empty(t, out.String())
}
