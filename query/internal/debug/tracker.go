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

// Package debug generates a human readable report of how a single query was
// processed, for use by developers.
package debug

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ebay/drql/query/lexer"
	"github.com/ebay/drql/query/parser"
	"github.com/ebay/drql/query/semantic"
	"github.com/ebay/drql/util/clocks"
	"github.com/ebay/drql/util/table"
	"github.com/sirupsen/logrus"
)

// timestampFormat is used to format the timestamps written to the report.
const timestampFormat = "2006-01-02 15:04:05.000000 MST"

// Tracker defines points in the query processing sequence. The query Engine
// will call these at the appropriate places in the processing.
type Tracker interface {
	// Cached is called instead of Parsed and Built when the model came from
	// the Engine's cache.
	Cached(*semantic.Query)
	Parsed(*parser.Statement, error)
	Built(*semantic.Query, error)
	Close()
}

// trackerID is used by New() to assign an Id to the query, via an atomic.Add.
// Nothing else should need to be reading or writing this.
var trackerID uint64

// New returns a new Tracker. If 'debug' is set the tracker will accumulate a
// report and write it to debugOut when closed. If debugOut is nil, the report
// will be written to a file in $TMPDIR. If 'debug' is false, a no-op Tracker
// is returned.
func New(debug bool, debugOut io.Writer, clock clocks.Source, query string) Tracker {
	if !debug {
		return noopTracker{}
	}
	if clock == nil {
		clock = clocks.Wall
	}
	t := &debugTracker{
		id:    atomic.AddUint64(&trackerID, 1),
		clock: clock,
		query: query,
	}
	if debugOut == nil {
		f, err := os.Create(filepath.Join(os.TempDir(), fmt.Sprintf("drql_debug_%d", t.id)))
		if err != nil {
			logrus.Warnf("Unable to create query debug file: %v", err)
			return noopTracker{}
		}
		logrus.Infof("Query Debug Info %d being written to %s", t.id, f.Name())
		t.close = f
		debugOut = f
	}
	t.out = bufio.NewWriter(debugOut)
	t.started = t.clock.Now()
	fmt.Fprintf(&t.report.header, "Started at: %s\n", t.started.UTC().Format(timestampFormat))
	return t
}

// debugTracker implements the Tracker interface.
type debugTracker struct {
	id      uint64
	clock   clocks.Source
	query   string
	started time.Time
	parsed  time.Time
	// out is where the report will be written to.
	out *bufio.Writer
	// close if set will be closed once the report is written.
	close io.Closer
	// The created report contains the below sections, in the order you see.
	report struct {
		header strings.Builder
		tokens string
		model  string
	}
}

func (t *debugTracker) Cached(q *semantic.Query) {
	t.report.header.WriteString("Model found in cache\n")
	t.report.model = q.String() + "\n"
}

func (t *debugTracker) Parsed(_ *parser.Statement, err error) {
	t.parsed = t.clock.Now()
	fmt.Fprintf(&t.report.header, "Parsing   %v\n", t.parsed.Sub(t.started))
	t.report.tokens = tokenTable(t.query)
	if err != nil {
		t.report.model = fmt.Sprintf("Error: %v\n", err)
	}
}

func (t *debugTracker) Built(q *semantic.Query, err error) {
	built := t.clock.Now()
	fmt.Fprintf(&t.report.header, "Building  %v\n", built.Sub(t.parsed))
	if err != nil {
		t.report.model = fmt.Sprintf("Error: %v\n", err)
		return
	}
	t.report.model = q.String() + "\n"
}

// tokenTable returns the tokens of the query formatted as a table.
func tokenTable(query string) string {
	tokens, err := lexer.Tokenize(query)
	if err != nil {
		return fmt.Sprintf("Error: %v\n", err)
	}
	rows := make([][]string, 0, len(tokens)+1)
	rows = append(rows, []string{"Offset", "Kind", "Text"})
	for _, tok := range tokens {
		rows = append(rows, []string{strconv.Itoa(tok.Offset), tok.Kind.String(), tok.String()})
	}
	b := strings.Builder{}
	table.PrettyPrint(&b, rows, table.HeaderRow)
	return b.String()
}

func (t *debugTracker) Close() {
	end := t.clock.Now()
	t.out.WriteString(t.report.header.String())
	fmt.Fprintf(t.out, "Query Ended at: %s\n", end.UTC().Format(timestampFormat))
	fmt.Fprintf(t.out, "Total: %v\n\n", end.Sub(t.started))
	t.out.WriteString("Query:\n")
	t.out.WriteString(t.query)
	t.out.WriteByte('\n')
	if t.report.tokens != "" {
		t.out.WriteString("\nTokens:\n")
		t.out.WriteString(t.report.tokens)
	}
	if t.report.model != "" {
		t.out.WriteString("\nModel:\n")
		t.out.WriteString(t.report.model)
	}
	t.out.WriteByte('\n')

	flushErr := t.out.Flush()
	if flushErr != nil {
		logrus.WithFields(logrus.Fields{
			"query_id": t.id,
			"error":    flushErr,
		}).Warn("Error writing report for query")
	}
	// even if the flush failed, we should still try and close the output if
	// needed.
	if t.close != nil {
		if closeErr := t.close.Close(); closeErr != nil {
			logrus.WithFields(logrus.Fields{
				"query_id": t.id,
				"error":    closeErr,
			}).Warn("Error closing report for query")
			return
		}
	}
	if flushErr != nil {
		return
	}
	logrus.WithField("query_id", t.id).Debug("Completed query debug report")
}

// noopTracker implements the Tracker interface, everything is effectively a
// no-op.
type noopTracker struct{}

func (noopTracker) Cached(*semantic.Query)          {}
func (noopTracker) Parsed(*parser.Statement, error) {}
func (noopTracker) Built(*semantic.Query, error)    {}
func (noopTracker) Close()                          {}
