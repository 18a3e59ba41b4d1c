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
	"bufio"
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ebay/drql/query"
	"github.com/ebay/drql/util/table"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// batchQuery is a query read from a batch file.
type batchQuery struct {
	line int
	text string
}

// readBatch returns the queries in r, one per line. Blank lines and comment
// lines are skipped.
func readBatch(r io.Reader) ([]batchQuery, error) {
	var queries []batchQuery
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "--") {
			continue
		}
		queries = append(queries, batchQuery{line: line, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to read batch")
	}
	return queries, nil
}

func batch(ctx context.Context, engine *query.Engine, w io.Writer, options *options) error {
	f, err := os.Open(options.Filename)
	if err != nil {
		return errors.Wrap(err, "unable to open batch file")
	}
	defer f.Close()
	queries, err := readBatch(f)
	if err != nil {
		return errors.Wrapf(err, "in %v", options.Filename)
	}
	return runBatch(ctx, engine, w, queries)
}

func runBatch(ctx context.Context, engine *query.Engine, w io.Writer, queries []batchQuery) error {
	texts := make([]string, len(queries))
	for i, q := range queries {
		texts[i] = q.text
	}
	start := time.Now()
	results, err := engine.ParseAll(ctx, texts)
	if err != nil {
		return err
	}
	log.Debugf("Batch of %d queries took %s", len(texts), time.Since(start))
	rows := [][]string{{"Line", "Result"}}
	failed := 0
	for i, res := range results {
		line := strconv.Itoa(queries[i].line)
		if res.Err != nil {
			failed++
			rows = append(rows, []string{line, describeError(texts[i], res.Err)})
			continue
		}
		rows = append(rows, []string{line, res.Query.String()})
	}
	table.PrettyPrint(w, rows, table.HeaderRow|table.SkipEmpty)
	fmtr.Fprintf(w, "\n%d of %d queries parsed.\n", len(results)-failed, len(results))
	return nil
}
