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

// Command drql-client is a command-line tool for parsing DRQL queries.
package main

import (
	"context"
	"os"

	docopt "github.com/docopt/docopt-go"
	"github.com/ebay/drql/config"
	"github.com/ebay/drql/query"
	"github.com/ebay/drql/util/debuglog"
	"github.com/ebay/drql/util/tracing"
	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var fmtr = message.NewPrinter(language.English)

const usage = `drql-client is a command-line tool for parsing DRQL queries.

Usage:
  drql-client [--cfg=FILE --trace=URL] parse [--json] [--debug] [QUERY]
  drql-client [--cfg=FILE --trace=URL] tokens [QUERY]
  drql-client [--cfg=FILE --trace=URL] batch FILE
  drql-client [--cfg=FILE] repl

Options:
  --cfg=FILE     Configuration file. Only its parser section is used.
  --trace=URL    Send OpenTracing traces to this Jaeger collector endpoint.
  --json         Print the query model as JSON.
  --debug        Print a report of the parse stages.

If QUERY is omitted or is "-", the query is read from standard input. A batch
FILE holds one query per line; blank lines and lines starting with "--" are
skipped.

Examples:
  # Show the model of a query.
  drql-client parse "SELECT COUNT(r1.m2.f3) WITHIN r1.m2 AS cnt FROM [Table1]"

  # Multiple line query usage.
  drql-client parse --json - <<EOF
  SELECT customersTable.id, ordersTable.id
  FROM customersTable
  INNER JOIN ordersTable ON customersTable.id = ordersTable.customerId
EOF
`

type options struct {
	ConfigFile       string `docopt:"--cfg"`
	TracingCollector string `docopt:"--trace"`

	// Parse
	Parse bool `docopt:"parse"`
	JSON  bool `docopt:"--json"`
	Debug bool `docopt:"--debug"`

	// Tokens
	Tokens bool `docopt:"tokens"`

	// Parse & Tokens
	QueryString string `docopt:"QUERY"`

	// Batch
	Batch    bool   `docopt:"batch"`
	Filename string `docopt:"FILE"`

	// Repl
	Repl bool `docopt:"repl"`
}

func parseArgs() *options {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		log.Fatalf("Error parsing command-line arguments: %v", err)
	}
	var options options
	err = opts.Bind(&options)
	if err != nil {
		log.Fatalf("Error binding command-line arguments: %v\nfrom: %+v", err, opts)
	}
	return &options
}

func main() {
	debuglog.Configure(debuglog.Options{})
	options := parseArgs()
	ctx := context.Background()

	cfg := &config.DRQL{}
	if options.ConfigFile != "" {
		var err error
		cfg, err = config.Load(options.ConfigFile)
		if err != nil {
			log.Fatalf("Unable to load configuration: %v", err)
		}
	}
	if options.TracingCollector != "" {
		tracer, err := tracing.New("drql-client", &config.Tracing{
			Type:     "jaeger",
			Endpoint: options.TracingCollector,
		})
		if err != nil {
			log.WithError(err).Warn("Could not initialize OpenTracing tracer")
		} else {
			defer tracer.Close()
		}
	}
	span, ctx := opentracing.StartSpanFromContext(ctx, "drql-client run")
	defer span.Finish()

	engine := query.NewEngine(cfg.Parser)
	switch {
	case options.Parse:
		if err := parse(ctx, engine, os.Stdout, options); err != nil {
			log.Fatalf("Error parsing query: %v", err)
		}
	case options.Tokens:
		if err := tokens(os.Stdout, options); err != nil {
			log.Fatalf("Error tokenizing query: %v", err)
		}
	case options.Batch:
		if err := batch(ctx, engine, os.Stdout, options); err != nil {
			log.Fatalf("Error executing batch: %v", err)
		}
	case options.Repl:
		if err := repl(ctx, engine); err != nil {
			log.Fatalf("Error running repl: %v", err)
		}
	default:
		log.Fatalf("command not implemented")
	}
}
