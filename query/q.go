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

// Package query turns DRQL query text into a semantic model. Parse is the plain
// pipeline; Engine adds tracing, metrics, a model cache, and debug reports.
package query

import (
	"context"
	"io"
	"runtime"

	"github.com/ebay/drql/config"
	"github.com/ebay/drql/query/internal/debug"
	"github.com/ebay/drql/query/lexer"
	"github.com/ebay/drql/query/parser"
	"github.com/ebay/drql/query/semantic"
	"github.com/ebay/drql/util/clocks"
	"github.com/ebay/drql/util/parallel"
	"github.com/ebay/drql/util/tracing"
	"github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"
)

// Parse tokenizes, parses, and builds the semantic model of a single DRQL
// query, using the default parser limits. The error is a *lexer.LexError,
// *parser.SyntaxError or *semantic.SemanticError.
func Parse(text string) (*semantic.Query, error) {
	stmt, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return semantic.Build(stmt)
}

// Options contains optional additional settings that control a parse.
type Options struct {
	// If Debug is set, a detailed report of the parse is generated and written
	// to DebugOut. If DebugOut is nil, it's written to a file in $TMPDIR.
	Debug    bool
	DebugOut io.Writer
	// Clock times the stages. If nil, clocks.Wall is used.
	Clock clocks.Source
}

// Engine parses queries. It caches the resulting models, and reports stage
// timings as tracing spans and metrics. An Engine is safe for concurrent use.
type Engine struct {
	cfg   config.Parser
	cache *modelCache
}

// NewEngine returns an Engine configured by 'cfg'.
func NewEngine(cfg config.Parser) *Engine {
	return &Engine{
		cfg:   cfg,
		cache: newModelCache(cfg.CacheSize),
	}
}

// Parse builds the semantic model of 'text'. Errors are as for the Parse
// function. If ctx is already done, its error is returned instead.
func (e *Engine) Parse(ctx context.Context, text string, opts Options) (*semantic.Query, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Clock == nil {
		opts.Clock = clocks.Wall
	}
	span, ctx := opentracing.StartSpanFromContext(ctx, "drql query")
	defer span.Finish()
	tracker := debug.New(opts.Debug, opts.DebugOut, opts.Clock, text)
	defer tracker.Close()

	if model, found := e.cache.get(text); found {
		stats.cacheHits.Inc()
		span.SetTag("cached", true)
		tracker.Cached(model)
		return model, nil
	}
	stats.cacheMisses.Inc()

	stage, _ := tracing.StartStage(ctx, "parse query", stats.parseDurationSeconds, opts.Clock)
	stmt, err := parser.ParseWithOptions(text, parser.Options{MaxDepth: e.cfg.MaxDepth})
	stage.Finish(err)
	tracker.Parsed(stmt, err)
	if err != nil {
		e.failed(text, err)
		return nil, err
	}

	stage, _ = tracing.StartStage(ctx, "build model", stats.buildDurationSeconds, opts.Clock)
	model, err := semantic.Build(stmt)
	stage.Finish(err)
	tracker.Built(model, err)
	if err != nil {
		e.failed(text, err)
		return nil, err
	}
	stats.cacheEntries.Set(float64(e.cache.put(text, model)))
	return model, nil
}

func (e *Engine) failed(text string, err error) {
	class := ErrorClass(err)
	stats.failures.WithLabelValues(class).Inc()
	log.WithFields(log.Fields{
		"query": text,
		"class": class,
		"error": err,
	}).Debug("Unable to parse query")
}

// Result is the outcome of parsing one query of a batch.
type Result struct {
	Query *semantic.Query
	Err   error
}

// ParseAll parses each of the texts concurrently, with at most
// config.Parser.BatchWorkers parses running at once. It returns one Result
// per text, in the same order. The returned error is only set if ctx was
// canceled before the batch completed; errors from individual queries are
// reported in their Result.
func (e *Engine) ParseAll(ctx context.Context, texts []string) ([]Result, error) {
	workers := e.cfg.BatchWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	span, ctx := opentracing.StartSpanFromContext(ctx, "drql batch")
	span.SetTag("queries", len(texts))
	defer span.Finish()
	results := make([]Result, len(texts))
	err := parallel.InvokeBounded(ctx, len(texts), workers, func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		results[i].Query, results[i].Err = e.Parse(ctx, texts[i], Options{})
		return nil
	})
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ErrorClass returns "lex", "syntax" or "semantic" for the errors returned by
// Parse, and "other" for anything else.
func ErrorClass(err error) string {
	switch err.(type) {
	case *lexer.LexError:
		return "lex"
	case *parser.SyntaxError:
		return "syntax"
	case *semantic.SemanticError:
		return "semantic"
	default:
		return "other"
	}
}

// ErrorPosition returns the position in 'text' of an error returned by Parse.
// It returns false for errors that don't carry a position.
func ErrorPosition(text string, err error) (lexer.Position, bool) {
	switch err := err.(type) {
	case *lexer.LexError:
		return lexer.Position{Offset: err.Offset, Line: err.Line, Column: err.Column}, true
	case *parser.SyntaxError:
		return lexer.Position{Offset: err.Offset, Line: err.Line, Column: err.Column}, true
	case *semantic.SemanticError:
		return lexer.PositionOf(text, err.Offset), true
	default:
		return lexer.Position{}, false
	}
}
