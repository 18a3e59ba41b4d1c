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

package query

import (
	"github.com/ebay/drql/util/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type queryMetrics struct {
	parseDurationSeconds prometheus.Summary
	buildDurationSeconds prometheus.Summary
	failures             *prometheus.CounterVec
	cacheHits            prometheus.Counter
	cacheMisses          prometheus.Counter
	cacheEntries         prometheus.Gauge
}

var stats queryMetrics

func init() {
	mr := metrics.Registry{R: prometheus.DefaultRegisterer}
	stats = queryMetrics{
		parseDurationSeconds: mr.NewSummary(prometheus.SummaryOpts{
			Namespace:  "drql",
			Subsystem:  "query",
			Name:       "parse_duration_seconds",
			Help:       `The time it takes to tokenize and parse a query into a parse tree.`,
			Objectives: metrics.DefaultObjectives(),
		}),
		buildDurationSeconds: mr.NewSummary(prometheus.SummaryOpts{
			Namespace: "drql",
			Subsystem: "query",
			Name:      "build_duration_seconds",
			Help: `The time it takes to build the semantic model from a parse tree.

This happens after parsing. It should be small compared to the parse time, as
it's a single pass over the tree.
`,
			Objectives: metrics.DefaultObjectives(),
		}),
		failures: mr.NewCounterVec(prometheus.CounterOpts{
			Namespace: "drql",
			Subsystem: "query",
			Name:      "failures_total",
			Help: `The number of queries that could not be parsed, by class of error.

The class is one of "lex", "syntax", "semantic" or "other".
`,
		}, "class"),
		cacheHits: mr.NewCounter(prometheus.CounterOpts{
			Namespace: "drql",
			Subsystem: "query_cache",
			Name:      "hits_total",
			Help:      `The number of queries whose model was found in the model cache.`,
		}),
		cacheMisses: mr.NewCounter(prometheus.CounterOpts{
			Namespace: "drql",
			Subsystem: "query_cache",
			Name:      "misses_total",
			Help:      `The number of queries that had to be parsed because their model wasn't cached.`,
		}),
		cacheEntries: mr.NewGauge(prometheus.GaugeOpts{
			Namespace: "drql",
			Subsystem: "query_cache",
			Name:      "entries",
			Help:      `The number of models currently held in the model cache.`,
		}),
	}
}
