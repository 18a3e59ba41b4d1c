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

// Package tracing assists with reporting OpenTracing traces and timing the
// stages they cover.
package tracing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ebay/drql/config"
	"github.com/ebay/drql/util/clocks"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	jaeger "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

// A Tracer reports OpenTracing traces to a server.
type Tracer struct {
	// If not nil, called by Close.
	close func()
}

// New constructs a tracer and sets it as the global opentracing tracer.
// Call this early on from main functions to initialize Jaeger/OpenTracing. The
// returned tracer should be Closed to flush its buffer before program exit. A
// nil cfg disables tracing.
func New(serviceName string, cfg *config.Tracing) (*Tracer, error) {
	if cfg == nil {
		log.Info("Skipping Jaeger setup: nil Tracing configuration")
		return &Tracer{}, nil
	}
	jcfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			CollectorEndpoint: cfg.Endpoint,
		},
	}
	logger := (*logrusAdapter)(log.WithFields(log.Fields{"component": "jaeger"}))
	tracer, closer, err := jcfg.NewTracer(jaegercfg.Logger(logger))
	if err != nil {
		return nil, fmt.Errorf("could not initialize Jaeger tracer: %v", err)
	}
	opentracing.SetGlobalTracer(tracer)
	return &Tracer{
		close: func() {
			err := closer.Close()
			if err != nil {
				log.WithError(err).Warn("Error shutting down Jaeger tracer")
			}
		},
	}, nil
}

// Close stops the Tracer and cleans up resources. It is not thread-safe.
func (t *Tracer) Close() {
	if t.close != nil {
		t.close()
	}
	t.close = nil
}

type logrusAdapter log.Entry

func (_log *logrusAdapter) Error(msg string) {
	log := (*log.Entry)(_log)
	log.Error(strings.TrimSpace(msg))
}

func (_log *logrusAdapter) Infof(msg string, args ...interface{}) {
	log := (*log.Entry)(_log)
	log.Infof(strings.TrimSpace(msg), args...)
}

// Metric is satisfied by prometheus.Summary and prometheus.Histogram.
type Metric interface {
	prometheus.Metric
	Observe(float64)
}

// A Stage is a span whose duration is also observed into a metric. Stages are
// timed with a clocks.Source so tests can control the reported durations.
type Stage struct {
	span   opentracing.Span
	metric Metric
	clock  clocks.Source
	start  clocks.Time
}

// StartStage starts a child span of the span in ctx named 'operation'. The
// returned context carries the new span. 'metric' may be nil.
func StartStage(ctx context.Context, operation string, metric Metric, clock clocks.Source) (*Stage, context.Context) {
	span, ctx := opentracing.StartSpanFromContext(ctx, operation)
	if metric != nil {
		span.SetTag("metric", metricName(metric))
	}
	return &Stage{
		span:   span,
		metric: metric,
		clock:  clock,
		start:  clock.Now(),
	}, ctx
}

// Span returns the stage's underlying span.
func (s *Stage) Span() opentracing.Span {
	return s.span
}

// Finish ends the span, observes the stage's duration into its metric, and
// returns the duration. If err is not nil, the span is tagged as failed.
func (s *Stage) Finish(err error) time.Duration {
	dur := clocks.Since(s.clock, s.start)
	if err != nil {
		ext.Error.Set(s.span, true)
		s.span.LogKV("error", err.Error())
	}
	if s.metric != nil {
		s.metric.Observe(dur.Seconds())
	}
	s.span.Finish()
	return dur
}

// metricName returns the fully-qualified name of the metric. This ends up
// being reported in the OpenTracing tag named "metric".
func metricName(metric Metric) string {
	// Desc doesn't have a way to extract the name. Its Stringer outputs like:
	//   Desc{fqName: %q, help: %q, constLabels: {%s}, variableLabels: %v}
	s := metric.Desc().String()
	s = strings.TrimPrefix(s, `Desc{fqName: "`)
	i := strings.IndexByte(s, '"')
	if i < 0 {
		return ""
	}
	return s[:i]
}
