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

package tracing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ebay/drql/util/clocks"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewDisabled(t *testing.T) {
	tracer, err := New("drql-test", nil)
	require.NoError(t, err)
	tracer.Close()
	tracer.Close()
}

func Test_Stage(t *testing.T) {
	assert := assert.New(t)
	mt := mocktracer.New()
	opentracing.SetGlobalTracer(mt)
	defer opentracing.SetGlobalTracer(opentracing.NoopTracer{})

	summary := prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "drql",
		Subsystem: "test",
		Name:      "stage_seconds",
		Help:      "test",
	})
	clock := clocks.NewMock()
	stage, ctx := StartStage(context.Background(), "lex", summary, clock)
	assert.Equal(stage.Span(), opentracing.SpanFromContext(ctx))
	clock.Advance(250 * time.Millisecond)
	assert.Equal(250*time.Millisecond, stage.Finish(nil))

	failed, _ := StartStage(ctx, "parse", nil, clock)
	failed.Finish(errors.New("bad token"))

	spans := mt.FinishedSpans()
	require.Len(t, spans, 2)
	assert.Equal("lex", spans[0].OperationName)
	assert.Equal("drql_test_stage_seconds", spans[0].Tag("metric"))
	assert.Nil(spans[0].Tag("error"))
	assert.Equal("parse", spans[1].OperationName)
	assert.Equal(true, spans[1].Tag("error"))
	assert.Equal(spans[0].SpanContext.SpanID, spans[1].ParentID)
}
