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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Registry(t *testing.T) {
	assert := assert.New(t)
	reg := prometheus.NewRegistry()
	mr := Registry{R: reg}
	c := mr.NewCounter(prometheus.CounterOpts{Namespace: "drql", Name: "things_total", Help: "things"})
	cv := mr.NewCounterVec(prometheus.CounterOpts{Namespace: "drql", Name: "errors_total", Help: "errors"}, "class")
	g := mr.NewGauge(prometheus.GaugeOpts{Namespace: "drql", Name: "size", Help: "size"})
	s := mr.NewSummary(prometheus.SummaryOpts{Namespace: "drql", Name: "seconds", Help: "seconds", Objectives: DefaultObjectives()})
	c.Inc()
	cv.WithLabelValues("lex").Add(2)
	g.Set(7)
	s.Observe(0.25)
	assert.Equal(1.0, testutil.ToFloat64(c))
	assert.Equal(2.0, testutil.ToFloat64(cv.WithLabelValues("lex")))
	assert.Equal(7.0, testutil.ToFloat64(g))
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(families, 4)
	assert.Panics(func() {
		mr.NewCounter(prometheus.CounterOpts{Namespace: "drql", Name: "things_total", Help: "things"})
	})
}
