/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package rv_test

import (
	"math"
	"strings"
	"testing"

	"github.com/fentec-project/gorv/config"
	"github.com/fentec-project/gorv/metrics"
	"github.com/fentec-project/gorv/rv"
	"github.com/fentec-project/gorv/sample"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engine(t *testing.T, opts ...rv.Option) *rv.Engine {
	e, err := rv.NewEngine(append([]rv.Option{rv.WithSeed(42)}, opts...)...)
	require.NoError(t, err)
	return e
}

func moments(t *testing.T, e *rv.Engine, x *rv.RV) (float64, float64) {
	mean, variance, err := e.Moments(x)
	require.NoError(t, err)
	return mean, variance
}

func TestEngine_Defaults(t *testing.T) {
	e, err := rv.NewEngine()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBatchSize, e.BatchSize())

	vec, err := e.Draw(rv.Constant(1))
	require.NoError(t, err)
	assert.Len(t, vec, config.DefaultBatchSize)
}

func TestEngine_Linearity(t *testing.T) {
	e := engine(t)
	x := uniform(t, 0, 1).AddConst(3)

	mean, err := e.Expectation(x)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, mean, 0.01)

	variance, err := e.Variance(x)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/12, variance, 0.002)
}

func TestEngine_Rejection(t *testing.T) {
	e := engine(t)
	x, err := e.FromPDF(rv.PDF{Func: func(x float64) float64 { return 2 * x }, Lo: 0, Hi: 1, Max: 2})
	require.NoError(t, err)

	mean, variance := moments(t, e, x)
	assert.InDelta(t, 2.0/3, mean, 0.02)
	assert.InDelta(t, 1.0/18, variance, 0.005)
}

func TestEngine_InverseCDF(t *testing.T) {
	e := engine(t)
	u := uniform(t, 0, 1)
	const lambda = 7.0
	x := rv.Log(rv.Constant(1).Sub(u)).Neg().DivConst(lambda)

	mean, variance := moments(t, e, x)
	assert.InDelta(t, 1/lambda, mean, 0.003)
	assert.InDelta(t, 1/(lambda*lambda), variance, 0.001)
}

func TestEngine_Geometric(t *testing.T) {
	e := engine(t)
	const p = 0.25
	u := uniform(t, 0, 1)
	x := rv.Ceil(rv.Log(u).DivConst(math.Log(1 - p)))

	mean, variance := moments(t, e, x)
	assert.InDelta(t, 1/p, mean, 0.06)
	assert.InDelta(t, (1-p)/(p*p), variance, 0.6)
}

func TestEngine_BoxMuller(t *testing.T) {
	e := engine(t)
	u1 := uniform(t, 0, 1)
	u2 := uniform(t, 0, 1)
	radius := rv.Sqrt(rv.Log(rv.Constant(1).Sub(u1)).MulConst(-2))
	x := radius.Mul(rv.Cos(u2.MulConst(2 * math.Pi)))

	mean, variance := moments(t, e, x)
	assert.InDelta(t, 0, mean, 0.02)
	assert.InDelta(t, 1, variance, 0.03)
}

func TestEngine_Batches(t *testing.T) {
	u, err := sample.NewUniform(0, 1)
	require.NoError(t, err)
	c := &counting{inner: u}
	x := rv.FromSampler(c)
	e := engine(t, rv.WithBatchSize(1000))

	_, err = e.Expectation(x)
	require.NoError(t, err)
	_, err = e.Variance(x)
	require.NoError(t, err)
	assert.Equal(t, 2, c.calls, "expectation and variance should draw separate batches")

	_, _, err = e.Moments(x)
	require.NoError(t, err)
	assert.Equal(t, 3, c.calls, "moments should draw a single batch")

	vec, err := e.Sample(x, 17)
	require.NoError(t, err)
	assert.Len(t, vec, 17)
}

func TestEngine_Replay(t *testing.T) {
	x := uniform(t, -1, 1).Mul(uniform(t, 0, 2))

	a, err := engine(t).Draw(x)
	require.NoError(t, err)
	b, err := engine(t).Draw(x)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	e := engine(t)
	first, err := e.Sample(x, 100)
	require.NoError(t, err)
	second, err := e.Sample(x, 100)
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "an engine should advance its generator")
}

func TestEngine_Summarize(t *testing.T) {
	e := engine(t, rv.WithBatchSize(20000), rv.WithHistogramBins(50))
	x, err := rv.FromDistribution("normal", map[string]any{"mu": 1.0, "sigma": 2.0})
	require.NoError(t, err)

	s, err := e.Summarize(x, "normal")
	require.NoError(t, err)
	assert.Equal(t, "normal", s.Title)
	assert.Equal(t, 20000, s.N)
	assert.InDelta(t, 1, s.Mean, 0.1)
	assert.InDelta(t, 4, s.Variance, 0.2)
	assert.True(t, s.Min < s.Mean && s.Mean < s.Max)
	require.Len(t, s.Dividers, 51)
	require.Len(t, s.Density, 50)

	var area float64
	for i, d := range s.Density {
		area += d * (s.Dividers[i+1] - s.Dividers[i])
	}
	assert.InDelta(t, 1, area, 1e-9)

	s, err = e.Summarize(rv.Constant(3), "constant")
	require.NoError(t, err)
	assert.Equal(t, 3.0, s.Min)
	assert.Equal(t, 3.0, s.Max)
}

func TestEngine_SummarizeWideRange(t *testing.T) {
	e := engine(t, rv.WithBatchSize(1000))
	coin, err := rv.FromDistribution("bernoulli", map[string]any{"p": 0.5})
	require.NoError(t, err)
	// values of ±1.7e308, whose range overflows
	x := coin.MulConst(2).SubConst(1).MulConst(1.7e308)

	assert.NotPanics(t, func() {
		_, err = e.Summarize(x, "wide")
	})
	assert.Error(t, err)
}

func TestEngine_Options(t *testing.T) {
	_, err := rv.NewEngine(rv.WithBatchSize(0))
	assert.ErrorIs(t, err, sample.ErrInvalidBatch)

	_, err = rv.NewEngine(rv.WithHistogramBins(0))
	assert.Error(t, err)
}

func TestEngine_WithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.BatchSize = 500
	cfg.Seed = 9
	cfg.RejectionMaxRounds = 2
	cfg.RejectionMaxBatch = 32

	e, err := rv.NewEngine(rv.WithConfig(cfg))
	require.NoError(t, err)
	assert.Equal(t, 500, e.BatchSize())

	u := uniform(t, 0, 1)
	vec, err := e.Draw(u)
	require.NoError(t, err)
	assert.Equal(t, draw(t, u, 9, 500), vec, "the configured seed should key the engine")

	zero, err := e.FromPDF(rv.PDF{Func: func(float64) float64 { return -1 }, Lo: 0, Hi: 1, Max: 1})
	require.NoError(t, err)
	_, err = e.Sample(zero, 10)
	assert.ErrorIs(t, err, sample.ErrRejectionBudget)

	invalid := config.Default()
	invalid.BatchSize = 0
	_, err = rv.NewEngine(rv.WithConfig(invalid))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	loud := config.Default()
	loud.LogLevel = "LOUD"
	_, err = rv.NewEngine(rv.WithConfig(loud))
	assert.Error(t, err)
}

func TestEngine_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.NewCollector(reg)
	require.NoError(t, err)
	e := engine(t, rv.WithMetrics(c), rv.WithBatchSize(10))

	pdf, err := rv.FromPDF(rv.PDF{Func: func(float64) float64 { return 1 }, Lo: 0, Hi: 1, Max: 1})
	require.NoError(t, err)
	x := uniform(t, 0, 1).Add(rv.Constant(1)).Mul(pdf)
	_, err = e.Draw(x)
	require.NoError(t, err)

	expected := `
# HELP gorv_samples_total Total number of values drawn, by node kind.
# TYPE gorv_samples_total counter
gorv_samples_total{kind="constant"} 10
gorv_samples_total{kind="leaf"} 10
gorv_samples_total{kind="operation"} 20
gorv_samples_total{kind="rejection"} 10
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "gorv_samples_total"))
	// a constant density accepts every candidate
	expected = `
# HELP gorv_rejection_accepted_total Total number of candidate points accepted by rejection sampling.
# TYPE gorv_rejection_accepted_total counter
gorv_rejection_accepted_total 10
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "gorv_rejection_accepted_total"))
	count, err := testutil.GatherAndCount(reg, "gorv_query_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
