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

package rv

import (
	"math/rand/v2"
	"time"

	"github.com/fentec-project/gorv/config"
	"github.com/fentec-project/gorv/data"
	"github.com/fentec-project/gorv/internal/logconf"
	"github.com/fentec-project/gorv/metrics"
	"github.com/fentec-project/gorv/sample"
	"github.com/pkg/errors"
)

// Engine evaluates RVs against one random source. Its queries draw
// config.DefaultBatchSize samples unless configured otherwise.
//
// An Engine is not safe for concurrent use, since every query
// advances its source. Use one Engine per goroutine.
type Engine struct {
	src       rand.Source
	batchSize int
	bins      int
	rejection []sample.RejectionOption
	metrics   *metrics.Collector
}

// Option configures an Engine.
type Option func(*Engine) error

// WithSource makes the engine draw from src.
func WithSource(src rand.Source) Option {
	return func(e *Engine) error {
		e.src = src
		return nil
	}
}

// WithSeed makes the engine draw from sample.NewSeededSource(seed).
func WithSeed(seed uint64) Option {
	return WithSource(sample.NewSeededSource(seed))
}

// WithBatchSize sets the number of samples drawn by Draw,
// Expectation, Variance, Moments and Summarize.
func WithBatchSize(n int) Option {
	return func(e *Engine) error {
		if n < 1 {
			return errors.Wrapf(sample.ErrInvalidBatch, "default batch size should be positive, got %d", n)
		}
		e.batchSize = n
		return nil
	}
}

// WithHistogramBins sets the bin count used by Summarize.
func WithHistogramBins(bins int) Option {
	return func(e *Engine) error {
		if bins < 1 {
			return errors.Errorf("histogram bins should be positive, got %d", bins)
		}
		e.bins = bins
		return nil
	}
}

// WithMetrics makes the engine record its work in c.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Engine) error {
		e.metrics = c
		return nil
	}
}

// WithConfig applies cfg: batch size, histogram bins, the rejection
// budget of PDFs built with Engine.FromPDF, the log level and, when
// cfg.Seed is not 0, a seeded source.
func WithConfig(cfg config.Config) Option {
	return func(e *Engine) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := logconf.SetLevel(cfg.LogLevel); err != nil {
			return err
		}
		e.batchSize = cfg.BatchSize
		e.bins = cfg.HistogramBins
		e.rejection = []sample.RejectionOption{
			sample.WithMaxRounds(cfg.RejectionMaxRounds),
			sample.WithMaxBatch(cfg.RejectionMaxBatch),
		}
		if cfg.Seed != 0 {
			e.src = sample.NewSeededSource(cfg.Seed)
		}
		return nil
	}
}

// NewEngine returns an Engine configured by opts. Without WithSource,
// WithSeed or a seeded config, the source is keyed from crypto/rand.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		batchSize: config.DefaultBatchSize,
		bins:      config.DefaultHistogramBins,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if e.src == nil {
		src, err := sample.NewRandomSource()
		if err != nil {
			return nil, err
		}
		e.src = src
	}
	return e, nil
}

// BatchSize returns the default number of samples per query.
func (e *Engine) BatchSize() int {
	return e.batchSize
}

// FromPDF is like the package level FromPDF, with the engine's
// rejection budget applied before opts.
func (e *Engine) FromPDF(pdf PDF, opts ...sample.RejectionOption) (*RV, error) {
	all := append(append([]sample.RejectionOption{}, e.rejection...), opts...)
	return FromPDF(pdf, all...)
}

// Sample draws n realizations of x.
func (e *Engine) Sample(x *RV, n int) (data.Vector, error) {
	return e.sample("sample", x, n)
}

// Draw draws the default number of realizations of x.
func (e *Engine) Draw(x *RV) (data.Vector, error) {
	return e.sample("sample", x, e.batchSize)
}

// Expectation estimates E[x] as the mean of a fresh batch.
func (e *Engine) Expectation(x *RV) (float64, error) {
	vec, err := e.sample("expectation", x, e.batchSize)
	if err != nil {
		return 0, err
	}
	return vec.Mean(), nil
}

// Variance estimates Var[x] as the population variance of a fresh
// batch. The batch is not the one used by Expectation, so the two
// estimates are independent.
func (e *Engine) Variance(x *RV) (float64, error) {
	vec, err := e.sample("variance", x, e.batchSize)
	if err != nil {
		return 0, err
	}
	return vec.Variance(), nil
}

// Moments estimates E[x] and Var[x] from one shared batch.
func (e *Engine) Moments(x *RV) (mean, variance float64, err error) {
	vec, err := e.sample("moments", x, e.batchSize)
	if err != nil {
		return 0, 0, err
	}
	mean, variance = vec.MeanVariance()
	return mean, variance, nil
}

// Summary is what a presentation layer needs to display an RV.
// Density holds one value per bin, normalized so that the histogram
// integrates to one; Dividers holds the len(Density)+1 bin edges.
type Summary struct {
	Title    string
	N        int
	Mean     float64
	Variance float64
	Min      float64
	Max      float64
	Dividers []float64
	Density  []float64
}

// Summarize draws one batch of x and describes it.
func (e *Engine) Summarize(x *RV, title string) (*Summary, error) {
	vec, err := e.sample("summarize", x, e.batchSize)
	if err != nil {
		return nil, err
	}

	s := &Summary{Title: title, N: len(vec)}
	s.Mean, s.Variance = vec.MeanVariance()
	if s.Min, s.Max, err = vec.Bounds(); err != nil {
		return nil, err
	}
	if s.Dividers, s.Density, err = vec.Histogram(e.bins, true); err != nil {
		return nil, errors.Wrapf(err, "cannot summarize %s", title)
	}
	return s, nil
}

func (e *Engine) sample(query string, x *RV, n int) (data.Vector, error) {
	start := time.Now()
	ev := evaluator{src: e.src, metrics: e.metrics}
	vec, err := ev.sample(x, n)
	elapsed := time.Since(start)

	e.metrics.ObserveQuery(query, elapsed)
	if err != nil {
		log.Debugf("%s of %s failed after %v: %v", query, x, elapsed, err)
		return nil, err
	}
	log.Debugf("%s of %s: %d samples in %v", query, x, n, elapsed)
	return vec, nil
}
