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

// Package metrics exposes Prometheus collectors describing the work
// done by the sampling engine.
package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector counts drawn samples, rejection sampling work and query
// latency. A nil *Collector is valid and records nothing.
type Collector struct {
	samples    *prometheus.CounterVec
	candidates prometheus.Counter
	accepted   prometheus.Counter
	queries    *prometheus.HistogramVec
}

// NewCollector creates the collectors and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		samples: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gorv_samples_total",
				Help: "Total number of values drawn, by node kind.",
			},
			[]string{"kind"},
		),
		candidates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gorv_rejection_candidates_total",
			Help: "Total number of candidate points drawn by rejection sampling.",
		}),
		accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gorv_rejection_accepted_total",
			Help: "Total number of candidate points accepted by rejection sampling.",
		}),
		queries: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gorv_query_duration_seconds",
				Help:    "Duration of engine queries.",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"query"},
		),
	}

	for _, col := range []prometheus.Collector{c.samples, c.candidates, c.accepted, c.queries} {
		if err := reg.Register(col); err != nil {
			return nil, errors.Wrap(err, "cannot register collector")
		}
	}
	return c, nil
}

// ObserveSamples records n values produced by a node of the given kind.
func (c *Collector) ObserveSamples(kind string, n int) {
	if c == nil {
		return
	}
	c.samples.WithLabelValues(kind).Add(float64(n))
}

// ObserveRejection records the candidates drawn and accepted by one
// rejection sampling call.
func (c *Collector) ObserveRejection(candidates, accepted int) {
	if c == nil {
		return
	}
	c.candidates.Add(float64(candidates))
	c.accepted.Add(float64(accepted))
}

// ObserveQuery records the duration of an engine query.
func (c *Collector) ObserveQuery(query string, d time.Duration) {
	if c == nil {
		return
	}
	c.queries.WithLabelValues(query).Observe(d.Seconds())
}
