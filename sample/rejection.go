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

package sample

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/fentec-project/gorv/data"
	"github.com/pkg/errors"
)

const (
	// DefaultMaxRounds is the default number of candidate batches a
	// Rejection sampler draws before giving up.
	DefaultMaxRounds = 100
	// DefaultMaxBatch caps the number of candidates drawn per round.
	DefaultMaxBatch = 1 << 22
)

// Rejection samples values from an arbitrary density on a finite
// support [lo, hi] by throwing uniform points into the box
// [lo, hi] x [0, max] and keeping the x coordinates of the points
// that fall under the density curve.
//
// max must bound the density on [lo, hi] and the density must be
// non-negative there; otherwise the samples are silently biased.
// The WithBoundCheck option spot-checks this at construction time.
type Rejection struct {
	density func(float64) float64
	lo, hi  float64
	max     float64

	maxRounds  int
	maxBatch   int
	boundCheck int
}

// RejectionOption configures a Rejection sampler.
type RejectionOption func(*Rejection)

// WithMaxRounds sets how many candidate batches may be drawn in a
// single Sample call before ErrRejectionBudget is returned.
func WithMaxRounds(rounds int) RejectionOption {
	return func(r *Rejection) {
		r.maxRounds = rounds
	}
}

// WithMaxBatch caps the number of candidates drawn per round.
func WithMaxBatch(batch int) RejectionOption {
	return func(r *Rejection) {
		r.maxBatch = batch
	}
}

// WithBoundCheck makes NewRejection evaluate the density at the given
// number of evenly spaced points of [lo, hi] and fail with
// ErrDensityBound if any value is negative, NaN or above max.
func WithBoundCheck(points int) RejectionOption {
	return func(r *Rejection) {
		r.boundCheck = points
	}
}

// RejectionStats describes the work done by one Sample call.
type RejectionStats struct {
	Rounds     int
	Candidates int
	Accepted   int
}

// AcceptanceRate returns the share of candidates that were accepted.
func (s RejectionStats) AcceptanceRate() float64 {
	if s.Candidates == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Candidates)
}

// NewRejection returns an instance of the Rejection sampler for
// density on [lo, hi] bounded by max.
func NewRejection(density func(float64) float64, lo, hi, max float64, opts ...RejectionOption) (*Rejection, error) {
	if density == nil {
		return nil, errors.Wrap(ErrInvalidParams, "rejection sampling requires a density")
	}
	if !finite(lo, hi, max) || lo >= hi {
		return nil, errors.Wrapf(ErrInvalidParams, "rejection sampling requires finite lo < hi, got [%v, %v]", lo, hi)
	}
	if max <= 0 {
		return nil, errors.Wrapf(ErrInvalidParams, "density bound should be positive, got %v", max)
	}

	r := &Rejection{
		density:   density,
		lo:        lo,
		hi:        hi,
		max:       max,
		maxRounds: DefaultMaxRounds,
		maxBatch:  DefaultMaxBatch,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.maxRounds < 1 || r.maxBatch < 1 {
		return nil, errors.Wrapf(ErrInvalidParams, "rejection budget should be positive, got %d rounds of %d", r.maxRounds, r.maxBatch)
	}
	if r.boundCheck > 0 {
		if err := r.checkBound(); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Support returns the interval the samples are drawn from.
func (r *Rejection) Support() (float64, float64) {
	return r.lo, r.hi
}

// Bound returns the declared upper bound of the density.
func (r *Rejection) Bound() float64 {
	return r.max
}

func (r *Rejection) String() string {
	return fmt.Sprintf("pdf[%v, %v; %v]", r.lo, r.hi, r.max)
}

// Sample draws n values by rejection sampling.
func (r *Rejection) Sample(src rand.Source, n int) (data.Vector, error) {
	res, _, err := r.SampleStats(src, n)
	return res, err
}

// SampleStats draws n values like Sample and reports the work done.
// Each round draws all candidate x values before the thresholds y,
// so a seeded source replays identically.
func (r *Rejection) SampleStats(src rand.Source, n int) (data.Vector, RejectionStats, error) {
	var st RejectionStats
	if err := checkBatch(n); err != nil {
		return nil, st, err
	}

	res := make(data.Vector, 0, n)
	batch := 0
	for len(res) < n {
		if st.Rounds == r.maxRounds {
			log.Warningf("rejection sampling gave up: %d of %d samples after %d rounds (acceptance %.3g)",
				len(res), n, st.Rounds, st.AcceptanceRate())
			return nil, st, errors.Wrapf(ErrRejectionBudget, "%d of %d samples accepted from %d candidates in %d rounds",
				len(res), n, st.Candidates, st.Rounds)
		}
		st.Rounds++
		batch = r.nextBatch(n-len(res), batch, st)

		xs := UniformVector(src, r.lo, r.hi, batch)
		ys := UniformVector(src, 0, r.max, batch)
		st.Candidates += batch

		for i, x := range xs {
			if ys[i] <= r.density(x) {
				res = append(res, x)
				st.Accepted++
				if len(res) == n {
					break
				}
			}
		}
		log.Debugf("rejection round %d: %d candidates, %d/%d accepted", st.Rounds, batch, len(res), n)
	}

	return res, st, nil
}

// nextBatch sizes the next round from the acceptance rate observed
// so far, so that one more round is likely to finish the job.
func (r *Rejection) nextBatch(remaining, prev int, st RejectionStats) int {
	var next float64
	switch {
	case prev == 0:
		next = float64(remaining)
	case st.Accepted == 0:
		next = 2 * float64(prev)
	default:
		next = math.Ceil(1.1 * float64(remaining) * float64(st.Candidates) / float64(st.Accepted))
	}
	if next > float64(r.maxBatch) {
		return r.maxBatch
	}
	if next < 1 {
		return 1
	}
	return int(next)
}

func (r *Rejection) checkBound() error {
	points := r.boundCheck
	if points < 2 {
		points = 2
	}
	step := (r.hi - r.lo) / float64(points-1)
	for i := 0; i < points; i++ {
		x := r.lo + float64(i)*step
		if i == points-1 {
			x = r.hi
		}
		y := r.density(x)
		if math.IsNaN(y) || y < 0 || y > r.max {
			return errors.Wrapf(ErrDensityBound, "density(%v) = %v, declared bound %v", x, y, r.max)
		}
	}
	return nil
}
