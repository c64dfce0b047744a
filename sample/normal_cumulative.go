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
	"sort"

	"github.com/fentec-project/gorv/data"
	"github.com/pkg/errors"
)

// tailCut is the number of standard deviations covered by the
// precomputed table. Mass beyond it is below 2^-100.
const tailCut = 12

// MaxDiscreteSigma bounds sigma of DiscreteNormal, since the
// precomputed table grows linearly with it.
const MaxDiscreteSigma = 1 << 16

// DiscreteNormal samples integers from the discrete Normal (Gaussian)
// distribution centered on 0: each integer x is drawn with probability
// proportional to exp(-x^2/(2*sigma^2)). Sampling walks a precomputed
// cumulative table, which is why sigma is limited by MaxDiscreteSigma.
type DiscreteNormal struct {
	sigma   float64
	preCumu []float64
}

// NewDiscreteNormal returns an instance of DiscreteNormal sampler.
// Values are precomputed when this function is called, so that Sample
// merely searches the table.
func NewDiscreteNormal(sigma float64) (*DiscreteNormal, error) {
	if !finite(sigma) || sigma <= 0 || sigma > MaxDiscreteSigma {
		return nil, errors.Wrapf(ErrInvalidParams, "discrete normal requires 0 < sigma <= %d, got %v", MaxDiscreteSigma, sigma)
	}
	s := &DiscreteNormal{sigma: sigma}
	s.precompCumu()
	return s, nil
}

// Sigma returns the standard deviation parameter.
func (c *DiscreteNormal) Sigma() float64 {
	return c.sigma
}

func (c *DiscreteNormal) String() string {
	return fmt.Sprintf("discrete_normal(%v)", c.sigma)
}

// Sample draws n integers (as float64) with the discrete Gaussian
// distribution.
func (c *DiscreteNormal) Sample(src rand.Source, n int) (data.Vector, error) {
	if err := checkBatch(n); err != nil {
		return nil, err
	}
	rng := newRand(src)
	total := c.preCumu[len(c.preCumu)-1]
	res := make(data.Vector, n)
	for j := range res {
		u := rng.Float64() * 2 * total
		sign := 1.0
		// the upper half of the table mirrors the negative integers
		if u >= total {
			u -= total
			sign = -1
		}
		i := sort.Search(len(c.preCumu), func(i int) bool { return u < c.preCumu[i] })
		res[j] = sign * float64(i-1)
	}
	return res, nil
}

// precompCumu precomputes the cumulative weights. Zero gets half its
// weight on each side so that it is not counted twice.
func (c *DiscreteNormal) precompCumu() {
	cut := int(c.sigma*tailCut) + 1
	vec := make([]float64, cut+1)
	twoSigmaSquare := 2 * c.sigma * c.sigma
	for i := 0; i < cut; i++ {
		value := math.Exp(-float64(i*i) / twoSigmaSquare)
		if i == 0 {
			value /= 2
		}
		vec[i+1] = vec[i] + value
	}
	c.preCumu = vec
}

func newRand(src rand.Source) *rand.Rand {
	if src == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(src)
}
