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
	"strings"

	"github.com/fentec-project/gorv/data"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution samples from a named parametric distribution.
// Parameters are validated when the Distribution is created, so
// sampling itself never fails for n >= 0.
type Distribution struct {
	name   string
	params []float64
	// rander binds the distribution to the source of one Sample call.
	rander func(src rand.Source) distuv.Rander
}

// Name returns the registry name of the distribution.
func (d *Distribution) Name() string {
	return d.name
}

// String returns the distribution with its parameters,
// e.g. "uniform(0, 1)".
func (d *Distribution) String() string {
	p := make([]string, len(d.params))
	for i, v := range d.params {
		p[i] = fmt.Sprint(v)
	}
	return d.name + "(" + strings.Join(p, ", ") + ")"
}

// Sample draws n independent values from the distribution.
func (d *Distribution) Sample(src rand.Source, n int) (data.Vector, error) {
	if err := checkBatch(n); err != nil {
		return nil, err
	}
	return data.NewRandomVector(n, d.rander(src)), nil
}

// NewUniform returns the continuous uniform distribution on [min, max).
func NewUniform(min, max float64) (*Distribution, error) {
	if !finite(min, max) || min >= max {
		return nil, errors.Wrapf(ErrInvalidParams, "uniform requires finite min < max, got [%v, %v]", min, max)
	}
	return &Distribution{
		name:   "uniform",
		params: []float64{min, max},
		rander: func(src rand.Source) distuv.Rander {
			return distuv.Uniform{Min: min, Max: max, Src: src}
		},
	}, nil
}

// NewNormal returns the normal distribution with mean mu and
// standard deviation sigma.
func NewNormal(mu, sigma float64) (*Distribution, error) {
	if !finite(mu, sigma) || sigma <= 0 {
		return nil, errors.Wrapf(ErrInvalidParams, "normal requires finite mu and sigma > 0, got mu=%v sigma=%v", mu, sigma)
	}
	return &Distribution{
		name:   "normal",
		params: []float64{mu, sigma},
		rander: func(src rand.Source) distuv.Rander {
			return distuv.Normal{Mu: mu, Sigma: sigma, Src: src}
		},
	}, nil
}

// NewBernoulli returns the Bernoulli distribution yielding 1 with
// probability p and 0 otherwise.
func NewBernoulli(p float64) (*Distribution, error) {
	if !probability(p) {
		return nil, errors.Wrapf(ErrInvalidParams, "bernoulli requires 0 <= p <= 1, got %v", p)
	}
	return &Distribution{
		name:   "bernoulli",
		params: []float64{p},
		rander: func(src rand.Source) distuv.Rander {
			return distuv.Bernoulli{P: p, Src: src}
		},
	}, nil
}

// NewPoisson returns the Poisson distribution with rate lambda.
func NewPoisson(lambda float64) (*Distribution, error) {
	if !finite(lambda) || lambda <= 0 {
		return nil, errors.Wrapf(ErrInvalidParams, "poisson requires finite lambda > 0, got %v", lambda)
	}
	return &Distribution{
		name:   "poisson",
		params: []float64{lambda},
		rander: func(src rand.Source) distuv.Rander {
			return distuv.Poisson{Lambda: lambda, Src: src}
		},
	}, nil
}

// NewBinomial returns the binomial distribution of n trials with
// success probability p. n must be a non-negative integer.
func NewBinomial(n, p float64) (*Distribution, error) {
	if !finite(n) || n < 0 || n != math.Trunc(n) {
		return nil, errors.Wrapf(ErrInvalidParams, "binomial requires a non-negative integer n, got %v", n)
	}
	if !probability(p) {
		return nil, errors.Wrapf(ErrInvalidParams, "binomial requires 0 <= p <= 1, got %v", p)
	}
	return &Distribution{
		name:   "binomial",
		params: []float64{n, p},
		rander: func(src rand.Source) distuv.Rander {
			return distuv.Binomial{N: n, P: p, Src: src}
		},
	}, nil
}

// NewExponential returns the exponential distribution with the given rate.
func NewExponential(rate float64) (*Distribution, error) {
	if !finite(rate) || rate <= 0 {
		return nil, errors.Wrapf(ErrInvalidParams, "exponential requires finite rate > 0, got %v", rate)
	}
	return &Distribution{
		name:   "exponential",
		params: []float64{rate},
		rander: func(src rand.Source) distuv.Rander {
			return distuv.Exponential{Rate: rate, Src: src}
		},
	}, nil
}

// NewLaplace returns the Laplace distribution with location mu.
func NewLaplace(mu, scale float64) (*Distribution, error) {
	if !finite(mu, scale) || scale <= 0 {
		return nil, errors.Wrapf(ErrInvalidParams, "laplace requires finite mu and scale > 0, got mu=%v scale=%v", mu, scale)
	}
	return &Distribution{
		name:   "laplace",
		params: []float64{mu, scale},
		rander: func(src rand.Source) distuv.Rander {
			return distuv.Laplace{Mu: mu, Scale: scale, Src: src}
		},
	}, nil
}

// NewGamma returns the gamma distribution with shape alpha and rate beta.
func NewGamma(alpha, beta float64) (*Distribution, error) {
	if !finite(alpha, beta) || alpha <= 0 || beta <= 0 {
		return nil, errors.Wrapf(ErrInvalidParams, "gamma requires alpha > 0 and beta > 0, got alpha=%v beta=%v", alpha, beta)
	}
	return &Distribution{
		name:   "gamma",
		params: []float64{alpha, beta},
		rander: func(src rand.Source) distuv.Rander {
			return distuv.Gamma{Alpha: alpha, Beta: beta, Src: src}
		},
	}, nil
}

// NewBeta returns the beta distribution on [0, 1].
func NewBeta(alpha, beta float64) (*Distribution, error) {
	if !finite(alpha, beta) || alpha <= 0 || beta <= 0 {
		return nil, errors.Wrapf(ErrInvalidParams, "beta requires alpha > 0 and beta > 0, got alpha=%v beta=%v", alpha, beta)
	}
	return &Distribution{
		name:   "beta",
		params: []float64{alpha, beta},
		rander: func(src rand.Source) distuv.Rander {
			return distuv.Beta{Alpha: alpha, Beta: beta, Src: src}
		},
	}, nil
}

// NewLogNormal returns the distribution of exp(X) for X normal
// with mean mu and standard deviation sigma.
func NewLogNormal(mu, sigma float64) (*Distribution, error) {
	if !finite(mu, sigma) || sigma <= 0 {
		return nil, errors.Wrapf(ErrInvalidParams, "lognormal requires finite mu and sigma > 0, got mu=%v sigma=%v", mu, sigma)
	}
	return &Distribution{
		name:   "lognormal",
		params: []float64{mu, sigma},
		rander: func(src rand.Source) distuv.Rander {
			return distuv.LogNormal{Mu: mu, Sigma: sigma, Src: src}
		},
	}, nil
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func probability(p float64) bool {
	return p >= 0 && p <= 1
}
