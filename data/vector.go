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

// Package data holds Vector, the batch of float64 samples that flows
// through a random variable's expression tree.
package data

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/fentec-project/gorv/internal"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Vector wraps a slice of float64 samples.
type Vector []float64

// NewRandomVector returns a new Vector instance
// with len values drawn from the provided distribution.
func NewRandomVector(len int, r distuv.Rander) Vector {
	vec := make(Vector, len)
	for i := range vec {
		vec[i] = r.Rand()
	}

	return vec
}

// NewConstantVector returns a new Vector instance
// with all elements set to constant c.
func NewConstantVector(len int, c float64) Vector {
	vec := make(Vector, len)
	for i := range vec {
		vec[i] = c
	}

	return vec
}

// Copy creates a new vector with the same values
// of the entries.
func (v Vector) Copy() Vector {
	newVec := make(Vector, len(v))
	copy(newVec, v)

	return newVec
}

// Apply applies an element-wise function f to vector v.
// The result is returned in a new Vector.
func (v Vector) Apply(f func(float64) float64) Vector {
	res := make(Vector, len(v))
	for i, vi := range v {
		res[i] = f(vi)
	}

	return res
}

// Zip combines v and other element-wise with f.
// It returns an error if vectors have different numbers of elements.
func (v Vector) Zip(other Vector, f func(a, b float64) float64) (Vector, error) {
	if err := v.checkLen(other); err != nil {
		return nil, err
	}
	res := make(Vector, len(v))
	for i, vi := range v {
		res[i] = f(vi, other[i])
	}

	return res, nil
}

// Add adds vectors v and other.
// The result is returned in a new Vector.
func (v Vector) Add(other Vector) (Vector, error) {
	if err := v.checkLen(other); err != nil {
		return nil, err
	}
	return floats.AddTo(make(Vector, len(v)), v, other), nil
}

// Sub subtracts vectors v and other.
// The result is returned in a new Vector.
func (v Vector) Sub(other Vector) (Vector, error) {
	if err := v.checkLen(other); err != nil {
		return nil, err
	}
	return floats.SubTo(make(Vector, len(v)), v, other), nil
}

// Mul multiplies vectors v and other element-wise.
// The result is returned in a new Vector.
func (v Vector) Mul(other Vector) (Vector, error) {
	if err := v.checkLen(other); err != nil {
		return nil, err
	}
	return floats.MulTo(make(Vector, len(v)), v, other), nil
}

// Div divides vector v by other element-wise, following IEEE 754
// for zero divisors.
// The result is returned in a new Vector.
func (v Vector) Div(other Vector) (Vector, error) {
	if err := v.checkLen(other); err != nil {
		return nil, err
	}
	return floats.DivTo(make(Vector, len(v)), v, other), nil
}

// Min returns the element-wise minimum of v and other.
func (v Vector) Min(other Vector) (Vector, error) {
	return v.Zip(other, math.Min)
}

// Max returns the element-wise maximum of v and other.
func (v Vector) Max(other Vector) (Vector, error) {
	return v.Zip(other, math.Max)
}

// AddScalar adds x to every element of v.
// The result is returned in a new Vector.
func (v Vector) AddScalar(x float64) Vector {
	res := v.Copy()
	floats.AddConst(x, res)

	return res
}

// MulScalar multiplies vector v by a given scalar x.
// The result is returned in a new Vector.
func (v Vector) MulScalar(x float64) Vector {
	res := v.Copy()
	floats.Scale(x, res)

	return res
}

// Mean returns the arithmetic mean of v, NaN for an empty vector.
func (v Vector) Mean() float64 {
	if len(v) == 0 {
		return math.NaN()
	}
	return stat.Mean(v, nil)
}

// Variance returns the population variance of v (divisor len(v)),
// NaN for an empty vector.
func (v Vector) Variance() float64 {
	if len(v) == 0 {
		return math.NaN()
	}
	return stat.PopVariance(v, nil)
}

// MeanVariance returns the mean and population variance of v
// computed from the same elements.
func (v Vector) MeanVariance() (float64, float64) {
	if len(v) == 0 {
		return math.NaN(), math.NaN()
	}
	return stat.PopMeanVariance(v, nil)
}

// Bounds returns the smallest and the largest element of v.
// It returns an error for an empty vector.
func (v Vector) Bounds() (float64, float64, error) {
	if len(v) == 0 {
		return 0, 0, fmt.Errorf("bounds of an empty vector are undefined")
	}
	return floats.Min(v), floats.Max(v), nil
}

// CheckBound checks whether all vector elements lie in [lo, hi].
// It returns error if at least one element is outside or NaN.
func (v Vector) CheckBound(lo, hi float64) error {
	for i, c := range v {
		if !(c >= lo && c <= hi) {
			return fmt.Errorf("coordinate %d (%v) is outside [%v, %v]", i, c, lo, hi)
		}
	}

	return nil
}

// Histogram sorts a copy of v into bins equal-width bins spanning
// its range. It returns the bins+1 dividers and the counts per bin;
// with density set the counts are normalized so that the histogram
// integrates to one.
func (v Vector) Histogram(bins int, density bool) (dividers, counts []float64, err error) {
	if bins < 1 {
		return nil, nil, errors.Errorf("histogram needs at least one bin, got %d", bins)
	}
	if floats.HasNaN(v) {
		return nil, nil, errors.New("histogram of a vector holding NaN")
	}
	lo, hi, err := v.Bounds()
	if err != nil {
		return nil, nil, err
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, nil, errors.Errorf("histogram range [%v, %v] is not finite", lo, hi)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	if math.IsInf(hi-lo, 0) {
		return nil, nil, errors.Errorf("histogram range [%v, %v] is too wide", lo, hi)
	}

	dividers = floats.Span(make([]float64, bins+1), lo, hi)
	// the last divider is an exclusive upper bound
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	sorted := v.Copy()
	sort.Float64s(sorted)
	counts = stat.Histogram(nil, dividers, sorted, nil)

	if density {
		width := (hi - lo) / float64(bins)
		floats.Scale(1/(float64(len(v))*width), counts)
	}

	return dividers, counts, nil
}

func (v Vector) checkLen(other Vector) error {
	if len(v) != len(other) {
		return errors.Wrapf(internal.ErrShapeMismatch, "lengths %d and %d", len(v), len(other))
	}
	return nil
}

// String produces a string representation of a vector.
func (v Vector) String() string {
	var b strings.Builder
	for _, yi := range v {
		b.WriteString(" ")
		b.WriteString(fmt.Sprint(yi))
	}
	return b.String()
}
