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

package sample_test

import (
	"math/rand/v2"
	"testing"

	"github.com/fentec-project/gorv/data"
	"github.com/fentec-project/gorv/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var tests = []struct {
		name   string
		params map[string]any
		str    string
	}{
		{"uniform", map[string]any{"min": 0, "max": 1}, "uniform(0, 1)"},
		{"normal", map[string]any{"mu": 1.5, "sigma": 2}, "normal(1.5, 2)"},
		{"lognormal", map[string]any{"mu": 0, "sigma": 1}, "lognormal(0, 1)"},
		{"bernoulli", map[string]any{"p": 0.5}, "bernoulli(0.5)"},
		{"poisson", map[string]any{"lambda": 0.5}, "poisson(0.5)"},
		{"binomial", map[string]any{"n": 10, "p": 0.2}, "binomial(10, 0.2)"},
		{"exponential", map[string]any{"rate": 7}, "exponential(7)"},
		{"laplace", map[string]any{"mu": 0, "scale": 1}, "laplace(0, 1)"},
		{"gamma", map[string]any{"alpha": 2, "beta": 1}, "gamma(2, 1)"},
		{"beta", map[string]any{"alpha": 2, "beta": 3}, "beta(2, 3)"},
		{"discrete_normal", map[string]any{"sigma": 3}, "discrete_normal(3)"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, err := sample.New(test.name, test.params)
			require.NoError(t, err)
			assert.Equal(t, test.str, s.(interface{ String() string }).String())

			vec, err := s.Sample(sample.NewSeededSource(1), 10)
			require.NoError(t, err)
			assert.Len(t, vec, 10)
		})
	}

	c, err := sample.New("constant", map[string]any{"value": 4})
	require.NoError(t, err)
	vec, err := c.Sample(nil, 3)
	require.NoError(t, err)
	assert.Equal(t, data.Vector{4, 4, 4}, vec)
}

func TestNew_Errors(t *testing.T) {
	_, err := sample.New("cauchy", nil)
	assert.ErrorIs(t, err, sample.ErrUnknownDistribution)

	var tests = []struct {
		name   string
		params map[string]any
	}{
		{"uniform", nil},
		{"uniform", map[string]any{"min": 0}},
		{"uniform", map[string]any{"min": 0, "max": 1, "mode": 0.5}},
		{"uniform", map[string]any{"min": 1, "max": 0}},
		{"normal", map[string]any{"mu": "zero", "sigma": 1}},
		{"binomial", map[string]any{"n": 3.5, "p": 0.5}},
	}
	for _, test := range tests {
		s, err := sample.New(test.name, test.params)
		assert.Nil(t, s)
		assert.ErrorIs(t, err, sample.ErrInvalidParams, "%s %v", test.name, test.params)
	}
}

type fixed struct{}

func (fixed) Sample(_ rand.Source, n int) (data.Vector, error) {
	return data.NewConstantVector(n, 1), nil
}

func TestRegister(t *testing.T) {
	sample.Register("test_fixed", func(map[string]any) (sample.Sampler, error) {
		return fixed{}, nil
	})

	assert.Contains(t, sample.Names(), "test_fixed")
	assert.Contains(t, sample.Names(), "uniform")

	s, err := sample.New("test_fixed", nil)
	require.NoError(t, err)
	vec, err := s.Sample(nil, 2)
	require.NoError(t, err)
	assert.Equal(t, data.Vector{1, 1}, vec)
}
