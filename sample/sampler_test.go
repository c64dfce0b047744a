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
	"testing"

	"github.com/fentec-project/gorv/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// paramBounds are the accepted intervals for the empirical mean and
// variance of a sampler.
type paramBounds struct {
	meanLow, meanHigh float64
	varLow, varHigh   float64
}

const testBatch = 100000

func testSampler(t *testing.T, s sample.Sampler, expect paramBounds) {
	vec, err := s.Sample(sample.NewSeededSource(7), testBatch)
	require.NoError(t, err)
	require.Len(t, vec, testBatch)

	me, v := vec.MeanVariance()
	assert.True(t, me > expect.meanLow, "mean value %v of the distribution is too small", me)
	assert.True(t, me < expect.meanHigh, "mean value %v of the distribution is too big", me)
	assert.True(t, v > expect.varLow, "variance %v of the distribution is too small", v)
	assert.True(t, v < expect.varHigh, "variance %v of the distribution is too big", v)
}
