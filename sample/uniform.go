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
	"math/rand/v2"

	"github.com/fentec-project/gorv/data"
	"gonum.org/v1/gonum/stat/distuv"
)

// UniformVector draws n values uniformly from [lo, hi).
// It backs both coordinates of rejection sampling.
func UniformVector(src rand.Source, lo, hi float64, n int) data.Vector {
	return data.NewRandomVector(n, distuv.Uniform{Min: lo, Max: hi, Src: src})
}

// Constant samples a single fixed value.
type Constant struct {
	value float64
}

// NewConstant returns an instance of the Constant sampler.
func NewConstant(c float64) *Constant {
	return &Constant{value: c}
}

// Value returns the fixed value.
func (c *Constant) Value() float64 {
	return c.value
}

// Sample returns n copies of the value. It does not touch src.
func (c *Constant) Sample(_ rand.Source, n int) (data.Vector, error) {
	if err := checkBatch(n); err != nil {
		return nil, err
	}
	return data.NewConstantVector(n, c.value), nil
}
