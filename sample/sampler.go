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
	"github.com/fentec-project/gorv/internal"
	"github.com/fentec-project/gorv/internal/logconf"
	"github.com/pkg/errors"
)

var log = logconf.Logger("gorv/sample")

var (
	// ErrInvalidParams is returned by constructors given parameters
	// outside the distribution's domain.
	ErrInvalidParams = internal.ErrInvalidParams
	// ErrInvalidBatch is returned when a negative batch size is requested.
	ErrInvalidBatch = internal.ErrInvalidBatch
	// ErrUnknownDistribution is returned by New for unregistered names.
	ErrUnknownDistribution = internal.ErrUnknownDistribution
	// ErrRejectionBudget is returned when rejection sampling runs out
	// of rounds before collecting the requested number of samples.
	ErrRejectionBudget = internal.ErrRejectionBudget
	// ErrDensityBound is returned by the optional density check of
	// NewRejection.
	ErrDensityBound = internal.ErrDensityBound
)

// Sampler draws batches of independent values. Sample must return
// exactly n values for every n >= 0.
type Sampler interface {
	Sample(src rand.Source, n int) (data.Vector, error)
}

func checkBatch(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidBatch, "cannot draw %d samples", n)
	}
	return nil
}
