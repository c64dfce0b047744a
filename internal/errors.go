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

package internal

import (
	"fmt"

	"github.com/pkg/errors"
)

var invalidStr = "is not valid"

var ErrInvalidParams = errors.New(fmt.Sprintf("distribution parameters %s", invalidStr))
var ErrInvalidBatch = errors.New(fmt.Sprintf("batch size %s", invalidStr))
var ErrUnknownDistribution = errors.New("distribution is not registered")
var ErrRejectionBudget = errors.New("rejection sampling budget exhausted")
var ErrDensityBound = errors.New("density exceeds its declared bound")
var ErrShapeMismatch = errors.New("sample batches differ in length")
