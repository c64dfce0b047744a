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

package rv

import (
	"math/rand/v2"

	"github.com/fentec-project/gorv/data"
	"github.com/fentec-project/gorv/metrics"
	"github.com/fentec-project/gorv/sample"
	"github.com/pkg/errors"
)

// evaluator carries what every node of one query shares.
type evaluator struct {
	src     rand.Source
	metrics *metrics.Collector
}

func (e *evaluator) sample(x *RV, n int) (data.Vector, error) {
	if x == nil {
		return nil, ErrNilNode
	}
	if n < 0 {
		return nil, errors.Wrapf(sample.ErrInvalidBatch, "cannot draw %d samples", n)
	}

	var (
		out data.Vector
		err error
	)
	switch x.kind {
	case KindLeaf:
		if x.leaf == nil {
			return nil, ErrNilNode
		}
		out, err = x.leaf.Sample(e.src, n)
	case KindConstant:
		out = data.NewConstantVector(n, x.value)
	case KindRejection:
		if x.rejection == nil {
			return nil, ErrNilNode
		}
		var st sample.RejectionStats
		out, st, err = x.rejection.SampleStats(e.src, n)
		e.metrics.ObserveRejection(st.Candidates, st.Accepted)
	case KindOperation:
		out, err = e.operate(x.op, n)
	default:
		return nil, errors.Errorf("unknown node kind %d", int(x.kind))
	}
	if err != nil {
		return nil, err
	}

	if len(out) != n {
		return nil, errors.Wrapf(ErrShapeMismatch, "%s yielded %d of %d samples", x, len(out), n)
	}
	e.metrics.ObserveSamples(x.kind.String(), n)
	return out, nil
}

// operate samples the left child completely before the right one.
func (e *evaluator) operate(op *operation, n int) (data.Vector, error) {
	lhs, err := e.sample(op.lhs, n)
	if err != nil {
		return nil, err
	}
	if op.binary == nil {
		return op.unary(lhs), nil
	}

	rhs, err := e.sample(op.rhs, n)
	if err != nil {
		return nil, err
	}
	return op.binary(lhs, rhs)
}
