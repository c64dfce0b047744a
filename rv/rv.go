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

// Package rv builds random variables as lazy expression trees over
// sampled leaves and evaluates them by pushing a batch of samples
// through the tree.
//
// An RV is one of four kinds: a leaf backed by a sample.Sampler, a
// constant, a rejection-sampled density on a finite support, or an
// operation combining one or two child RVs element-wise. Builders such
// as Add, Sin or Apply never sample; they return a new RV referencing
// their operands. Sampling happens only in Sample and in the Engine
// queries, where every node of the tree is asked for the same number
// of values.
//
// Nodes hold no sampled state, so an RV can be reused as an operand
// any number of times, including twice in one expression: x.Add(x)
// draws x twice, independently.
package rv

import (
	"fmt"
	"math/rand/v2"

	"github.com/fentec-project/gorv/data"
	"github.com/fentec-project/gorv/internal"
	"github.com/fentec-project/gorv/internal/logconf"
	"github.com/fentec-project/gorv/sample"
	"github.com/pkg/errors"
)

var log = logconf.Logger("gorv/rv")

var (
	// ErrShapeMismatch is returned when a node or a combinator yields
	// a batch of the wrong length. It signals a broken Sampler or
	// UnaryFunc, not a user error.
	ErrShapeMismatch = internal.ErrShapeMismatch
	// ErrNilNode is returned when a nil or zero RV is sampled.
	ErrNilNode = errors.New("random variable is nil")
)

// Kind enumerates the variants of an RV.
type Kind int

const (
	// KindLeaf draws from a sample.Sampler.
	KindLeaf Kind = iota
	// KindConstant always yields the same value.
	KindConstant
	// KindRejection draws from a density by rejection sampling.
	KindRejection
	// KindOperation combines the samples of one or two children.
	KindOperation
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindConstant:
		return "constant"
	case KindRejection:
		return "rejection"
	case KindOperation:
		return "operation"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// UnaryFunc maps a batch to a batch of the same length.
type UnaryFunc func(data.Vector) data.Vector

// BinaryFunc combines two batches of equal length element-wise.
type BinaryFunc func(a, b data.Vector) (data.Vector, error)

// RV is an immutable random variable. Only the fields of its kind
// are set.
type RV struct {
	kind Kind

	leaf      sample.Sampler
	value     float64
	rejection *sample.Rejection
	op        *operation
}

type operation struct {
	name   string
	infix  bool
	unary  UnaryFunc
	binary BinaryFunc
	lhs    *RV
	rhs    *RV
}

// PDF describes a density func on the finite support [Lo, Hi],
// bounded above by Max.
type PDF struct {
	Func func(float64) float64
	Lo   float64
	Hi   float64
	Max  float64
}

// FromSampler returns a leaf RV drawing from s. Constant and
// Rejection samplers yield RVs of the matching kind.
//
// A nil s, typed or not, gives a leaf that fails to sample with
// ErrNilNode.
func FromSampler(s sample.Sampler) *RV {
	switch v := s.(type) {
	case *sample.Constant:
		if v == nil {
			return &RV{kind: KindLeaf}
		}
		return Constant(v.Value())
	case *sample.Rejection:
		if v == nil {
			return &RV{kind: KindLeaf}
		}
		return &RV{kind: KindRejection, rejection: v}
	}
	return &RV{kind: KindLeaf, leaf: s}
}

// FromDistribution returns a leaf RV drawing from the distribution
// registered in package sample under name.
func FromDistribution(name string, params map[string]any) (*RV, error) {
	s, err := sample.New(name, params)
	if err != nil {
		return nil, err
	}
	return FromSampler(s), nil
}

// Uniform returns an RV uniform on [low, high).
func Uniform(low, high float64) (*RV, error) {
	d, err := sample.NewUniform(low, high)
	if err != nil {
		return nil, err
	}
	return FromSampler(d), nil
}

// Constant returns an RV that always yields c.
func Constant(c float64) *RV {
	return &RV{kind: KindConstant, value: c}
}

// FromPDF returns an RV drawing from pdf by rejection sampling.
// The options bound the sampling work (see sample.NewRejection).
func FromPDF(pdf PDF, opts ...sample.RejectionOption) (*RV, error) {
	r, err := sample.NewRejection(pdf.Func, pdf.Lo, pdf.Hi, pdf.Max, opts...)
	if err != nil {
		return nil, err
	}
	return &RV{kind: KindRejection, rejection: r}, nil
}

// Unary returns the RV f(x). name labels the node in String.
func Unary(name string, x *RV, f UnaryFunc) *RV {
	return &RV{kind: KindOperation, op: &operation{name: name, unary: f, lhs: x}}
}

// Binary returns the RV f(a, b), with a and b drawn independently.
// name labels the node in String.
func Binary(name string, a, b *RV, f BinaryFunc) *RV {
	return &RV{kind: KindOperation, op: &operation{name: name, binary: f, lhs: a, rhs: b}}
}

func infix(name string, a, b *RV, f BinaryFunc) *RV {
	x := Binary(name, a, b, f)
	x.op.infix = true
	return x
}

// Kind returns the variant of x. A nil x reports KindLeaf, like the
// zero RV.
func (x *RV) Kind() Kind {
	if x == nil {
		return KindLeaf
	}
	return x.kind
}

// Operands returns the children of an operation; rhs is nil for
// unary operations. Other kinds have no children.
func (x *RV) Operands() (lhs, rhs *RV) {
	if x == nil || x.kind != KindOperation || x.op == nil {
		return nil, nil
	}
	return x.op.lhs, x.op.rhs
}

// Sample draws n independent realizations of x from src. Children are
// sampled left before right, so a seeded src replays identically.
func (x *RV) Sample(src rand.Source, n int) (data.Vector, error) {
	e := evaluator{src: src}
	return e.sample(x, n)
}

// String renders the expression, e.g. "(uniform(0, 1) + 3)".
func (x *RV) String() string {
	if x == nil {
		return "<nil>"
	}
	switch x.kind {
	case KindLeaf:
		if s, ok := x.leaf.(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprintf("%T", x.leaf)
	case KindConstant:
		return fmt.Sprint(x.value)
	case KindRejection:
		if x.rejection == nil {
			return "<nil>"
		}
		return x.rejection.String()
	case KindOperation:
		if x.op.binary == nil {
			return fmt.Sprintf("%s(%s)", x.op.name, x.op.lhs)
		}
		if x.op.infix {
			return fmt.Sprintf("(%s %s %s)", x.op.lhs, x.op.name, x.op.rhs)
		}
		return fmt.Sprintf("%s(%s, %s)", x.op.name, x.op.lhs, x.op.rhs)
	}
	return x.kind.String()
}
