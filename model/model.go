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

// Package model compiles declarative descriptions of named random
// variables into rv expression trees.
//
// A model file lists variables, each an expression that sets exactly
// one of dist, const, ref or op:
//
//	variables:
//	  u: {dist: uniform, params: {min: 0, max: 1}}
//	  z: {op: add, args: [{ref: u}, {const: 3}]}
//	  s: {op: sin, args: [{ref: u}]}
//
// Distributions are looked up in the sample registry. Densities cannot
// be written down in a file, so rejection leaves are built in code.
package model

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/fentec-project/gorv/internal/logconf"
	"github.com/fentec-project/gorv/rv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var log = logconf.Logger("gorv/model")

var (
	// ErrInvalidExpr is returned for malformed expressions: none or
	// several kinds set, unknown operators and wrong arity.
	ErrInvalidExpr = errors.New("invalid expression")
	// ErrUndefined is returned when a ref names no variable.
	ErrUndefined = errors.New("undefined variable")
	// ErrCycle is returned when variables reference each other in a loop.
	ErrCycle = errors.New("reference cycle")
)

// Expr is a single node of a model file.
type Expr struct {
	Dist   string         `yaml:"dist,omitempty"`
	Params map[string]any `yaml:"params,omitempty"`
	Const  *float64       `yaml:"const,omitempty"`
	Ref    string         `yaml:"ref,omitempty"`
	Op     string         `yaml:"op,omitempty"`
	Args   []Expr         `yaml:"args,omitempty"`
}

// Model holds named variable expressions.
type Model struct {
	Variables map[string]Expr `yaml:"variables"`
}

var unaryOps = map[string]func(*rv.RV) *rv.RV{
	"neg":   (*rv.RV).Neg,
	"sin":   rv.Sin,
	"cos":   rv.Cos,
	"tan":   rv.Tan,
	"cot":   rv.Cot,
	"log":   rv.Log,
	"exp":   rv.Exp,
	"sqrt":  rv.Sqrt,
	"floor": rv.Floor,
	"ceil":  rv.Ceil,
	"abs":   rv.Abs,
}

var binaryOps = map[string]func(a, b *rv.RV) *rv.RV{
	"add": (*rv.RV).Add,
	"sub": (*rv.RV).Sub,
	"mul": (*rv.RV).Mul,
	"div": (*rv.RV).Div,
	"pow": (*rv.RV).Pow,
	"min": rv.Min,
	"max": rv.Max,
}

// Parse decodes a model from YAML. Unknown keys are rejected.
func Parse(raw []byte) (*Model, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	m := &Model{}
	if err := dec.Decode(m); err != nil {
		return nil, errors.Wrap(err, "failed to parse model")
	}
	if len(m.Variables) == 0 {
		return nil, errors.Wrap(ErrInvalidExpr, "model defines no variables")
	}
	return m, nil
}

// Load reads and parses the model file at path.
func Load(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read model")
	}
	m, err := Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", path)
	}
	return m, nil
}

// Names returns the variable names in sorted order.
func (m *Model) Names() []string {
	names := make([]string, 0, len(m.Variables))
	for name := range m.Variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build compiles every variable. A variable referenced several times
// compiles to a single node, which the evaluator samples once per use.
func (m *Model) Build() (map[string]*rv.RV, error) {
	b := newBuilder(m)
	for _, name := range m.Names() {
		if _, err := b.variable(name); err != nil {
			return nil, err
		}
	}
	log.Debugf("built %d variables", len(b.done))
	return b.done, nil
}

// Variable compiles the named variable and whatever it references.
func (m *Model) Variable(name string) (*rv.RV, error) {
	return newBuilder(m).variable(name)
}

type builder struct {
	model    *Model
	done     map[string]*rv.RV
	visiting map[string]bool
	path     []string
}

func newBuilder(m *Model) *builder {
	return &builder{
		model:    m,
		done:     make(map[string]*rv.RV),
		visiting: make(map[string]bool),
	}
}

func (b *builder) variable(name string) (*rv.RV, error) {
	if x, ok := b.done[name]; ok {
		return x, nil
	}
	expr, ok := b.model.Variables[name]
	if !ok {
		return nil, errors.Wrapf(ErrUndefined, "%q", name)
	}
	if b.visiting[name] {
		return nil, errors.Wrapf(ErrCycle, "%v -> %s", b.path, name)
	}

	b.visiting[name] = true
	b.path = append(b.path, name)
	x, err := b.expr(expr)
	b.path = b.path[:len(b.path)-1]
	delete(b.visiting, name)
	if err != nil {
		return nil, errors.Wrapf(err, "variable %s", name)
	}

	b.done[name] = x
	return x, nil
}

func (b *builder) expr(e Expr) (*rv.RV, error) {
	if err := e.check(); err != nil {
		return nil, errors.Wrapf(err, "in %s", e)
	}

	switch {
	case e.Dist != "":
		x, err := rv.FromDistribution(e.Dist, e.Params)
		if err != nil {
			return nil, errors.Wrapf(err, "in %s", e)
		}
		return x, nil
	case e.Const != nil:
		return rv.Constant(*e.Const), nil
	case e.Ref != "":
		return b.variable(e.Ref)
	}

	args := make([]*rv.RV, len(e.Args))
	for i, a := range e.Args {
		x, err := b.expr(a)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d of %s", i, e.Op)
		}
		args[i] = x
	}

	if f, ok := unaryOps[e.Op]; ok {
		if len(args) != 1 {
			return nil, errors.Wrapf(ErrInvalidExpr, "%s takes 1 argument, got %d", e.Op, len(args))
		}
		return f(args[0]), nil
	}
	f := binaryOps[e.Op]
	if len(args) != 2 {
		return nil, errors.Wrapf(ErrInvalidExpr, "%s takes 2 arguments, got %d", e.Op, len(args))
	}
	return f(args[0], args[1]), nil
}

// check verifies that exactly one kind is set and that params and
// args only appear with dist and op.
func (e Expr) check() error {
	var kinds []string
	if e.Dist != "" {
		kinds = append(kinds, "dist")
	}
	if e.Const != nil {
		kinds = append(kinds, "const")
	}
	if e.Ref != "" {
		kinds = append(kinds, "ref")
	}
	if e.Op != "" {
		kinds = append(kinds, "op")
	}

	switch {
	case len(kinds) != 1:
		return errors.Wrapf(ErrInvalidExpr, "expression should set one of dist, const, ref, op, got %v", kinds)
	case e.Params != nil && e.Dist == "":
		return errors.Wrap(ErrInvalidExpr, "params without dist")
	case e.Args != nil && e.Op == "":
		return errors.Wrap(ErrInvalidExpr, "args without op")
	case e.Op != "" && unaryOps[e.Op] == nil && binaryOps[e.Op] == nil:
		return errors.Wrapf(ErrInvalidExpr, "unknown operator %q", e.Op)
	}
	return nil
}

func (e Expr) String() string {
	switch {
	case e.Dist != "":
		return fmt.Sprintf("%s %v", e.Dist, e.Params)
	case e.Const != nil:
		return fmt.Sprint(*e.Const)
	case e.Ref != "":
		return "$" + e.Ref
	}
	return fmt.Sprintf("%s%v", e.Op, e.Args)
}
