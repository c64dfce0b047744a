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
	"math"

	"github.com/fentec-project/gorv/data"
)

// Add returns the RV x + y.
func (x *RV) Add(y *RV) *RV {
	return infix("+", x, y, data.Vector.Add)
}

// Sub returns the RV x - y.
func (x *RV) Sub(y *RV) *RV {
	return infix("-", x, y, data.Vector.Sub)
}

// Mul returns the RV x * y.
func (x *RV) Mul(y *RV) *RV {
	return infix("*", x, y, data.Vector.Mul)
}

// Div returns the RV x / y. Division by zero follows IEEE 754.
func (x *RV) Div(y *RV) *RV {
	return infix("/", x, y, data.Vector.Div)
}

// Pow returns the RV x ^ y.
func (x *RV) Pow(y *RV) *RV {
	return infix("^", x, y, zip(math.Pow))
}

// AddConst returns the RV x + k.
func (x *RV) AddConst(k float64) *RV {
	return x.Add(Constant(k))
}

// SubConst returns the RV x - k.
func (x *RV) SubConst(k float64) *RV {
	return x.Sub(Constant(k))
}

// MulConst returns the RV x * k.
func (x *RV) MulConst(k float64) *RV {
	return x.Mul(Constant(k))
}

// DivConst returns the RV x / k.
func (x *RV) DivConst(k float64) *RV {
	return x.Div(Constant(k))
}

// Neg returns the RV -x.
func (x *RV) Neg() *RV {
	return Unary("-", x, func(v data.Vector) data.Vector { return v.MulScalar(-1) })
}

// Apply returns the RV f(x) for an element-wise f.
func (x *RV) Apply(name string, f func(float64) float64) *RV {
	return Unary(name, x, mapping(f))
}

// ApplyVector returns the RV f(x) for a batch-wise f. f must return
// a batch of the length it was given.
func (x *RV) ApplyVector(name string, f UnaryFunc) *RV {
	return Unary(name, x, f)
}

// Combine returns the RV f(a, b) for an element-wise f.
func Combine(name string, a, b *RV, f func(x, y float64) float64) *RV {
	return Binary(name, a, b, zip(f))
}

// Min returns the RV min(a, b).
func Min(a, b *RV) *RV {
	return Binary("min", a, b, data.Vector.Min)
}

// Max returns the RV max(a, b).
func Max(a, b *RV) *RV {
	return Binary("max", a, b, data.Vector.Max)
}

// Sin returns the RV sin(x).
func Sin(x *RV) *RV {
	return x.Apply("sin", math.Sin)
}

// Cos returns the RV cos(x).
func Cos(x *RV) *RV {
	return x.Apply("cos", math.Cos)
}

// Tan returns the RV tan(x).
func Tan(x *RV) *RV {
	return x.Apply("tan", math.Tan)
}

// Cot returns the RV 1/tan(x).
func Cot(x *RV) *RV {
	return x.Apply("cot", func(a float64) float64 { return 1 / math.Tan(a) })
}

// Log returns the RV ln(x). Non-positive samples map to NaN or -Inf.
func Log(x *RV) *RV {
	return x.Apply("log", math.Log)
}

// Exp returns the RV e^x.
func Exp(x *RV) *RV {
	return x.Apply("exp", math.Exp)
}

// Sqrt returns the RV sqrt(x). Negative samples map to NaN.
func Sqrt(x *RV) *RV {
	return x.Apply("sqrt", math.Sqrt)
}

// Floor returns the RV floor(x).
func Floor(x *RV) *RV {
	return x.Apply("floor", math.Floor)
}

// Ceil returns the RV ceil(x).
func Ceil(x *RV) *RV {
	return x.Apply("ceil", math.Ceil)
}

// Abs returns the RV |x|.
func Abs(x *RV) *RV {
	return x.Apply("abs", math.Abs)
}

func mapping(f func(float64) float64) UnaryFunc {
	return func(v data.Vector) data.Vector {
		return v.Apply(f)
	}
}

func zip(f func(x, y float64) float64) BinaryFunc {
	return func(a, b data.Vector) (data.Vector, error) {
		return a.Zip(b, f)
	}
}
