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

// Package sample includes samplers for drawing batches of random
// values from different probability distributions.
//
// Package sample provides the Sampler interface along with different
// implementations of this interface: named parametric distributions
// backed by gonum's distuv, a constant source, a rejection sampler for
// arbitrary bounded densities and a discrete Gaussian.
//
// Every Sample call receives the rand.Source to draw from, so a single
// seeded source (see NewSeededSource) makes a whole computation
// reproducible. Distributions can also be built by name through the
// registry (see New and Register).
package sample
