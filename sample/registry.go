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
	"sort"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Factory builds a Sampler from decoded parameters.
type Factory func(params map[string]any) (Sampler, error)

var registry = struct {
	sync.RWMutex
	factories map[string]Factory
}{factories: make(map[string]Factory)}

// Register makes a distribution available to New under name,
// replacing any previous registration.
func Register(name string, f Factory) {
	registry.Lock()
	defer registry.Unlock()
	registry.factories[name] = f
}

// New builds the distribution registered under name. params are
// decoded into the distribution's parameters; unknown or missing
// parameters are reported as ErrInvalidParams.
func New(name string, params map[string]any) (Sampler, error) {
	registry.RLock()
	f, ok := registry.factories[name]
	registry.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDistribution, "%q", name)
	}
	return f(params)
}

// Names returns the registered distribution names in sorted order.
func Names() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.factories))
	for name := range registry.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DecodeParams decodes params into out, a pointer to a struct with
// mapstructure tags. Every field must be present and no extra keys
// are allowed.
func DecodeParams(name string, params map[string]any, out any) error {
	if params == nil {
		params = map[string]any{}
	}
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
		Metadata:    &md,
	})
	if err != nil {
		return errors.Wrap(err, "cannot create parameter decoder")
	}
	if err := dec.Decode(params); err != nil {
		return errors.Wrapf(ErrInvalidParams, "%s: %v", name, err)
	}
	if len(md.Unset) > 0 {
		sort.Strings(md.Unset)
		return errors.Wrapf(ErrInvalidParams, "%s: missing %s", name, strings.Join(md.Unset, ", "))
	}
	return nil
}

type locationScale struct {
	Mu    float64 `mapstructure:"mu"`
	Sigma float64 `mapstructure:"sigma"`
}

type shapes struct {
	Alpha float64 `mapstructure:"alpha"`
	Beta  float64 `mapstructure:"beta"`
}

// distribution keeps a failed constructor from leaking a typed nil
// into the Sampler interface.
func distribution(d *Distribution, err error) (Sampler, error) {
	if err != nil {
		return nil, err
	}
	return d, nil
}

func init() {
	Register("uniform", func(params map[string]any) (Sampler, error) {
		var p struct {
			Min float64 `mapstructure:"min"`
			Max float64 `mapstructure:"max"`
		}
		if err := DecodeParams("uniform", params, &p); err != nil {
			return nil, err
		}
		return distribution(NewUniform(p.Min, p.Max))
	})
	Register("normal", func(params map[string]any) (Sampler, error) {
		var p locationScale
		if err := DecodeParams("normal", params, &p); err != nil {
			return nil, err
		}
		return distribution(NewNormal(p.Mu, p.Sigma))
	})
	Register("lognormal", func(params map[string]any) (Sampler, error) {
		var p locationScale
		if err := DecodeParams("lognormal", params, &p); err != nil {
			return nil, err
		}
		return distribution(NewLogNormal(p.Mu, p.Sigma))
	})
	Register("bernoulli", func(params map[string]any) (Sampler, error) {
		var p struct {
			P float64 `mapstructure:"p"`
		}
		if err := DecodeParams("bernoulli", params, &p); err != nil {
			return nil, err
		}
		return distribution(NewBernoulli(p.P))
	})
	Register("poisson", func(params map[string]any) (Sampler, error) {
		var p struct {
			Lambda float64 `mapstructure:"lambda"`
		}
		if err := DecodeParams("poisson", params, &p); err != nil {
			return nil, err
		}
		return distribution(NewPoisson(p.Lambda))
	})
	Register("binomial", func(params map[string]any) (Sampler, error) {
		var p struct {
			N float64 `mapstructure:"n"`
			P float64 `mapstructure:"p"`
		}
		if err := DecodeParams("binomial", params, &p); err != nil {
			return nil, err
		}
		return distribution(NewBinomial(p.N, p.P))
	})
	Register("exponential", func(params map[string]any) (Sampler, error) {
		var p struct {
			Rate float64 `mapstructure:"rate"`
		}
		if err := DecodeParams("exponential", params, &p); err != nil {
			return nil, err
		}
		return distribution(NewExponential(p.Rate))
	})
	Register("laplace", func(params map[string]any) (Sampler, error) {
		var p struct {
			Mu    float64 `mapstructure:"mu"`
			Scale float64 `mapstructure:"scale"`
		}
		if err := DecodeParams("laplace", params, &p); err != nil {
			return nil, err
		}
		return distribution(NewLaplace(p.Mu, p.Scale))
	})
	Register("gamma", func(params map[string]any) (Sampler, error) {
		var p shapes
		if err := DecodeParams("gamma", params, &p); err != nil {
			return nil, err
		}
		return distribution(NewGamma(p.Alpha, p.Beta))
	})
	Register("beta", func(params map[string]any) (Sampler, error) {
		var p shapes
		if err := DecodeParams("beta", params, &p); err != nil {
			return nil, err
		}
		return distribution(NewBeta(p.Alpha, p.Beta))
	})
	Register("discrete_normal", func(params map[string]any) (Sampler, error) {
		var p struct {
			Sigma float64 `mapstructure:"sigma"`
		}
		if err := DecodeParams("discrete_normal", params, &p); err != nil {
			return nil, err
		}
		d, err := NewDiscreteNormal(p.Sigma)
		if err != nil {
			return nil, err
		}
		return d, nil
	})
	Register("constant", func(params map[string]any) (Sampler, error) {
		var p struct {
			Value float64 `mapstructure:"value"`
		}
		if err := DecodeParams("constant", params, &p); err != nil {
			return nil, err
		}
		return NewConstant(p.Value), nil
	})
}
