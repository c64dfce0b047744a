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

// Package config loads the settings of the sampling engine from
// defaults, an optional YAML file and the environment, in that order.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/fentec-project/gorv/sample"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a loaded configuration fails
// validation.
var ErrInvalidConfig = errors.New("configuration is not valid")

const (
	// DefaultBatchSize is the number of samples drawn by queries that
	// do not name a batch size.
	DefaultBatchSize = 100000
	// DefaultHistogramBins is the number of bins of a summary histogram.
	DefaultHistogramBins = 200
)

// Config holds the engine settings.
type Config struct {
	// BatchSize is the default number of samples per query.
	BatchSize int `yaml:"batch_size" env:"GORV_BATCH_SIZE"`
	// Seed keys the engine's generator. 0 picks a random key.
	Seed uint64 `yaml:"seed" env:"GORV_SEED"`
	// RejectionMaxRounds and RejectionMaxBatch bound rejection
	// sampling of PDF leaves built through the engine.
	RejectionMaxRounds int `yaml:"rejection_max_rounds" env:"GORV_REJECTION_MAX_ROUNDS"`
	RejectionMaxBatch  int `yaml:"rejection_max_batch" env:"GORV_REJECTION_MAX_BATCH"`
	// HistogramBins is the default bin count of summaries.
	HistogramBins int `yaml:"histogram_bins" env:"GORV_HISTOGRAM_BINS"`
	// LogLevel is one of DEBUG, INFO, NOTICE, WARNING, ERROR, CRITICAL.
	LogLevel string `yaml:"log_level" env:"GORV_LOG_LEVEL"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		BatchSize:          DefaultBatchSize,
		RejectionMaxRounds: sample.DefaultMaxRounds,
		RejectionMaxBatch:  sample.DefaultMaxBatch,
		HistogramBins:      DefaultHistogramBins,
		LogLevel:           "INFO",
	}
}

// Load returns the default configuration overridden by the YAML file
// at path (skipped when path is empty) and then by GORV_* environment
// variables. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrap(err, "failed to read config")
		}
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, errors.Wrapf(err, "failed to parse %s", path)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every bound is positive.
func (c Config) Validate() error {
	switch {
	case c.BatchSize < 1:
		return errors.Wrapf(ErrInvalidConfig, "batch size should be positive, got %d", c.BatchSize)
	case c.RejectionMaxRounds < 1:
		return errors.Wrapf(ErrInvalidConfig, "rejection rounds should be positive, got %d", c.RejectionMaxRounds)
	case c.RejectionMaxBatch < 1:
		return errors.Wrapf(ErrInvalidConfig, "rejection batch should be positive, got %d", c.RejectionMaxBatch)
	case c.HistogramBins < 1:
		return errors.Wrapf(ErrInvalidConfig, "histogram bins should be positive, got %d", c.HistogramBins)
	}
	return nil
}
