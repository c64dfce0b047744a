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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "gorv.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 100000, cfg.BatchSize)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
batch_size: 5000
seed: 42
histogram_bins: 50
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.BatchSize)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 50, cfg.HistogramBins)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, Default().RejectionMaxRounds, cfg.RejectionMaxRounds, "unset keys keep defaults")

	t.Setenv("GORV_BATCH_SIZE", "777")
	t.Setenv("GORV_REJECTION_MAX_ROUNDS", "9")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 777, cfg.BatchSize, "environment overrides the file")
	assert.Equal(t, 9, cfg.RejectionMaxRounds)
	assert.Equal(t, uint64(42), cfg.Seed)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "batch_size: [1, 2]"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "batch_size: 0"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(writeConfig(t, "batchsize: 5000"))
	assert.Error(t, err, "unknown keys should be rejected")

	t.Setenv("GORV_HISTOGRAM_BINS", "many")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	var tests = []struct {
		name   string
		mutate func(*Config)
	}{
		{"batch", func(c *Config) { c.BatchSize = -1 }},
		{"rounds", func(c *Config) { c.RejectionMaxRounds = 0 }},
		{"max batch", func(c *Config) { c.RejectionMaxBatch = 0 }},
		{"bins", func(c *Config) { c.HistogramBins = 0 }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
	assert.NoError(t, Default().Validate())
}
