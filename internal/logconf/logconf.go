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

// Package logconf applies a textual log level to the loggers of
// every gorv package.
package logconf

import (
	"strings"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

// Modules lists the logger names used across the module.
var Modules = []string{"gorv/sample", "gorv/rv", "gorv/model"}

// Logger returns the logger of module, starting at INFO until
// SetLevel says otherwise.
func Logger(module string) *logging.Logger {
	logging.SetLevel(logging.INFO, module)
	return logging.MustGetLogger(module)
}

// SetLevel parses name (DEBUG, INFO, NOTICE, WARNING, ERROR, CRITICAL,
// case-insensitive) and applies it to all gorv loggers. An empty name
// leaves the levels untouched.
func SetLevel(name string) error {
	if name == "" {
		return nil
	}
	level, err := logging.LogLevel(strings.ToUpper(name))
	if err != nil {
		return errors.Wrapf(err, "cannot set log level %q", name)
	}
	for _, m := range Modules {
		logging.SetLevel(level, m)
	}
	return nil
}
