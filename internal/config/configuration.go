// Copyright 2025 The rasa-pipelined Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"github.com/warwick-one-metre/rasa-pipelined/internal/config/parser"
	"github.com/warwick-one-metre/rasa-pipelined/internal/pipelined"
	"github.com/warwick-one-metre/rasa-pipelined/internal/validation"
	"github.com/warwick-one-metre/rasa-pipelined/internal/x/errorchain"
)

type (
	ConfigurationPath string
	EnvVarPrefix      string
)

type Configuration struct {
	Log    LoggingConfig `koanf:"log"`
	Blocks BlocksConfig  `koanf:"blocks"`
}

func NewConfiguration(
	envPrefix EnvVarPrefix,
	configFile ConfigurationPath,
	validator validation.Validator,
) (*Configuration, error) {
	// copy defaults
	result := defaultConfig()

	err := parser.New(
		parser.WithDecodeHookFunc(logLevelDecodeHookFunc),
		parser.WithDecodeHookFunc(logFormatDecodeHookFunc),
		parser.WithConfigFile(string(configFile)),
		parser.WithDefaultConfigFilename("rasa-pipelined.yaml"),
		parser.WithEnvPrefix(string(envPrefix)),
		parser.WithConfigLookupDir("."),
		parser.WithConfigLookupDir("$HOME/.config"),
		parser.WithConfigLookupDir("/etc/rasa-pipelined"),
		parser.WithConfigValidator(ValidateConfig),
	).Load(&result)
	if err != nil {
		return nil, errorchain.NewWithMessage(pipelined.ErrConfiguration,
			"failed to load configuration").CausedBy(err)
	}

	if err = validator.ValidateStruct(result); err != nil {
		return nil, errorchain.NewWithMessage(pipelined.ErrConfiguration,
			"failed validating configuration").CausedBy(err)
	}

	return &result, nil
}
