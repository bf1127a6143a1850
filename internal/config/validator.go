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
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/knadh/koanf/maps"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/warwick-one-metre/rasa-pipelined/internal/pipelined"
	"github.com/warwick-one-metre/rasa-pipelined/internal/x/errorchain"
	"github.com/warwick-one-metre/rasa-pipelined/schema"
)

// ValidateConfig checks the given configuration file against the embedded
// configuration schema.
func ValidateConfig(configPath string) error {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return errorchain.NewWithMessage(pipelined.ErrConfiguration,
			"could not read config file").CausedBy(err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return errorchain.NewWithMessage(pipelined.ErrConfiguration, "config file is empty")
	}

	return ValidateConfigSchema(bytes.NewReader(raw))
}

func ValidateConfigSchema(src io.Reader) error {
	var conf map[string]any

	if err := yaml.NewDecoder(src).Decode(&conf); err != nil && !errors.Is(err, io.EOF) {
		return errorchain.NewWithMessage(pipelined.ErrConfiguration,
			"failed to parse config").CausedBy(err)
	}

	if conf == nil {
		conf = map[string]any{}
	}

	compiledSchema, err := compileSchema("config.schema.json", schema.ConfigSchema)
	if err != nil {
		return errorchain.NewWithMessage(pipelined.ErrInternal,
			"failed to compile JSON schema").CausedBy(err)
	}

	maps.IntfaceKeysToStrings(conf)

	if err = compiledSchema.Validate(conf); err != nil {
		return errorchain.NewWithMessage(pipelined.ErrConfiguration,
			"failed to validate config").CausedBy(err)
	}

	return nil
}

func compileSchema(url string, content []byte) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	if err = compiler.AddResource(url, doc); err != nil {
		return nil, err
	}

	return compiler.Compile(url)
}
