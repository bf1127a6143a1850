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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warwick-one-metre/rasa-pipelined/internal/pipelined"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestValidateNotExistingConfigFile(t *testing.T) {
	t.Parallel()

	err := ValidateConfig("foo.bar")

	require.Error(t, err)
	require.ErrorIs(t, err, pipelined.ErrConfiguration)
	assert.Contains(t, err.Error(), "read config file")
}

func TestValidateEmptyConfigFile(t *testing.T) {
	t.Parallel()

	err := ValidateConfig(writeConfig(t, "   \n"))

	require.Error(t, err)
	require.ErrorIs(t, err, pipelined.ErrConfiguration)
	assert.Contains(t, err.Error(), "empty")
}

func TestValidateConfigFileWithInvalidYAMLContent(t *testing.T) {
	t.Parallel()

	err := ValidateConfig(writeConfig(t, "foobar"))

	require.Error(t, err)
	require.ErrorIs(t, err, pipelined.ErrConfiguration)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidateConfigFileWithValidYAMLContentButFailingSchemaValidation(t *testing.T) {
	t.Parallel()

	for uc, content := range map[string]string{
		"unknown top level property": "foo: bar",
		"unknown log level":          "log:\n  level: verbose",
		"unknown log format":         "log:\n  format: json",
		"wrong type":                 "blocks:\n  substitute_env_vars: maybe",
	} {
		t.Run(uc, func(t *testing.T) {
			t.Parallel()

			err := ValidateConfig(writeConfig(t, content))

			require.Error(t, err)
			require.ErrorIs(t, err, pipelined.ErrConfiguration)
			assert.Contains(t, err.Error(), "validate")
		})
	}
}

func TestValidateValidConfigFile(t *testing.T) {
	t.Parallel()

	err := ValidateConfig("./test_data/test_config.yaml")

	require.NoError(t, err)
}

func TestValidateConfigSchemaWithEmptyDocument(t *testing.T) {
	t.Parallel()

	err := ValidateConfigSchema(strings.NewReader(""))

	require.NoError(t, err)
}
