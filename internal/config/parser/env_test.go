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

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvKeyToPath(t *testing.T) {
	t.Parallel()

	for key, expected := range map[string]string{
		"LOG_LEVEL":                    "log.level",
		"BLOCKS_DEFAULT__KIND":         "blocks.default_kind",
		"BLOCKS_SUBSTITUTE__ENV__VARS": "blocks.substitute_env_vars",
		"SOMEINT":                      "someint",
	} {
		assert.Equal(t, expected, envKeyToPath(key), key)
	}
}

func TestToRealType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, true, toRealType("true"))
	assert.Equal(t, 42, toRealType("42"))
	assert.Equal(t, "standard", toRealType("standard"))
	assert.Equal(t, "[broken", toRealType("[broken"))
}

func TestKoanfFromEnv(t *testing.T) {
	// GIVEN
	t.Setenv("ENVPARSERTEST_LOG_LEVEL", "debug")
	t.Setenv("ENVPARSERTEST_BLOCKS_SUBSTITUTE__ENV__VARS", "true")
	t.Setenv("OTHER_LOG_LEVEL", "error")

	// WHEN
	konf, err := koanfFromEnv("ENVPARSERTEST_")

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "debug", konf.Get("log.level"))
	assert.Equal(t, true, konf.Get("blocks.substitute_env_vars"))
	assert.Len(t, konf.Keys(), 2)
}
