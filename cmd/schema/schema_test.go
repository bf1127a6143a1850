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

package schema

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/warwick-one-metre/rasa-pipelined/internal/pipelined"
	blockschema "github.com/warwick-one-metre/rasa-pipelined/schema"
)

func TestSchemaCommand(t *testing.T) {
	t.Parallel()

	for uc, tc := range map[string]struct {
		args   []string
		assert func(t *testing.T, err error, out []byte)
	}{
		"flats schema": {
			args: []string{"flats"},
			assert: func(t *testing.T, err error, out []byte) {
				t.Helper()

				require.NoError(t, err)

				var desc map[string]any

				require.NoError(t, json.Unmarshal(out, &desc))
				assert.Equal(t, blockschema.Flats(), desc)
			},
		},
		"standard schema": {
			args: []string{"standard"},
			assert: func(t *testing.T, err error, out []byte) {
				t.Helper()

				require.NoError(t, err)

				var desc map[string]any

				require.NoError(t, json.Unmarshal(out, &desc))
				assert.Equal(t, blockschema.Standard(), desc)
			},
		},
		"unknown kind": {
			args: []string{"dome"},
			assert: func(t *testing.T, err error, _ []byte) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, pipelined.ErrArgument)
			},
		},
		"no kind": {
			args: []string{},
			assert: func(t *testing.T, err error, _ []byte) {
				t.Helper()

				require.Error(t, err)
				assert.Contains(t, err.Error(), "accepts 1 arg")
			},
		},
	} {
		t.Run(uc, func(t *testing.T) {
			t.Parallel()

			// GIVEN
			cmd := NewSchemaCommand()
			buf := &bytes.Buffer{}

			cmd.SetOut(buf)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tc.args)

			// WHEN
			err := cmd.Execute()

			// THEN
			tc.assert(t, err, buf.Bytes())
		})
	}
}

func TestSchemaCommandRendersCrossFieldConditions(t *testing.T) {
	t.Parallel()

	// GIVEN
	cmd := NewSchemaCommand()
	buf := &bytes.Buffer{}

	cmd.SetOut(buf)
	cmd.SetArgs([]string{"standard"})

	// WHEN
	err := cmd.Execute()

	// THEN
	require.NoError(t, err)

	out := buf.String()
	require.True(t, gjson.Valid(out))

	assert.Equal(t, "SCIENCE", gjson.Get(out, "allOf.0.anyOf.0.not.properties.type.enum.0").String())
	assert.Equal(t, "object", gjson.Get(out, "allOf.0.anyOf.1.required.0").String())
	assert.Equal(t, gjson.False, gjson.Get(out, "allOf.1.anyOf.0.properties.archive.properties.RASA.enum.0").Type)
	assert.Equal(t, "prefix", gjson.Get(out, "allOf.1.anyOf.1.required.0").String())
	assert.Equal(t, "boolean", gjson.Get(out, "properties.archive.properties.RASA.type").String())
	assert.Equal(t, []string{"type"}, stringValues(gjson.Get(out, "required").Array()))
	assert.Equal(t,
		[]string{"BIAS", "DARK", "FLAT", "SCIENCE", "JUNK"},
		stringValues(gjson.Get(out, "properties.type.enum").Array()))
}

func stringValues(results []gjson.Result) []string {
	values := make([]string, 0, len(results))
	for _, res := range results {
		values = append(values, res.String())
	}

	return values
}
