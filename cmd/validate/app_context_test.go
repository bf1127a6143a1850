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

package validate

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warwick-one-metre/rasa-pipelined/cmd/flags"
)

func TestNewAppContext(t *testing.T) {
	t.Parallel()

	for uc, tc := range map[string]struct {
		args   []string
		assert func(t *testing.T, err error, actx *appContext)
	}{
		"with defaults": {
			assert: func(t *testing.T, err error, actx *appContext) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "standard", actx.blocks.DefaultKind)
				assert.False(t, actx.blocks.SubstituteEnvVars)
				assert.Equal(t, zerolog.InfoLevel, actx.logger.GetLevel())
				assert.NotNil(t, actx.checker)
			},
		},
		"with config file": {
			args: []string{"-c", "test_data/config.yaml"},
			assert: func(t *testing.T, err error, actx *appContext) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "flats", actx.blocks.DefaultKind)
				assert.True(t, actx.blocks.SubstituteEnvVars)
				assert.Equal(t, zerolog.DebugLevel, actx.logger.GetLevel())
				assert.NotNil(t, actx.checker)
			},
		},
		"with invalid config file": {
			args: []string{"-c", "test_data/invalid-config.yaml"},
			assert: func(t *testing.T, err error, _ *appContext) {
				t.Helper()

				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to validate config")
			},
		},
	} {
		t.Run(uc, func(t *testing.T) {
			t.Parallel()

			// GIVEN
			cmd := &cobra.Command{}
			flags.RegisterGlobalFlags(cmd)
			require.NoError(t, cmd.ParseFlags(tc.args))

			// WHEN
			actx, err := newAppContext(cmd)

			// THEN
			tc.assert(t, err, actx)
		})
	}
}

func TestCommandLine(t *testing.T) {
	t.Parallel()

	// GIVEN
	cmd := NewValidateBlocksCommand()
	flags.RegisterGlobalFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--kind", "flats", "-w", "-c", "rasa.yaml"}))

	// WHEN
	cli := commandLine(cmd)

	// THEN
	assert.Equal(t, "blocks --config rasa.yaml --kind flats --watch", cli)
}
