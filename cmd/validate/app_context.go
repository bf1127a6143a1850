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
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/fx"

	"github.com/warwick-one-metre/rasa-pipelined/cmd/flags"
	"github.com/warwick-one-metre/rasa-pipelined/internal/blocks"
	"github.com/warwick-one-metre/rasa-pipelined/internal/config"
	"github.com/warwick-one-metre/rasa-pipelined/internal/logging"
	"github.com/warwick-one-metre/rasa-pipelined/internal/validation"
)

type appContext struct {
	blocks  config.BlocksConfig
	logger  zerolog.Logger
	checker *blocks.Checker
}

// newAppContext resolves everything a validate command needs. The fx app is never
// started, as all dependencies are created while populating.
func newAppContext(cmd *cobra.Command) (*appContext, error) {
	configPath, _ := cmd.Flags().GetString(flags.Config)
	envPrefix, _ := cmd.Flags().GetString(flags.EnvironmentConfigPrefix)

	var actx appContext

	app := fx.New(
		fx.NopLogger,
		fx.Supply(
			config.ConfigurationPath(configPath),
			config.EnvVarPrefix(envPrefix),
		),
		validation.Module,
		config.Module,
		logging.Module,
		blocks.Module,
		fx.Populate(&actx.blocks, &actx.logger, &actx.checker),
	)
	if err := app.Err(); err != nil {
		return nil, err
	}

	actx.logger.Debug().Str("_cli", commandLine(cmd)).Msg("Running command")

	return &actx, nil
}

// commandLine renders the command path together with the flags explicitly set.
func commandLine(cmd *cobra.Command) string {
	var cli strings.Builder

	cli.WriteString(cmd.CommandPath())

	cmd.Flags().Visit(func(flag *pflag.Flag) {
		cli.WriteString(" --")
		cli.WriteString(flag.Name)

		if flag.Value.Type() != "bool" {
			cli.WriteString(" ")
			cli.WriteString(flag.Value.String())
		}
	})

	return cli.String()
}
