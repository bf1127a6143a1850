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
	"github.com/spf13/cobra"

	"github.com/warwick-one-metre/rasa-pipelined/cmd/flags"
	"github.com/warwick-one-metre/rasa-pipelined/internal/config"
)

func NewValidateConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "config",
		Short:        "Validates rasa-pipelined's configuration",
		Example:      "rasa-pipelined validate config -c myconfig.yaml",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateConfig(cmd); err != nil {
				return err
			}

			cmd.Println("Configuration is valid")

			return nil
		},
	}
}

func validateConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString(flags.Config)
	if len(configPath) == 0 {
		return ErrNoConfigFile
	}

	if err := config.ValidateConfig(configPath); err != nil {
		return err
	}

	_, err := newAppContext(cmd)

	return err
}
