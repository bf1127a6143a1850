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

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/warwick-one-metre/rasa-pipelined/cmd/validate"
)

// nolint: gochecknoglobals
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Commands for validating observation schedule blocks and the configuration",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println(cmd.UsageString())
	},
}

// nolint: gochecknoinits
func init() {
	RootCmd.AddCommand(validateCmd)

	validateCmd.AddCommand(validate.NewValidateBlocksCommand())
	validateCmd.AddCommand(validate.NewValidateConfigCommand())
}
