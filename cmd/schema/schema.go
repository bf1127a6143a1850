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
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/warwick-one-metre/rasa-pipelined/internal/pipelined"
	"github.com/warwick-one-metre/rasa-pipelined/internal/x/errorchain"
	blockschema "github.com/warwick-one-metre/rasa-pipelined/schema"
)

func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "schema [flats|standard]",
		Short:        "Prints the JSON schema used to validate observation schedule blocks",
		Example:      "rasa-pipelined schema standard > standard.schema.json",
		Args:         cobra.ExactArgs(1),
		ValidArgs:    []string{blockschema.KindFlats, blockschema.KindStandard},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSchema(cmd, args[0])
		},
	}
}

func printSchema(cmd *cobra.Command, kind string) error {
	desc, ok := blockschema.ForKind(kind)
	if !ok {
		return errorchain.NewWithMessagef(pipelined.ErrArgument, "unknown block kind %q", kind)
	}

	raw, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return errorchain.NewWithMessage(pipelined.ErrInternal, "failed to render schema").CausedBy(err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))

	return err
}
