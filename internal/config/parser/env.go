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
	"strings"

	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/warwick-one-metre/rasa-pipelined/internal/pipelined"
	"github.com/warwick-one-metre/rasa-pipelined/internal/x/errorchain"
	"github.com/warwick-one-metre/rasa-pipelined/internal/x/stringx"
)

func toRealType(val string) any {
	var parsed map[string]any

	// let the yaml parser guess the type, so "true" becomes a bool, "3" an int, etc.
	if err := yaml.Unmarshal(stringx.ToBytes("val: "+val), &parsed); err != nil {
		return val
	}

	return parsed["val"]
}

// envKeyToPath converts e.g. BLOCKS_DEFAULT__KIND to blocks.default_kind. A single
// underscore separates levels, a double one stands for a literal underscore.
func envKeyToPath(key string) string {
	tmp := strings.ReplaceAll(strings.ToLower(key), "__", `\:\`)
	tmp = strings.ReplaceAll(tmp, "_", ".")

	return strings.ReplaceAll(tmp, `\:\`, "_")
}

func koanfFromEnv(prefix string) (*koanf.Koanf, error) {
	parser := koanf.New(".")

	provider := env.Provider(".", env.Opt{
		Prefix: prefix,
		TransformFunc: func(key, val string) (string, any) {
			return envKeyToPath(strings.TrimPrefix(key, prefix)), toRealType(val)
		},
	})

	if err := parser.Load(provider, nil); err != nil {
		return nil, errorchain.NewWithMessage(pipelined.ErrConfiguration,
			"failed to parse environment variables to config").CausedBy(err)
	}

	return parser, nil
}
