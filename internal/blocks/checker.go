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

package blocks

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/warwick-one-metre/rasa-pipelined/internal/pipelined"
	"github.com/warwick-one-metre/rasa-pipelined/internal/x/errorchain"
)

// Checker applies the compiled block schemas. It is immutable after creation and
// can be shared between goroutines.
type Checker struct {
	schemas map[Kind]*jsonschema.Schema
}

func NewChecker() (*Checker, error) {
	compiler := jsonschema.NewCompiler()
	checker := &Checker{schemas: make(map[Kind]*jsonschema.Schema, 2)} // nolint: mnd

	for _, kind := range []Kind{KindStandard, KindFlats} {
		desc, _ := kind.description()
		url := kind.String() + ".schema.json"

		if err := compiler.AddResource(url, desc); err != nil {
			return nil, errorchain.NewWithMessagef(pipelined.ErrInternal,
				"failed to add %s schema", kind).CausedBy(err)
		}

		compiled, err := compiler.Compile(url)
		if err != nil {
			return nil, errorchain.NewWithMessagef(pipelined.ErrInternal,
				"failed to compile %s schema", kind).CausedBy(err)
		}

		checker.schemas[kind] = compiled
	}

	return checker, nil
}

func (c *Checker) Check(kind Kind, block map[string]any) error {
	compiled, ok := c.schemas[kind]
	if !ok {
		return errorchain.NewWithMessagef(pipelined.ErrArgument, "unknown block kind %d", kind)
	}

	if err := compiled.Validate(block); err != nil {
		return errorchain.NewWithMessagef(pipelined.ErrValidation,
			"block does not satisfy the %s schema", kind).CausedBy(err)
	}

	return nil
}

// Decode checks the block and converts it to its typed form.
func (c *Checker) Decode(kind Kind, block map[string]any) (Block, error) {
	var result Block

	if err := c.Check(kind, block); err != nil {
		return result, err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &result,
		ErrorUnused: true,
		TagName:     "mapstructure",
	})
	if err != nil {
		return result, errorchain.NewWithMessage(pipelined.ErrInternal,
			"failed creating block decoder").CausedBy(err)
	}

	if err = dec.Decode(block); err != nil {
		return result, errorchain.NewWithMessage(pipelined.ErrValidation,
			"decoding of block failed").CausedBy(err)
	}

	return result, nil
}
