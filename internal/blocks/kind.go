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
	"github.com/warwick-one-metre/rasa-pipelined/internal/pipelined"
	"github.com/warwick-one-metre/rasa-pipelined/internal/x/errorchain"
	"github.com/warwick-one-metre/rasa-pipelined/schema"
)

// Kind selects the schema a block is checked against.
type Kind int

const (
	KindStandard Kind = iota
	KindFlats
)

func (k Kind) String() string {
	switch k {
	case KindStandard:
		return schema.KindStandard
	case KindFlats:
		return schema.KindFlats
	default:
		return "unknown"
	}
}

func ParseKind(name string) (Kind, error) {
	switch name {
	case schema.KindStandard:
		return KindStandard, nil
	case schema.KindFlats:
		return KindFlats, nil
	default:
		return KindStandard, errorchain.NewWithMessagef(pipelined.ErrArgument,
			"unknown block kind %q", name)
	}
}

func (k Kind) description() (map[string]any, bool) { return schema.ForKind(k.String()) }
