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

import "github.com/warwick-one-metre/rasa-pipelined/schema"

type BlockType string

const (
	BlockTypeBias    BlockType = schema.TypeBias
	BlockTypeDark    BlockType = schema.TypeDark
	BlockTypeFlat    BlockType = schema.TypeFlat
	BlockTypeScience BlockType = schema.TypeScience
	BlockTypeJunk    BlockType = schema.TypeJunk
)

func BlockTypes() []BlockType {
	return []BlockType{BlockTypeBias, BlockTypeDark, BlockTypeFlat, BlockTypeScience, BlockTypeJunk}
}

type Archive struct {
	RASA *bool `mapstructure:"RASA"`
}

// Block is the typed form of an observation schedule block which passed the
// schema check. Pointer fields are nil if the property was not given.
type Block struct {
	Type        BlockType `mapstructure:"type"`
	Path        string    `mapstructure:"path"`
	Prefix      string    `mapstructure:"prefix"`
	Object      string    `mapstructure:"object"`
	Archive     *Archive  `mapstructure:"archive"`
	WCS         *bool     `mapstructure:"wcs"`
	IntStats    *bool     `mapstructure:"intstats"`
	HFD         *bool     `mapstructure:"hfd"`
	Compression *bool     `mapstructure:"compression"`
}

// ArchivedToRASA reports whether the frames are to be archived with the RASA flag set.
func (b Block) ArchivedToRASA() bool {
	return b.Archive != nil && b.Archive.RASA != nil && *b.Archive.RASA
}
