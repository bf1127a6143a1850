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

package encoding

import (
	"bytes"
	"errors"
	"io"
	"time"

	"github.com/drone/envsubst/v2"
	"github.com/goccy/go-json"
	"github.com/knadh/koanf/maps"
	"gopkg.in/yaml.v3"

	"github.com/warwick-one-metre/rasa-pipelined/internal/pipelined"
	"github.com/warwick-one-metre/rasa-pipelined/internal/x/errorchain"
	"github.com/warwick-one-metre/rasa-pipelined/internal/x/stringx"
)

// Decoder reads a single observation schedule block document into its generic
// map representation, which is what the block schemas are applied to.
type Decoder struct {
	decoderOpts
}

func NewDecoder(opts ...DecoderOption) *Decoder {
	decoder := &Decoder{
		decoderOpts: decoderOpts{contentType: ContentTypeYAML},
	}

	for _, opt := range opts {
		opt(&decoder.decoderOpts)
	}

	return decoder
}

// Decode returns io.EOF if the reader holds no document at all.
func (d *Decoder) Decode(reader io.Reader) (map[string]any, error) {
	var block map[string]any

	if d.contentType != ContentTypeJSON && d.contentType != ContentTypeYAML {
		return nil, errorchain.NewWithMessagef(pipelined.ErrArgument,
			"unsupported content type: %s", d.contentType)
	}

	if d.substituteEnvVars {
		raw, err := io.ReadAll(reader)
		if err != nil {
			return nil, errorchain.NewWithMessage(pipelined.ErrInternal,
				"reading block failed").CausedBy(err)
		}

		content, err := envsubst.EvalEnv(stringx.ToString(raw))
		if err != nil {
			return nil, errorchain.NewWithMessage(pipelined.ErrArgument,
				"substitution of environment variables failed").CausedBy(err)
		}

		reader = bytes.NewReader(stringx.ToBytes(content))
	}

	var err error
	if d.contentType == ContentTypeJSON {
		err = json.NewDecoder(reader).Decode(&block)
	} else {
		err = yaml.NewDecoder(reader).Decode(&block)
	}

	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, err
		}

		return nil, errorchain.NewWithMessage(pipelined.ErrArgument,
			"parsing of block failed").CausedBy(err)
	}

	if block == nil {
		return nil, io.EOF
	}

	maps.IntfaceKeysToStrings(block)

	for key, value := range block {
		block[key] = timestampsToStrings(value)
	}

	return block, nil
}

// timestampsToStrings turns the time.Time values yaml resolves unquoted dates
// into back to the text they were written as, so the schemas see strings.
func timestampsToStrings(value any) any {
	switch val := value.(type) {
	case time.Time:
		if val.Equal(val.Truncate(24*time.Hour)) && val.Location() == time.UTC {
			return val.Format(time.DateOnly)
		}

		return val.Format(time.RFC3339Nano)
	case map[string]any:
		for key, entry := range val {
			val[key] = timestampsToStrings(entry)
		}
	case []any:
		for idx, entry := range val {
			val[idx] = timestampsToStrings(entry)
		}
	}

	return value
}
