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
	"path/filepath"
	"strings"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeYAML = "application/yaml"
)

type decoderOpts struct {
	contentType       string
	substituteEnvVars bool
}

type DecoderOption func(o *decoderOpts)

func WithSourceContentType(contentType string) DecoderOption {
	return func(o *decoderOpts) {
		if len(contentType) != 0 {
			o.contentType = contentType
		}
	}
}

func WithEnvVarsSubstitution(flag bool) DecoderOption {
	return func(o *decoderOpts) {
		o.substituteEnvVars = flag
	}
}

// ContentTypeFromPath derives the content type from the file extension. Anything
// not ending in .json is treated as YAML, which also covers JSON documents.
func ContentTypeFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ContentTypeJSON
	}

	return ContentTypeYAML
}
