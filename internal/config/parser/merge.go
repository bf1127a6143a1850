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
	"errors"
	"fmt"
)

var errTypeMismatch = errors.New("type mismatch")

func merge(dest, src any) (any, error) {
	if dest == nil {
		return src, nil
	}

	dstMap, dstIsMap := dest.(map[string]any)
	srcMap, srcIsMap := src.(map[string]any)

	switch {
	case dstIsMap && srcIsMap:
		return mergeMaps(dstMap, srcMap)
	case dstIsMap != srcIsMap:
		return nil, fmt.Errorf("%w: cannot merge %T into %T", errTypeMismatch, src, dest)
	default:
		// primitive values and lists are overridden
		return src, nil
	}
}

func mergeMaps(dest, src map[string]any) (map[string]any, error) {
	for key, val := range src {
		merged, err := merge(dest[key], val)
		if err != nil {
			return nil, err
		}

		dest[key] = merged
	}

	return dest, nil
}
