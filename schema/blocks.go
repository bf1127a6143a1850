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

// Frame types accepted by the standard observation schema.
const (
	TypeBias    = "BIAS"
	TypeDark    = "DARK"
	TypeFlat    = "FLAT"
	TypeScience = "SCIENCE"
	TypeJunk    = "JUNK"
)

// Flats returns the schema for automated flat field blocks. Path and prefix are the
// only properties a user may configure when taking flats.
func Flats() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"path": map[string]any{
				"type": "string",
			},
			"prefix": map[string]any{
				"type": "string",
			},
		},
	}
}

// Standard returns the schema for regular observation blocks.
//
// Two conditions are expressed via allOf:
//   - a SCIENCE frame must name its object
//   - prefix is required unless archive.RASA validates against enum [false]
//
// The second condition relies on properties being vacuous for absent members, so
// neither a missing archive nor an archive without RASA requires a prefix.
func Standard() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"type"},
		"properties": map[string]any{
			"path": map[string]any{
				"type": "string",
			},
			"prefix": map[string]any{
				"type": "string",
			},
			"type": map[string]any{
				"type": "string",
				"enum": []any{TypeBias, TypeDark, TypeFlat, TypeScience, TypeJunk},
			},
			"object": map[string]any{
				"type": "string",
			},
			"archive": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"RASA": map[string]any{"type": "boolean"},
				},
			},
			"wcs": map[string]any{
				"type": "boolean",
			},
			"intstats": map[string]any{
				"type": "boolean",
			},
			"hfd": map[string]any{
				"type": "boolean",
			},
			"compression": map[string]any{
				"type": "boolean",
			},
		},
		"allOf": []any{
			map[string]any{
				"anyOf": []any{
					map[string]any{
						"not": map[string]any{
							"properties": map[string]any{
								"type": map[string]any{"enum": []any{TypeScience}},
							},
						},
					},
					map[string]any{
						"required": []any{"object"},
					},
				},
			},
			map[string]any{
				"anyOf": []any{
					map[string]any{
						"properties": map[string]any{
							"archive": map[string]any{
								"properties": map[string]any{
									"RASA": map[string]any{"enum": []any{false}},
								},
							},
						},
					},
					map[string]any{
						"required": []any{"prefix"},
					},
				},
			},
		},
	}
}

// Kind names accepted by ForKind.
const (
	KindFlats    = "flats"
	KindStandard = "standard"
)

// ForKind returns a freshly built description for the given kind name.
func ForKind(name string) (map[string]any, bool) {
	switch name {
	case KindFlats:
		return Flats(), true
	case KindStandard:
		return Standard(), true
	default:
		return nil, false
	}
}
