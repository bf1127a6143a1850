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
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warwick-one-metre/rasa-pipelined/internal/pipelined"
	"github.com/warwick-one-metre/rasa-pipelined/internal/x/pointer"
)

func parseBlock(t *testing.T, raw string) map[string]any {
	t.Helper()

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	require.NoError(t, err)

	block, ok := doc.(map[string]any)
	require.True(t, ok)

	return block
}

func TestCheckerCheck(t *testing.T) {
	t.Parallel()

	checker, err := NewChecker()
	require.NoError(t, err)

	for uc, tc := range map[string]struct {
		kind  Kind
		block string
		valid bool
	}{
		"flats: empty block":                 {kind: KindFlats, block: `{}`, valid: true},
		"flats: path only":                   {kind: KindFlats, block: `{"path": "x"}`, valid: true},
		"flats: prefix only":                 {kind: KindFlats, block: `{"prefix": "y"}`, valid: true},
		"flats: path and prefix":             {kind: KindFlats, block: `{"path": "x", "prefix": "y"}`, valid: true},
		"flats: type is not allowed":         {kind: KindFlats, block: `{"type": "FLAT"}`},
		"flats: path of wrong type":          {kind: KindFlats, block: `{"path": 5}`},
		"flats: prefix of wrong type":        {kind: KindFlats, block: `{"prefix": true}`},
		"flats: unknown property":            {kind: KindFlats, block: `{"path": "x", "foo": "bar"}`},
		"standard: missing type":             {kind: KindStandard, block: `{}`},
		"standard: bias":                     {kind: KindStandard, block: `{"type": "BIAS"}`, valid: true},
		"standard: dark":                     {kind: KindStandard, block: `{"type": "DARK"}`, valid: true},
		"standard: junk":                     {kind: KindStandard, block: `{"type": "JUNK"}`, valid: true},
		"standard: unknown type":             {kind: KindStandard, block: `{"type": "SKYFLAT"}`},
		"standard: type is case sensitive":   {kind: KindStandard, block: `{"type": "bias"}`},
		"standard: type of wrong type":       {kind: KindStandard, block: `{"type": 1}`},
		"standard: science without object":   {kind: KindStandard, block: `{"type": "SCIENCE"}`},
		"standard: science with object":      {kind: KindStandard, block: `{"type": "SCIENCE", "object": "M31"}`, valid: true},
		"standard: object of wrong type":     {kind: KindStandard, block: `{"type": "SCIENCE", "object": 31}`},
		"standard: object on other types":    {kind: KindStandard, block: `{"type": "DARK", "object": "M31"}`, valid: true},
		"standard: science with extra prop":  {kind: KindStandard, block: `{"type": "SCIENCE", "object": "M31", "other": 1}`},
		"standard: RASA archive, no prefix":  {kind: KindStandard, block: `{"type": "FLAT", "archive": {"RASA": true}}`},
		"standard: RASA archive and prefix":  {kind: KindStandard, block: `{"type": "FLAT", "archive": {"RASA": true}, "prefix": "p"}`, valid: true},
		"standard: RASA archive disabled":    {kind: KindStandard, block: `{"type": "FLAT", "archive": {"RASA": false}}`, valid: true},
		"standard: archive without RASA":     {kind: KindStandard, block: `{"type": "FLAT", "archive": {}}`, valid: true},
		"standard: RASA of wrong type":       {kind: KindStandard, block: `{"type": "FLAT", "archive": {"RASA": "yes"}, "prefix": "p"}`},
		"standard: unknown archive property": {kind: KindStandard, block: `{"type": "FLAT", "archive": {"other": true}}`},
		"standard: archive of wrong type":    {kind: KindStandard, block: `{"type": "FLAT", "archive": true}`},
		"standard: science archived to RASA": {
			kind:  KindStandard,
			block: `{"type": "SCIENCE", "object": "M31", "archive": {"RASA": true}}`,
		},
		"standard: all properties": {
			kind: KindStandard,
			block: `{
				"type": "SCIENCE", "object": "M31", "path": "/data/2025-10-19", "prefix": "m31-",
				"archive": {"RASA": true}, "wcs": true, "intstats": false, "hfd": true, "compression": false
			}`,
			valid: true,
		},
		"standard: boolean option of wrong type": {kind: KindStandard, block: `{"type": "BIAS", "wcs": "true"}`},
		"standard: hfd of wrong type":            {kind: KindStandard, block: `{"type": "BIAS", "hfd": 1}`},
	} {
		t.Run(uc, func(t *testing.T) {
			t.Parallel()

			// WHEN
			err := checker.Check(tc.kind, parseBlock(t, tc.block))

			// THEN
			if tc.valid {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			require.ErrorIs(t, err, pipelined.ErrValidation)

			var verr *jsonschema.ValidationError

			assert.True(t, errors.As(err, &verr))
			assert.Contains(t, err.Error(), tc.kind.String()+" schema")
		})
	}
}

func TestCheckerCheckWithUnknownKind(t *testing.T) {
	t.Parallel()

	// GIVEN
	checker, err := NewChecker()
	require.NoError(t, err)

	// WHEN
	err = checker.Check(Kind(42), map[string]any{})

	// THEN
	require.Error(t, err)
	require.ErrorIs(t, err, pipelined.ErrArgument)
}

func TestCheckerIsUsableConcurrently(t *testing.T) {
	t.Parallel()

	// GIVEN
	checker, err := NewChecker()
	require.NoError(t, err)

	var wg sync.WaitGroup

	errs := make(chan error, 20)

	// WHEN
	for i := range 10 {
		wg.Add(2) // nolint: mnd

		go func() {
			defer wg.Done()

			errs <- checker.Check(KindStandard, map[string]any{"type": "SCIENCE", "object": "M" + string(rune('0'+i))})
		}()

		go func() {
			defer wg.Done()

			errs <- checker.Check(KindFlats, map[string]any{"prefix": "dusk"})
		}()
	}

	wg.Wait()
	close(errs)

	// THEN
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestCheckerDecode(t *testing.T) {
	t.Parallel()

	checker, err := NewChecker()
	require.NoError(t, err)

	for uc, tc := range map[string]struct {
		kind   Kind
		block  string
		assert func(t *testing.T, err error, block Block)
	}{
		"invalid block": {
			kind:  KindStandard,
			block: `{"type": "SCIENCE"}`,
			assert: func(t *testing.T, err error, _ Block) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, pipelined.ErrValidation)
			},
		},
		"minimal standard block": {
			kind:  KindStandard,
			block: `{"type": "BIAS"}`,
			assert: func(t *testing.T, err error, block Block) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, Block{Type: BlockTypeBias}, block)
				assert.False(t, block.ArchivedToRASA())
			},
		},
		"complete standard block": {
			kind: KindStandard,
			block: `{
				"type": "SCIENCE", "object": "M31", "path": "/data", "prefix": "m31-",
				"archive": {"RASA": true}, "wcs": true, "intstats": false, "hfd": true, "compression": false
			}`,
			assert: func(t *testing.T, err error, block Block) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, Block{
					Type:        BlockTypeScience,
					Object:      "M31",
					Path:        "/data",
					Prefix:      "m31-",
					Archive:     &Archive{RASA: pointer.To(true)},
					WCS:         pointer.To(true),
					IntStats:    pointer.To(false),
					HFD:         pointer.To(true),
					Compression: pointer.To(false),
				}, block)
				assert.True(t, block.ArchivedToRASA())
			},
		},
		"archive flag explicitly disabled": {
			kind:  KindStandard,
			block: `{"type": "FLAT", "archive": {"RASA": false}}`,
			assert: func(t *testing.T, err error, block Block) {
				t.Helper()

				require.NoError(t, err)
				require.NotNil(t, block.Archive)
				require.NotNil(t, block.Archive.RASA)
				assert.False(t, *block.Archive.RASA)
				assert.False(t, block.ArchivedToRASA())
				assert.Nil(t, block.WCS)
			},
		},
		"flats block": {
			kind:  KindFlats,
			block: `{"path": "/data/flats", "prefix": "dusk-"}`,
			assert: func(t *testing.T, err error, block Block) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, Block{Path: "/data/flats", Prefix: "dusk-"}, block)
			},
		},
	} {
		t.Run(uc, func(t *testing.T) {
			t.Parallel()

			// WHEN
			block, err := checker.Decode(tc.kind, parseBlock(t, tc.block))

			// THEN
			tc.assert(t, err, block)
		})
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for uc, tc := range map[string]struct {
		name     string
		expected Kind
		err      bool
	}{
		"standard":     {name: "standard", expected: KindStandard},
		"flats":        {name: "flats", expected: KindFlats},
		"empty":        {name: "", err: true},
		"wrong casing": {name: "Flats", err: true},
	} {
		t.Run(uc, func(t *testing.T) {
			// WHEN
			kind, err := ParseKind(tc.name)

			// THEN
			if tc.err {
				require.Error(t, err)
				require.ErrorIs(t, err, pipelined.ErrArgument)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, kind)
			assert.Equal(t, tc.name, kind.String())
		})
	}
}

func TestBlockTypes(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]BlockType{"BIAS", "DARK", "FLAT", "SCIENCE", "JUNK"},
		BlockTypes())
}
