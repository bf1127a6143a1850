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

package validation

import (
	"errors"
	"slices"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

func wrapError(err error, trans ut.Translator) error {
	if err == nil {
		return nil
	}

	return &validationError{err: err, t: trans}
}

type validationError struct {
	err error
	t   ut.Translator
}

func (v *validationError) Error() string {
	var errs validator.ValidationErrors
	if !errors.As(v.err, &errs) {
		return v.err.Error()
	}

	msgs := make([]string, 0, len(errs))
	for _, msg := range errs.Translate(v.t) {
		msgs = append(msgs, msg)
	}

	slices.Sort(msgs)

	return strings.Join(msgs, ", ")
}

func (v *validationError) Unwrap() error { return v.err }
