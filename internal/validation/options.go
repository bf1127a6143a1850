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
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

type TagValidator interface {
	// Tag returns the identifier of the custom validator.
	Tag() string
	// Validate implements the actual validation logic.
	Validate(fl validator.FieldLevel) bool
	// MessageTemplate returns the template used to translate a failed validation.
	MessageTemplate() string
}

type Option interface {
	apply(v *validator.Validate, t ut.Translator) error
}

type optionFunc func(v *validator.Validate, t ut.Translator) error

func (f optionFunc) apply(v *validator.Validate, t ut.Translator) error {
	return f(v, t)
}

// WithTagValidator registers the given validator together with an english
// translation of its error message.
func WithTagValidator(tv TagValidator) Option {
	return optionFunc(func(v *validator.Validate, t ut.Translator) error {
		if err := v.RegisterValidation(tv.Tag(), tv.Validate); err != nil {
			return err
		}

		return v.RegisterTranslation(tv.Tag(), t,
			func(ut ut.Translator) error {
				return ut.Add(tv.Tag(), tv.MessageTemplate(), true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				msg, err := ut.T(fe.Tag(), fe.Field(), fe.Value().(string)) // nolint: forcetypeassert
				if err != nil {
					return fe.Error()
				}

				return msg
			},
		)
	})
}
