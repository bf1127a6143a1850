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

package errorchain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/iancoleman/strcase"
)

type link struct {
	err  error
	msg  string
	next *link
}

type report struct {
	Code    string   `json:"code"`
	Message string   `json:"message,omitempty"`
	Causes  []string `json:"causes,omitempty"`
}

// ErrorChain links a sentinel error to the errors that caused it. errors.Is and
// errors.As walk the whole chain.
type ErrorChain struct { // nolint: errname
	head *link
	tail *link
}

func New(err error) *ErrorChain {
	return (&ErrorChain{}).causedBy(err, "")
}

func NewWithMessage(err error, message string) *ErrorChain {
	return (&ErrorChain{}).causedBy(err, message)
}

func NewWithMessagef(err error, format string, a ...any) *ErrorChain {
	return (&ErrorChain{}).causedBy(err, fmt.Sprintf(format, a...))
}

func (ec *ErrorChain) Error() string {
	var sb strings.Builder

	for c := ec.head; c != nil; c = c.next {
		if sb.Len() != 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(c.err.Error())

		if len(c.msg) != 0 {
			sb.WriteString(": ")
			sb.WriteString(c.msg)
		}
	}

	return sb.String()
}

func (ec *ErrorChain) CausedBy(err error) *ErrorChain {
	if err == nil {
		return ec
	}

	return ec.causedBy(err, "")
}

func (ec *ErrorChain) Unwrap() error {
	if ec.head == nil || ec.head.next == nil {
		return nil
	}

	return &ErrorChain{head: ec.head.next, tail: ec.tail}
}

func (ec *ErrorChain) Is(target error) bool {
	if ec.head == nil {
		return false
	}

	return errors.Is(ec.head.err, target)
}

func (ec *ErrorChain) As(target any) bool {
	if ec.head == nil {
		return false
	}

	return errors.As(ec.head.err, target)
}

func (ec *ErrorChain) Errors() []error {
	var errs []error

	for c := ec.head; c != nil; c = c.next {
		errs = append(errs, c.err)
	}

	return errs
}

// MarshalJSON renders the head of the chain as code and message, and every
// further link as a cause.
func (ec *ErrorChain) MarshalJSON() ([]byte, error) {
	rep := report{
		Code:    strcase.ToLowerCamel(ec.head.err.Error()),
		Message: ec.head.msg,
	}

	for c := ec.head.next; c != nil; c = c.next {
		rep.Causes = append(rep.Causes, c.err.Error())
	}

	return json.Marshal(rep)
}

func (ec *ErrorChain) causedBy(err error, msg string) *ErrorChain {
	elem := &link{err: err, msg: msg}

	if ec.head == nil {
		ec.head = elem
		ec.tail = elem

		return ec
	}

	ec.tail.next = elem
	ec.tail = elem

	return ec
}
