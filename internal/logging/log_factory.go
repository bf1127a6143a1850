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

package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/warwick-one-metre/rasa-pipelined/internal/config"
	"github.com/warwick-one-metre/rasa-pipelined/internal/x"
)

// NewLogger writes to stderr, as stdout carries the command results.
func NewLogger(conf config.LoggingConfig) zerolog.Logger {
	return newLogger(conf, os.Stderr)
}

func newLogger(conf config.LoggingConfig, out io.Writer) zerolog.Logger {
	if conf.Format == config.LogTextFormat {
		return zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = out
			w.TimeFormat = time.RFC3339
		})).Level(conf.Level).With().Timestamp().Logger()
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.TimestampFieldName = "timestamp"
	zerolog.LevelFieldName = "_level_name"
	zerolog.LevelFieldMarshalFunc = func(l zerolog.Level) string {
		return strings.ToUpper(l.String())
	}
	zerolog.MessageFieldName = "short_message"
	zerolog.ErrorFieldName = "_error" // nolint: reassign
	zerolog.CallerFieldName = "_caller"
	hostname, err := os.Hostname()

	return zerolog.New(out).Level(conf.Level).With().
		Str("version", "1.1").
		Str("host", x.IfThenElse(err == nil, hostname, "unknown")).
		Timestamp().
		Logger().
		Hook(zerolog.HookFunc(func(e *zerolog.Event, level zerolog.Level, _ string) {
			if level != zerolog.NoLevel {
				e.Int8("level", int8(toSyslogLevel(level)))
			}
		}))
}
