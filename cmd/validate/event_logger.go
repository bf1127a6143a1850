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

package validate

import (
	"strings"

	"github.com/rs/zerolog"
	"go.uber.org/fx/fxevent"
)

// eventLogger routes the fx lifecycle events of the watch mode to zerolog.
type eventLogger struct {
	l zerolog.Logger
}

func (l *eventLogger) LogEvent(event fxevent.Event) { // nolint: cyclop
	switch evt := event.(type) {
	case *fxevent.OnStartExecuting:
		l.l.Trace().
			Str("_functionName", evt.FunctionName).
			Str("_caller", evt.CallerName).
			Msg("OnStart hook executing")
	case *fxevent.OnStartExecuted:
		if evt.Err != nil {
			l.l.Error().
				Str("_functionName", evt.FunctionName).
				Str("_caller", evt.CallerName).
				Err(evt.Err).
				Msg("OnStart hook failed")
		} else {
			l.l.Trace().
				Str("_functionName", evt.FunctionName).
				Str("_caller", evt.CallerName).
				Str("_runtime", evt.Runtime.String()).
				Msg("OnStart hook executed")
		}
	case *fxevent.OnStopExecuting:
		l.l.Trace().
			Str("_functionName", evt.FunctionName).
			Str("_caller", evt.CallerName).
			Msg("OnStop hook executing")
	case *fxevent.OnStopExecuted:
		if evt.Err != nil {
			l.l.Error().
				Str("_functionName", evt.FunctionName).
				Str("_caller", evt.CallerName).
				Err(evt.Err).
				Msg("OnStop hook failed")
		} else {
			l.l.Trace().
				Str("_functionName", evt.FunctionName).
				Str("_caller", evt.CallerName).
				Str("_runtime", evt.Runtime.String()).
				Msg("OnStop hook executed")
		}
	case *fxevent.Supplied:
		if evt.Err != nil {
			l.l.Error().
				Str("_type", evt.TypeName).
				Str("_module", evt.ModuleName).
				Err(evt.Err).
				Msg("Error encountered while supplying module")
		} else {
			l.l.Trace().
				Str("_type", evt.TypeName).
				Str("_module", evt.ModuleName).
				Msg("Module supplied")
		}
	case *fxevent.Provided:
		if evt.Err != nil {
			l.l.Error().
				Str("_module", evt.ModuleName).
				Err(evt.Err).
				Msg("Error encountered while providing module")
		} else {
			l.l.Trace().
				Str("_constructor", evt.ConstructorName).
				Str("_module", evt.ModuleName).
				Str("_type", strings.Join(evt.OutputTypeNames, ", ")).
				Msg("Module provided")
		}
	case *fxevent.Invoking:
		l.l.Trace().
			Str("_function", evt.FunctionName).
			Str("_module", evt.ModuleName).
			Msg("Invoking module")
	case *fxevent.Invoked:
		if evt.Err != nil {
			l.l.Error().
				Str("_function", evt.FunctionName).
				Str("_module", evt.ModuleName).
				Str("_stack", evt.Trace).
				Err(evt.Err).
				Msg("Invoke failed")
		}
	case *fxevent.Started:
		if evt.Err != nil {
			l.l.Error().Err(evt.Err).Msg("Start failed")
		} else {
			l.l.Trace().Msg("Started")
		}
	case *fxevent.Stopped:
		if evt.Err != nil {
			l.l.Error().Err(evt.Err).Msg("Stop failed")
		} else {
			l.l.Trace().Msg("Stopped")
		}
	case *fxevent.RollingBack:
		l.l.Error().Err(evt.StartErr).Msg("Start failed, rolling back")
	case *fxevent.LoggerInitialized:
		if evt.Err != nil {
			l.l.Error().Err(evt.Err).Msg("Custom logger initialization failed")
		}
	}
}
