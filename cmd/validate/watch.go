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
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/warwick-one-metre/rasa-pipelined/internal/watcher"
)

const stopTimeout = 5 * time.Second

type blockFileListener struct {
	path string
	bv   *blockValidator
}

func (l *blockFileListener) OnChanged(logger zerolog.Logger) {
	logger.Info().Str("_file", l.path).Msg("Block file changed")

	if _, err := l.bv.validate(l.path); err != nil {
		logger.Error().Err(err).Str("_file", l.path).Msg("Failed to report block check")
	}
}

// watchBlockFiles validates the given files again whenever they are written to,
// until the context is done or the process receives SIGINT or SIGTERM.
func watchBlockFiles(ctx context.Context, actx *appContext, files []string, bv *blockValidator) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := fx.New(
		fx.Supply(actx.logger),
		fx.WithLogger(func(logger zerolog.Logger) fxevent.Logger {
			return &eventLogger{l: logger}
		}),
		watcher.Module,
		fx.Invoke(func(w watcher.Watcher) error {
			for _, path := range files {
				if err := w.Add(path, &blockFileListener{path: path, bv: bv}); err != nil {
					return err
				}
			}

			return nil
		}),
	)
	if err := app.Err(); err != nil {
		return err
	}

	if err := app.Start(ctx); err != nil {
		return err
	}

	actx.logger.Info().Int("_files", len(files)).Msg("Watching block files for changes")

	<-ctx.Done()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()

	return app.Stop(stopCtx)
}
