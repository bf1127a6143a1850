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

package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/warwick-one-metre/rasa-pipelined/internal/pipelined"
	"github.com/warwick-one-metre/rasa-pipelined/internal/x/errorchain"
)

type ChangeListener interface {
	OnChanged(logger zerolog.Logger)
}

// Watcher notifies registered listeners whenever the watched file changes. Files are
// replaced in place as well as by renaming a new copy over them, as editors do.
type Watcher interface {
	Add(path string, cl ChangeListener) error
}

type listenerEntry struct {
	listeners    []ChangeListener
	resolvedPath string
}

// watcher puts the fsnotify watches on the parent directories of the registered
// files, since a watch on the file itself is lost once the file is replaced.
type watcher struct {
	w    *fsnotify.Watcher
	m    map[string]*listenerEntry
	dirs map[string]struct{}
	l    zerolog.Logger

	mut sync.Mutex
}

func newWatcher(logger zerolog.Logger) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errorchain.NewWithMessage(pipelined.ErrInternal,
			"failed to create file watcher").CausedBy(err)
	}

	return &watcher{
		w:    fsw,
		m:    make(map[string]*listenerEntry),
		dirs: make(map[string]struct{}),
		l:    logger,
	}, nil
}

func (w *watcher) Add(path string, cl ChangeListener) error {
	path = filepath.Clean(path)

	w.mut.Lock()
	defer w.mut.Unlock()

	if entry, ok := w.m[path]; ok {
		entry.listeners = append(entry.listeners, cl)

		return nil
	}

	resolvedPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return errorchain.NewWithMessagef(pipelined.ErrInternal,
			"listener registration for file %s failed", path).CausedBy(err)
	}

	dir := filepath.Dir(path)
	if _, ok := w.dirs[dir]; !ok {
		if err = w.w.Add(dir); err != nil {
			return errorchain.NewWithMessagef(pipelined.ErrInternal,
				"listener registration for file %s failed", path).CausedBy(err)
		}

		w.dirs[dir] = struct{}{}
	}

	w.m[path] = &listenerEntry{listeners: []ChangeListener{cl}, resolvedPath: resolvedPath}

	return nil
}

func (w *watcher) start(_ context.Context) {
	w.l.Debug().Msg("Starting watching block files for changes")

	go w.watch()
}

func (w *watcher) stop(_ context.Context) error {
	w.l.Debug().Msg("Stopping watching block files for changes")

	return w.w.Close()
}

func (w *watcher) watch() {
	for {
		select {
		case evt, ok := <-w.w.Events:
			if !ok {
				w.l.Debug().Msg("File watcher closed")

				return
			}

			w.handle(evt)
		case err, ok := <-w.w.Errors:
			if !ok {
				w.l.Debug().Msg("File watcher error channel closed")

				return
			}

			w.l.Warn().Err(err).Msg("File watcher error received")
		}
	}
}

func (w *watcher) handle(evt fsnotify.Event) {
	path := filepath.Clean(evt.Name)

	w.mut.Lock()
	_, registered := w.m[path]
	w.mut.Unlock()

	if !registered {
		return
	}

	var (
		relinked bool
		err      error
	)

	if evt.Has(fsnotify.Chmod) {
		relinked, err = w.checkForRelink(path)
		if err != nil {
			w.l.Warn().Err(err).Msgf("Handling modification of %s failed", path)
		}
	}

	// a file renamed over the registered one shows up as Create
	if evt.Has(fsnotify.Create) || evt.Has(fsnotify.Write) || evt.Has(fsnotify.Rename) || relinked {
		w.fireOnChange(path)
	}
}

// checkForRelink detects symlinked files whose target has been swapped, which is how
// mounted config maps and similar are updated.
func (w *watcher) checkForRelink(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, err
	}

	resolvedPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false, err
	}

	w.mut.Lock()
	defer w.mut.Unlock()

	entry, ok := w.m[path]
	if !ok || entry.resolvedPath == resolvedPath {
		return false, nil
	}

	entry.resolvedPath = resolvedPath

	return true, nil
}

func (w *watcher) fireOnChange(path string) {
	w.mut.Lock()
	entry, ok := w.m[path]

	var listeners []ChangeListener
	if ok {
		listeners = append(listeners, entry.listeners...)
	}
	w.mut.Unlock()

	for _, listener := range listeners {
		go listener.OnChanged(w.l)
	}
}
