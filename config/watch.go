// Copyright (c) 2026, The Dome Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ReloadEvent is sent by [Watcher] whenever the config file changes.
// On success Config is non-nil and Err is nil; on a parse failure
// Config is nil and Err describes the problem, and the caller is
// expected to keep using its previous Config (spec.md §9 "Config
// hot-reload atomicity": "on failure sends ConfigReloadError(msg) —
// prior config kept").
type ReloadEvent struct {
	Config *Config
	Err    error
}

// Watcher owns the config file and re-parses it on change, delivering
// [ReloadEvent]s on a channel consumed by the Dispatcher event loop
// (spec.md §5 "Shared resource policy": "The config file is owned by
// the watcher thread; it sends a replacement Config via channel").
type Watcher struct {
	path   string
	fsw    *fsnotify.Watcher
	events chan ReloadEvent
	done   chan struct{}
}

// NewWatcher starts watching path's parent directory (not the file
// itself: editors commonly replace-on-save, which unlinks the watched
// inode and silently ends a direct file watch — the well-known
// fsnotify caveat; watching the directory survives rename/replace).
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(abs)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{
		path:   abs,
		fsw:    fsw,
		events: make(chan ReloadEvent, 1),
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.events)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				w.emit(ReloadEvent{Err: err})
				continue
			}
			w.emit(ReloadEvent{Config: cfg})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Error("config watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) emit(ev ReloadEvent) {
	select {
	case w.events <- ev:
	default:
		// Drop the stale event in favor of the next one; the loop
		// only ever cares about the latest config state.
		select {
		case <-w.events:
		default:
		}
		w.events <- ev
	}
}

// Events returns the channel of reload events.
func (w *Watcher) Events() <-chan ReloadEvent { return w.events }

// Path returns the config file path this Watcher watches, used by the
// `reload` IPC verb to force a synchronous re-read without waiting for
// a file event (SPEC_FULL.md §4.a).
func (w *Watcher) Path() string { return w.path }

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
