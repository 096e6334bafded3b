// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package watch reports changes to a set of files, coalescing bursts
// of writes (as editors and exporters produce) into a single call.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Settle is how long the files must be quiet after a change
// before the change is reported.
var Settle = 250 * time.Millisecond

// Watch calls fn with the most recently changed path each time any of
// the given files is written, created, renamed or removed, until ctx is done.
// The parent directories are watched, so files that are replaced by
// rename still report. fn is called from the watch goroutine.
func Watch(ctx context.Context, paths []string, fn func(path string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	files := map[string]bool{}
	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return err
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			w.Close()
			return err
		}
	}
	go run(ctx, w, files, Settle, fn)
	return nil
}

func run(ctx context.Context, w *fsnotify.Watcher, files map[string]bool, settle time.Duration, fn func(path string)) {
	defer w.Close()
	var timer *time.Timer
	var fire <-chan time.Time
	last := ""
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !files[abs] || ev.Op == fsnotify.Chmod {
				continue
			}
			slog.Debug("watch: changed", "path", abs, "op", ev.Op)
			last = abs
			if timer == nil {
				timer = time.NewTimer(settle)
			} else {
				timer.Reset(settle)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Error("watch: error", "err", err)
		case <-fire:
			fire = nil
			fn(last)
		}
	}
}
