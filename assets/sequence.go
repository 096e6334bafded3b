// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assets loads an ordered list of resources one at a time
// through an asynchronous [Loader], moving on to the next resource
// only after the previous one has either loaded or failed.
package assets

import (
	"fmt"
	"log/slog"
)

// Loader is an asynchronous resource loader.
// Load must return promptly and later call done exactly once,
// from whatever goroutine the loader uses to deliver results.
// progress may be called any number of times before done, and
// may be nil on the caller side.
type Loader interface {
	Load(path string, progress func(loaded, total int64), done func(err error))
}

// LoaderFunc adapts a function to the [Loader] interface.
type LoaderFunc func(path string, progress func(loaded, total int64), done func(err error))

func (f LoaderFunc) Load(path string, progress func(loaded, total int64), done func(err error)) {
	f(path, progress, done)
}

// Sequence walks a fixed list of paths, loading each in turn.
// A failed load is logged and skipped; loads are never retried.
// The cursor only moves forward, and once it reaches the end
// of the list the Sequence does nothing more.
type Sequence struct {

	// Paths is the ordered list of resources to load.
	Paths []string

	// Loader does the actual loading.
	Loader Loader

	// OnSettled, if set, is called after each attempt settles,
	// with a nil error on success.
	OnSettled func(path string, err error)

	// index is the cursor into Paths of the attempt in flight.
	index int

	// started is set by Start.
	started bool
}

// NewSequence returns a new [Sequence] for the given paths and loader.
func NewSequence(paths []string, ld Loader) *Sequence {
	return &Sequence{Paths: paths, Loader: ld}
}

// Start begins loading the first path. It does nothing if the
// sequence was already started or the list is empty.
func (sq *Sequence) Start() {
	if sq.started {
		return
	}
	sq.started = true
	sq.load()
}

// Index returns the cursor: the number of attempts that have settled.
func (sq *Sequence) Index() int {
	return sq.index
}

// Done returns whether every path has been attempted.
func (sq *Sequence) Done() bool {
	return sq.index >= len(sq.Paths)
}

func (sq *Sequence) load() {
	if sq.Done() {
		return
	}
	idx := sq.index
	path := sq.Paths[idx]
	slog.Debug("assets: loading", "path", path, "index", idx, "of", len(sq.Paths))
	settled := false
	progress := func(loaded, total int64) {
		if total <= 0 {
			return
		}
		slog.Debug(fmt.Sprintf("assets: %s %g%% loaded", path, float64(loaded)/float64(total)*100))
	}
	sq.Loader.Load(path, progress, func(err error) {
		if settled || sq.index != idx {
			slog.Warn("assets: ignoring repeated completion", "path", path)
			return
		}
		settled = true
		sq.settle(path, err)
	})
}

// settle records the outcome of the attempt at the cursor
// and moves on to the next path.
func (sq *Sequence) settle(path string, err error) {
	if err != nil {
		slog.Error("assets: load failed, skipping", "path", path, "err", err)
	}
	sq.index++
	if sq.OnSettled != nil {
		sq.OnSettled(path, err)
	}
	sq.load()
}
