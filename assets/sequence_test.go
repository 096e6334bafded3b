// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pending is a fake loader that holds each completion until the test
// releases it, so the test controls when attempts settle.
type pending struct {
	started []string
	waiting []func(error)
}

func (p *pending) Load(path string, progress func(loaded, total int64), done func(error)) {
	p.started = append(p.started, path)
	progress(50, 100)
	p.waiting = append(p.waiting, done)
}

func (p *pending) release(err error) {
	done := p.waiting[0]
	p.waiting = p.waiting[1:]
	done(err)
}

func TestSequenceOrder(t *testing.T) {
	ld := &pending{}
	sq := NewSequence([]string{"A", "B", "C"}, ld)
	sq.Start()

	// only the first attempt is in flight until it settles
	assert.Equal(t, []string{"A"}, ld.started)
	require.Len(t, ld.waiting, 1)

	ld.release(nil)
	assert.Equal(t, []string{"A", "B"}, ld.started)
	require.Len(t, ld.waiting, 1)

	ld.release(errors.New("not found"))
	assert.Equal(t, []string{"A", "B", "C"}, ld.started)
	require.Len(t, ld.waiting, 1)

	ld.release(nil)
	assert.Equal(t, []string{"A", "B", "C"}, ld.started)
	assert.Empty(t, ld.waiting)
	assert.True(t, sq.Done())
	assert.Equal(t, 3, sq.Index())
}

func TestSequenceSkipsFailures(t *testing.T) {
	var scene, attempts []string
	ld := LoaderFunc(func(path string, progress func(loaded, total int64), done func(error)) {
		attempts = append(attempts, path)
		if path == "B" {
			done(errors.New("bad model"))
			return
		}
		scene = append(scene, path)
		done(nil)
	})
	sq := NewSequence([]string{"A", "B", "C"}, ld)
	var failed []string
	sq.OnSettled = func(path string, err error) {
		if err != nil {
			failed = append(failed, path)
		}
	}
	sq.Start()
	assert.Equal(t, []string{"A", "B", "C"}, attempts)
	assert.Equal(t, []string{"A", "C"}, scene)
	assert.Equal(t, []string{"B"}, failed)
	assert.True(t, sq.Done())
}

func TestSequenceAllFail(t *testing.T) {
	n := 0
	ld := LoaderFunc(func(path string, progress func(loaded, total int64), done func(error)) {
		n++
		done(errors.New("missing"))
	})
	sq := NewSequence([]string{"a", "b", "c", "d"}, ld)
	sq.Start()
	assert.Equal(t, 4, n)
	assert.True(t, sq.Done())
}

func TestSequenceEmpty(t *testing.T) {
	n := 0
	ld := LoaderFunc(func(path string, progress func(loaded, total int64), done func(error)) {
		n++
		done(nil)
	})
	sq := NewSequence(nil, ld)
	sq.Start()
	assert.Zero(t, n)
	assert.True(t, sq.Done())
	assert.Zero(t, sq.Index())
}

func TestSequenceTerminates(t *testing.T) {
	ld := &pending{}
	sq := NewSequence([]string{"A", "B"}, ld)
	sq.Start()
	ld.release(nil)
	ld.release(nil)
	assert.True(t, sq.Done())

	// starting again or settling a stale callback does nothing
	sq.Start()
	assert.Equal(t, []string{"A", "B"}, ld.started)
	assert.Empty(t, ld.waiting)
}

func TestSequenceIgnoresRepeatedDone(t *testing.T) {
	var dones []func(error)
	var attempts []string
	ld := LoaderFunc(func(path string, progress func(loaded, total int64), done func(error)) {
		attempts = append(attempts, path)
		dones = append(dones, done)
	})
	sq := NewSequence([]string{"A", "B", "C"}, ld)
	sq.Start()
	dones[0](nil)
	dones[0](nil) // stale, must not advance past B
	assert.Equal(t, []string{"A", "B"}, attempts)
	assert.Equal(t, 1, sq.Index())

	dones[1](errors.New("x"))
	dones[1](nil)
	assert.Equal(t, []string{"A", "B", "C"}, attempts)
	assert.Equal(t, 2, sq.Index())
}

func TestSequenceStartOnce(t *testing.T) {
	ld := &pending{}
	sq := NewSequence([]string{"A", "B"}, ld)
	sq.Start()
	sq.Start()
	assert.Equal(t, []string{"A"}, ld.started)
}
