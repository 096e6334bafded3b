// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"fmt"
	"time"
)

// Stats measures the frame rate and the time between frames over a
// rolling window. Frame times are measured from one paint tick to the
// next, so they include rendering. Values are updated once per window,
// so a display reading them does not flicker every frame.
type Stats struct {

	// Window is the measurement period; defaults to one second.
	Window time.Duration

	fps   float64
	ms    float64
	maxMS float64

	start  time.Time
	last   time.Time
	frames int
	max    time.Duration
}

// Frame records a frame painted at now. The first call only starts
// the clock. It returns true when the window rolled over and the
// values changed.
func (st *Stats) Frame(now time.Time) bool {
	if st.Window <= 0 {
		st.Window = time.Second
	}
	if st.start.IsZero() {
		st.start = now
		st.last = now
		return false
	}
	st.frames++
	st.max = max(st.max, now.Sub(st.last))
	st.last = now
	el := now.Sub(st.start)
	if el < st.Window {
		return false
	}
	st.fps = float64(st.frames) / el.Seconds()
	st.ms = el.Seconds() * 1000 / float64(st.frames)
	st.maxMS = st.max.Seconds() * 1000
	st.start = now
	st.frames = 0
	st.max = 0
	return true
}

// FPS returns frames per second over the last complete window.
func (st *Stats) FPS() float64 {
	return st.fps
}

// MS returns the average milliseconds between frames
// over the last complete window.
func (st *Stats) MS() float64 {
	return st.ms
}

// MaxMS returns the longest time between two frames, in milliseconds,
// over the last complete window.
func (st *Stats) MaxMS() float64 {
	return st.maxMS
}

func (st *Stats) String() string {
	return fmt.Sprintf("%.0f FPS  %.1f ms/frame  %.1f ms max", st.fps, st.ms, st.maxMS)
}
