// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame runs the per-frame update of the viewer
// and keeps frame timing statistics.
package frame

import "time"

// Loop is the per-frame update. It has no clock of its own:
// Step is called once per paint tick, from a
// [cogentcore.org/core/core.WidgetBase.Animate] callback in the viewer.
type Loop struct {

	// Tick is called each frame with the time since the previous frame.
	Tick func(dt time.Duration)

	// Stats, if set, records each frame.
	Stats *Stats

	// OnStats, if set, is called when Stats rolls over to a new window.
	OnStats func(st *Stats)
}

// Step runs one frame at time now, dt after the previous one.
func (lp *Loop) Step(now time.Time, dt time.Duration) {
	if lp.Tick != nil {
		lp.Tick(dt)
	}
	if lp.Stats != nil && lp.Stats.Frame(now) && lp.OnStats != nil {
		lp.OnStats(lp.Stats)
	}
}
