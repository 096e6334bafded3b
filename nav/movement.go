// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nav provides first-person keyboard movement for the camera,
// complementing the orbit navigation built into xyz scenes.
package nav

import (
	"image"

	"cogentcore.org/core/events/key"
	"cogentcore.org/core/math32"
)

// DefaultStep is how far the camera moves per frame while a key is held.
const DefaultStep = 0.1

// Movement holds the keyboard movement state. Each flag is true
// while its key is held down. It is read once per frame by [Movement.Step].
type Movement struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool

	// Distance is how far the camera moves per frame along each active axis.
	Distance float32
}

// NewMovement returns a [Movement] with the given step,
// or [DefaultStep] if step is not positive.
func NewMovement(step float32) *Movement {
	if step <= 0 {
		step = DefaultStep
	}
	return &Movement{Distance: step}
}

// flag returns the flag bound to the given key, or nil.
func (mv *Movement) flag(code key.Codes) *bool {
	switch code {
	case key.CodeW:
		return &mv.Forward
	case key.CodeS:
		return &mv.Backward
	case key.CodeA:
		return &mv.Left
	case key.CodeD:
		return &mv.Right
	}
	return nil
}

// KeyDown sets the flag for the given key, returning
// whether the key is a movement key.
func (mv *Movement) KeyDown(code key.Codes) bool {
	f := mv.flag(code)
	if f == nil {
		return false
	}
	*f = true
	return true
}

// KeyUp clears the flag for the given key, returning
// whether the key is a movement key.
func (mv *Movement) KeyUp(code key.Codes) bool {
	f := mv.flag(code)
	if f == nil {
		return false
	}
	*f = false
	return true
}

// Reset clears all flags, as when the window loses focus
// and key releases can no longer be seen.
func (mv *Movement) Reset() {
	mv.Forward, mv.Backward, mv.Left, mv.Right = false, false, false, false
}

// Active returns whether any movement flag is set.
func (mv *Movement) Active() bool {
	return mv.Forward || mv.Backward || mv.Left || mv.Right
}

// Step returns pos moved by one frame of the held keys, in world axes:
// forward is -Z, backward +Z, left -X, right +X.
// It also returns whether pos changed.
func (mv *Movement) Step(pos math32.Vector3) (math32.Vector3, bool) {
	if !mv.Active() {
		return pos, false
	}
	if mv.Forward {
		pos.Z -= mv.Distance
	}
	if mv.Backward {
		pos.Z += mv.Distance
	}
	if mv.Left {
		pos.X -= mv.Distance
	}
	if mv.Right {
		pos.X += mv.Distance
	}
	return pos, true
}

// Aspect returns the width / height aspect ratio for the given size,
// or 1 for an empty size.
func Aspect(size image.Point) float32 {
	if size.X <= 0 || size.Y <= 0 {
		return 1
	}
	return float32(size.X) / float32(size.Y)
}
