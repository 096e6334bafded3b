// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package audio

import (
	"math"
	"sync"

	"cogentcore.org/core/math32"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// Gain returns the inverse distance attenuation for a listener at
// distance d from the source: 1 within the reference distance,
// then ref / (ref + rolloff * (d - ref)).
func Gain(d, ref, rolloff float64) float64 {
	if ref <= 0 {
		return 1
	}
	d = math.Max(d, ref)
	return ref / (ref + rolloff*(d-ref))
}

// Pan returns the stereo balance in [-1, 1] of a source heard from the
// listener position: negative is left, positive is right. It is the
// X offset of the source scaled by the larger of its distance and ref,
// so near sources within ref are mostly centered.
func Pan(listener, source math32.Vector3, ref float64) float64 {
	off := source.Sub(listener)
	d := math.Max(float64(off.Length()), ref)
	if d == 0 {
		return 0
	}
	return math.Max(-1, math.Min(1, float64(off.X)/d))
}

// Positional is a [beep.Streamer] that attenuates and pans its input
// according to the listener position relative to a fixed source.
// It is safe to call [Positional.SetListener] while it is playing.
type Positional struct {

	// Source is the position of the sound.
	Source math32.Vector3

	// RefDistance is the distance within which there is no attenuation.
	RefDistance float64

	// Rolloff is how fast the volume falls off beyond RefDistance.
	Rolloff float64

	// Volume is the overall linear volume multiplier.
	Volume float64

	mu     sync.Mutex
	volume *effects.Volume
	pan    *effects.Pan
}

// NewPositional returns a new [Positional] playing s from the origin,
// with a listener also at the origin.
func NewPositional(s beep.Streamer, ref, rolloff, volume float64) *Positional {
	ps := &Positional{RefDistance: ref, Rolloff: rolloff, Volume: volume}
	ps.volume = &effects.Volume{Streamer: s, Base: 2}
	ps.pan = &effects.Pan{Streamer: ps.volume}
	ps.SetListener(math32.Vector3{})
	return ps
}

// SetListener updates the attenuation and panning for a listener at pos.
func (ps *Positional) SetListener(pos math32.Vector3) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	d := float64(ps.Source.Sub(pos).Length())
	g := Gain(d, ps.RefDistance, ps.Rolloff) * ps.Volume
	if g <= 0 {
		ps.volume.Silent = true
	} else {
		ps.volume.Silent = false
		ps.volume.Volume = math.Log2(g)
	}
	ps.pan.Pan = Pan(pos, ps.Source, ps.RefDistance)
}

// GainFactor returns the current linear gain, 0 when silent.
func (ps *Positional) GainFactor() float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.volume.Silent {
		return 0
	}
	return math.Pow(2, ps.volume.Volume)
}

func (ps *Positional) Stream(samples [][2]float64) (n int, ok bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.pan.Stream(samples)
}

func (ps *Positional) Err() error {
	return ps.volume.Err()
}
