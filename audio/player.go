// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package audio

import (
	"log/slog"
	"sync"
	"time"

	"cogentcore.org/core/math32"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// SpeakerSampleRate is the sample rate the speaker is opened with.
// Sources at other rates are resampled.
const SpeakerSampleRate beep.SampleRate = 44100

var (
	speakerOnce sync.Once
	speakerErr  error
)

// initSpeaker opens the audio device the first time it is called.
func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SpeakerSampleRate, SpeakerSampleRate.N(time.Second/10))
	})
	return speakerErr
}

// Player plays one track once from a positional source.
type Player struct {

	// Source is the position of the sound in the scene.
	Source math32.Vector3

	// RefDistance is the distance within which there is no attenuation.
	RefDistance float64

	// Rolloff is how fast the volume falls off beyond RefDistance.
	Rolloff float64

	// Volume is the overall linear volume multiplier.
	Volume float64

	mu       sync.Mutex
	pos      *Positional
	listener math32.Vector3
	done     chan struct{}
}

// NewPlayer returns a new [Player] with the given reference distance
// and volume, a rolloff of 1, and the source at the origin.
func NewPlayer(ref, volume float64) *Player {
	return &Player{RefDistance: ref, Rolloff: 1, Volume: volume}
}

// Play opens the file at path and starts playing it once.
// It returns without waiting for playback to finish; see [Player.Done].
func (pl *Player) Play(path string) error {
	s, format, err := Open(path)
	if err != nil {
		return err
	}
	if err := initSpeaker(); err != nil {
		s.Close()
		return err
	}
	var st beep.Streamer = s
	if format.SampleRate != SpeakerSampleRate {
		st = beep.Resample(4, format.SampleRate, SpeakerSampleRate, st)
	}

	pl.mu.Lock()
	ps := NewPositional(st, pl.RefDistance, pl.Rolloff, pl.Volume)
	ps.Source = pl.Source
	ps.SetListener(pl.listener)
	pl.pos = ps
	done := make(chan struct{})
	pl.done = done
	pl.mu.Unlock()

	slog.Info("audio: playing", "path", path, "rate", format.SampleRate, "duration", format.SampleRate.D(s.Len()))
	speaker.Play(beep.Seq(ps, beep.Callback(func() {
		s.Close()
		close(done)
	})))
	return nil
}

// SetListener moves the listener, typically to the camera position.
// It may be called before or during playback.
func (pl *Player) SetListener(pos math32.Vector3) {
	pl.mu.Lock()
	pl.listener = pos
	ps := pl.pos
	pl.mu.Unlock()
	if ps != nil {
		ps.SetListener(pos)
	}
}

// Done returns a channel that is closed when the current track ends,
// or nil if nothing has been played.
func (pl *Player) Done() <-chan struct{} {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.done
}
