// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viewer puts the house walkthrough together: it assembles the
// scene in a Cogent Core widget, loads the models in order, moves the
// camera from the keyboard, plays the music and runs the frame loop.
package viewer

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/core"
	"cogentcore.org/core/events"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/styles"
	"cogentcore.org/core/tree"
	"cogentcore.org/core/xyz"
	"cogentcore.org/core/xyz/xyzcore"
	"cogentcore.org/houseview/assets"
	"cogentcore.org/houseview/audio"
	"cogentcore.org/houseview/config"
	"cogentcore.org/houseview/frame"
	"cogentcore.org/houseview/nav"
	"cogentcore.org/houseview/scenery"
)

// Viewer is the house walkthrough.
type Viewer struct {

	// Config is the configuration the viewer was made with.
	Config *config.Config

	// Scene is the widget showing the 3D scene.
	Scene *xyzcore.Scene

	// Models is the group the models are loaded into, in load order.
	Models *xyz.Group

	// Movement holds the keyboard movement flags.
	Movement *nav.Movement

	// Stats measures the frame rate.
	Stats *frame.Stats

	// Audio plays the background music.
	Audio *audio.Player

	// Sequence is the current model load sequence.
	Sequence *assets.Sequence

	// Specs are the models being loaded by Sequence.
	Specs []config.ModelSpec

	// sc is the 3D scene of Scene.
	sc *xyz.Scene

	// lock guards sc, Models, and the load state against loader
	// and watcher goroutines; it is Scene outside of tests.
	lock asyncLocker

	loop *frame.Loop

	statsText  *core.Text
	statusText *core.Text

	// generation is incremented by each reload, so that loads
	// belonging to an abandoned sequence are dropped.
	generation int

	// failed counts the failed loads of the current sequence.
	failed int

	// stopWatch stops the current model watcher.
	stopWatch context.CancelFunc

	size image.Point

	started bool
}

// New returns a new [Viewer] for the given configuration.
func New(cfg *config.Config) *Viewer {
	return &Viewer{
		Config:   cfg,
		Movement: nav.NewMovement(cfg.MoveStep),
		Stats:    &frame.Stats{},
		Audio:    audio.NewPlayer(cfg.AudioRefDistance, cfg.Volume),
	}
}

// SceneOptions returns the scene assembly options from the configuration.
func (v *Viewer) SceneOptions() scenery.Options {
	opts := scenery.DefaultOptions()
	if bg, err := v.Config.BackgroundColor(); err == nil {
		opts.Background = bg
	} else {
		slog.Error("viewer: invalid background color, using default", "background", v.Config.Background, "err", err)
	}
	opts.AxesLength = v.Config.Axes
	opts.Camera.FOV = v.Config.FOV
	opts.Camera.Near = v.Config.Near
	opts.Camera.Far = v.Config.Far
	opts.Camera.Pos = v.Config.CameraPos()
	return opts
}

// Build makes the widgets of the viewer in parent.
// Loading, music and the frame loop start when the scene is first shown.
func (v *Viewer) Build(parent tree.Node) {
	bar := core.NewFrame(parent)
	bar.Styler(func(s *styles.Style) {
		s.Grow.Set(1, 0)
	})
	v.statsText = core.NewText(bar).SetText("")
	v.statsText.Styler(func(s *styles.Style) {
		s.Grow.Set(1, 0)
	})
	v.statusText = core.NewText(bar).SetText("")

	v.Scene = xyzcore.NewScene(parent)
	v.lock = v.Scene
	v.sc = v.Scene.SceneXYZ()
	scenery.Assemble(v.sc, v.SceneOptions())
	v.Models = xyz.NewGroup(v.sc)
	v.Models.SetName(ModelsName)

	v.Scene.On(events.KeyDown, func(e events.Event) {
		if v.Movement.KeyDown(e.KeyCode()) {
			e.SetHandled()
		}
	})
	v.Scene.On(events.KeyUp, func(e events.Event) {
		if v.Movement.KeyUp(e.KeyCode()) {
			e.SetHandled()
		}
	})
	v.Scene.On(events.FocusLost, func(e events.Event) {
		v.Movement.Reset()
	})
	v.Scene.OnShow(func(e events.Event) {
		if v.started {
			return
		}
		v.started = true
		v.Scene.SetFocus()
		v.LoadModels()
		v.PlayAudio()
		ctx, cancel := context.WithCancel(context.Background())
		core.TheApp.AddQuitCleanFunc(cancel)
		errors.Log(v.Run(ctx))
	})
}

// PlayAudio starts the music, if any, in the background.
// Failure is logged and otherwise ignored.
func (v *Viewer) PlayAudio() {
	path := v.Config.Audio
	if path == "" {
		return
	}
	v.Audio.SetListener(v.listenerPos())
	go func() {
		if err := v.Audio.Play(path); err != nil {
			slog.Error("viewer: cannot play audio", "path", path, "err", err)
		}
	}()
}

// Run starts the frame loop on the paint ticks of the scene, and the
// model file watcher if enabled. Both stop when ctx is done.
// It must be called from the GUI thread.
func (v *Viewer) Run(ctx context.Context) error {
	v.loop = &frame.Loop{Tick: v.tick, Stats: v.Stats}
	if v.Config.Stats {
		v.loop.OnStats = v.showStats
	}
	v.Scene.Animate(func(a *core.Animation) {
		if ctx.Err() != nil {
			a.Done = true
			return
		}
		v.loop.Step(time.Now(), a.Delta)
	})
	if !v.Config.Watch {
		return nil
	}
	return v.watchModels(ctx)
}

// tick advances one frame on the GUI thread: it applies the keyboard
// movement, keeps the camera aspect in step with the widget size,
// moves the audio listener to the camera, and renders.
func (v *Viewer) tick(dt time.Duration) {
	sw := v.Scene
	cam := &v.sc.Camera
	if pos, moved := v.Movement.Step(cam.Pose.Pos); moved {
		cam.Pose.Pos = pos
		cam.LookAt(cam.Target, cam.UpDir)
	}
	if sz := sw.Geom.Size.Actual.Content.ToPointFloor(); sz != v.size && sz != (image.Point{}) {
		v.size = sz
		cam.Aspect = nav.Aspect(sz)
	}
	v.Audio.SetListener(cam.Pose.Pos)
	v.sc.SetNeedsRender()
	sw.NeedsRender()
}

func (v *Viewer) showStats(st *frame.Stats) {
	v.statsText.SetText(st.String()).UpdateRender()
}

// changed marks the scene for update after nodes were added.
func (v *Viewer) changed() {
	v.sc.SetNeedsUpdate()
	if v.Scene != nil {
		v.Scene.NeedsRender()
	}
}

// status sets the status line. It must be called with the async lock held.
func (v *Viewer) status(msg string) {
	if v.statusText == nil {
		return
	}
	v.statusText.SetText(msg).UpdateRender()
}

// listenerPos returns the current camera position.
func (v *Viewer) listenerPos() math32.Vector3 {
	return v.sc.Camera.Pose.Pos
}

func statusMessage(settled, total, failed int) string {
	if settled >= total {
		if failed > 0 {
			return fmt.Sprintf("loaded %d of %d models (%d failed)", total-failed, total, failed)
		}
		return fmt.Sprintf("loaded %d models", total)
	}
	return fmt.Sprintf("loading model %d of %d", settled+1, total)
}
