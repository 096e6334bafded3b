// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of the houseview viewer,
// set from command line flags and the houseview.toml config file.
package config

import (
	"image/color"
	"log/slog"

	"cogentcore.org/core/base/logx"
	"cogentcore.org/core/cli"
	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
)

// DefaultModels are the parts of the house, in load order.
var DefaultModels = []string{
	"models/onfloor/first floor.gltf",
	"models/roof-1/roof.gltf",
	"models/steps/steps.gltf",
	"models/second floor/second floor.gltf",
}

// Config is the configuration of the viewer.
type Config struct {

	// Models are the model files to load, in order.
	// glTF (.gltf, .glb) and OBJ (.obj) files are supported.
	Models []string `posarg:"all" required:"-"`

	// Manifest is an optional TOML or YAML file listing the models
	// to load with a transform for each. It takes precedence over Models.
	Manifest string `flag:"m,manifest"`

	// Audio is the background music file; empty for none.
	Audio string `default:"sounds/piano.mp3"`

	// AudioRefDistance is the distance from the sound source
	// within which the music plays at full volume.
	AudioRefDistance float64 `default:"20"`

	// Volume is the overall music volume multiplier.
	Volume float64 `default:"1"`

	// Background is the background color as a hex string.
	Background string `default:"#d3d3d3"`

	// FOV is the vertical field of view of the camera in degrees.
	FOV float32 `default:"75"`

	// Near is the near clipping plane distance.
	Near float32 `default:"0.1"`

	// Far is the far clipping plane distance.
	Far float32 `default:"1000"`

	// CameraX, CameraY and CameraZ are the starting camera position.
	CameraX float32 `default:"0"`
	CameraY float32 `default:"0"`
	CameraZ float32 `default:"2"`

	// MoveStep is how far the W, A, S and D keys move the camera per frame.
	MoveStep float32 `default:"0.1"`

	// Stats shows the frame rate overlay.
	Stats bool `default:"true"`

	// Axes is the length of the axes helper; 0 to hide it.
	Axes float32 `default:"5"`

	// Watch reloads the models when any of their files change.
	Watch bool `flag:"w,watch"`

	// Verbose shows info log messages.
	Verbose bool `flag:"v,verbose"`

	// Debug shows debug log messages, including load progress.
	Debug bool `flag:"vv,debug"`

	// Quiet only shows error log messages.
	Quiet bool `flag:"q,quiet"`
}

// CameraPos returns the starting camera position.
func (c *Config) CameraPos() math32.Vector3 {
	return math32.Vec3(c.CameraX, c.CameraY, c.CameraZ)
}

// BackgroundColor parses the background color.
func (c *Config) BackgroundColor() (color.RGBA, error) {
	return colors.FromHex(c.Background)
}

// LogLevel returns the user log level selected by the flags.
func (c *Config) LogLevel() slog.Level {
	return logx.LevelFromFlags(c.Debug, c.Verbose, c.Quiet)
}

// ModelList returns the models to load: those in the manifest if one
// is set, or else the Models list, or else [DefaultModels].
func (c *Config) ModelList() ([]ModelSpec, error) {
	if c.Manifest != "" {
		mf, err := OpenManifest(c.Manifest)
		if err != nil {
			return nil, err
		}
		return mf.Models, nil
	}
	paths := c.Models
	if len(paths) == 0 {
		paths = DefaultModels
	}
	specs := make([]ModelSpec, len(paths))
	for i, p := range paths {
		specs[i] = ModelSpec{Path: p}
	}
	return specs, nil
}

// Defaults sets every field to its default tag value.
func (c *Config) Defaults() {
	cli.SetFromDefaults(c)
}
