// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scenery assembles the static parts of the house scene:
// background, lights, the axes helper, and the starting camera.
package scenery

import (
	"image/color"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
)

// Options configures [Assemble].
type Options struct {

	// Background is the clear color of the scene.
	Background color.RGBA

	// Lights are added in order.
	Lights []LightSpec

	// AxesLength is the length of the axes helper; 0 means no helper.
	AxesLength float32

	// Camera is the starting camera.
	Camera CameraSpec
}

// CameraSpec is the starting perspective camera.
type CameraSpec struct {
	FOV  float32
	Near float32
	Far  float32
	Pos  math32.Vector3

	// Target is the point the camera looks at, and the orbit center.
	Target math32.Vector3
}

// DefaultOptions returns the options used by the viewer when nothing
// is configured.
func DefaultOptions() Options {
	return Options{
		Background: colors.FromRGB(0xd3, 0xd3, 0xd3),
		Lights:     DefaultLights(),
		AxesLength: 5,
		Camera:     CameraSpec{FOV: 75, Near: 0.1, Far: 1000, Pos: math32.Vec3(0, 0, 2)},
	}
}

// Assemble configures the scene background, lights, axes helper and camera,
// and saves the camera as "default" so the standard navigation can restore it.
func Assemble(sc *xyz.Scene, opts Options) {
	sc.Background = colors.Uniform(opts.Background)
	AddLights(sc, opts.Lights)
	if opts.AxesLength > 0 {
		AddAxes(sc, opts.AxesLength)
	}
	SetupCamera(sc, opts.Camera)
}

// SetupCamera sets the camera projection and pose.
func SetupCamera(sc *xyz.Scene, cs CameraSpec) {
	cam := &sc.Camera
	if cs.FOV > 0 {
		cam.FOV = cs.FOV
	}
	if cs.Near > 0 {
		cam.Near = cs.Near
	}
	if cs.Far > cs.Near {
		cam.Far = cs.Far
	}
	cam.Pose.Pos = cs.Pos
	cam.LookAt(cs.Target, math32.Vec3(0, 1, 0))
	sc.SaveCamera("default")
}

// AxesName is the name of the axes helper group.
const AxesName = "axes"

// axisThick is the cross-section of each axis bar.
const axisThick = 0.02

// AddAxes adds red, green and blue bars along the positive
// X, Y and Z axes, each of the given length.
func AddAxes(sc *xyz.Scene, length float32) *xyz.Group {
	gp := xyz.NewGroup(sc)
	gp.SetName(AxesName)
	half := length / 2

	xm := xyz.NewBox(sc, "axis-x", length, axisThick, axisThick)
	x := xyz.NewSolid(gp).SetMesh(xm).SetColor(colors.FromRGB(255, 0, 0)).SetPos(half, 0, 0)
	x.SetName("x")

	ym := xyz.NewBox(sc, "axis-y", axisThick, length, axisThick)
	y := xyz.NewSolid(gp).SetMesh(ym).SetColor(colors.FromRGB(0, 255, 0)).SetPos(0, half, 0)
	y.SetName("y")

	zm := xyz.NewBox(sc, "axis-z", axisThick, axisThick, length)
	z := xyz.NewSolid(gp).SetMesh(zm).SetColor(colors.FromRGB(0, 0, 255)).SetPos(0, 0, half)
	z.SetName("z")
	return gp
}
