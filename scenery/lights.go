// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenery

import (
	"fmt"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
)

// LightKinds are the kinds of lights a [LightSpec] can describe.
type LightKinds int32

const (
	// Ambient light illuminates everything uniformly.
	Ambient LightKinds = iota

	// Directional light shines from Pos toward the origin with no decay.
	Directional

	// Point light shines in all directions from Pos.
	Point

	// Spot light shines from Pos toward Target within a cone.
	Spot
)

func (k LightKinds) String() string {
	switch k {
	case Ambient:
		return "ambient"
	case Directional:
		return "directional"
	case Point:
		return "point"
	case Spot:
		return "spot"
	}
	return fmt.Sprintf("LightKinds(%d)", int32(k))
}

// LightSpec describes one light to add to the scene.
type LightSpec struct {

	// Name must be unique within the scene, since lights are stored by name.
	Name string

	Kind LightKinds

	// Lumens is the normalized 0-1 brightness.
	Lumens float32

	// Color is the standard light color.
	Color xyz.LightColors

	// Pos is the light position; ignored for ambient lights.
	Pos math32.Vector3

	// Target is where a spot light points.
	Target math32.Vector3
}

// DefaultLights returns the house lighting rig: a strong key spot,
// a base ambient, a sun overhead, a point light inside the first floor,
// an overhead spot, and five soft ambient fills.
func DefaultLights() []LightSpec {
	return []LightSpec{
		{Name: "key-spot", Kind: Spot, Lumens: 1, Pos: math32.Vec3(5, 5, 5)},
		{Name: "ambient", Kind: Ambient, Lumens: 0.5},
		{Name: "sun", Kind: Directional, Lumens: 0.5, Pos: math32.Vec3(0, 10, 0)},
		{Name: "point", Kind: Point, Lumens: 0.5, Pos: math32.Vec3(0, 3, 0)},
		{Name: "overhead-spot", Kind: Spot, Lumens: 0.5, Pos: math32.Vec3(0, 5, 0)},
		{Name: "fill-center", Kind: Ambient, Lumens: 0.2},
		{Name: "fill-east", Kind: Ambient, Lumens: 0.2, Pos: math32.Vec3(10, 0, 0)},
		{Name: "fill-west", Kind: Ambient, Lumens: 0.2, Pos: math32.Vec3(-10, 0, 0)},
		{Name: "fill-south", Kind: Ambient, Lumens: 0.2, Pos: math32.Vec3(0, 0, 10)},
		{Name: "fill-north", Kind: Ambient, Lumens: 0.2, Pos: math32.Vec3(0, 0, -10)},
	}
}

// AddLights adds the given lights to the scene. Lumens are clamped to 0-1.
func AddLights(sc *xyz.Scene, lights []LightSpec) {
	for _, ls := range lights {
		lm := math32.Clamp(ls.Lumens, 0, 1)
		switch ls.Kind {
		case Ambient:
			xyz.NewAmbient(sc, ls.Name, lm, ls.Color)
		case Directional:
			dl := xyz.NewDirectional(sc, ls.Name, lm, ls.Color)
			dl.Pos = ls.Pos
		case Point:
			pl := xyz.NewPoint(sc, ls.Name, lm, ls.Color)
			pl.Pos = ls.Pos
		case Spot:
			sl := xyz.NewSpot(sc, ls.Name, lm, ls.Color)
			sl.Pose.Pos = ls.Pos
			// straight down has no usable up direction along Y
			up := math32.Vec3(0, 1, 0)
			if ls.Pos.X == ls.Target.X && ls.Pos.Z == ls.Target.Z {
				up = math32.Vec3(0, 0, -1)
			}
			sl.LookAt(ls.Target, up)
		}
	}
}
