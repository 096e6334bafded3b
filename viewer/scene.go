// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"fmt"
	"path/filepath"
	"strings"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/tree"
	"cogentcore.org/core/xyz"
	"cogentcore.org/houseview/config"
	"cogentcore.org/houseview/model"
)

// ModelsName is the name of the group holding the loaded models.
const ModelsName = "models"

// groupName returns the name of the group for the model at index idx
// of the load list. Names are unique per list position so the same
// file can be listed twice.
func groupName(idx int, path string) string {
	base := filepath.Base(path)
	return fmt.Sprintf("%d-%s", idx, strings.TrimSuffix(base, filepath.Ext(base)))
}

// AddModel adds a new group under parent holding one solid per mesh of md.
// The meshes are registered with the scene under "<group>/<mesh>".
func AddModel(sc *xyz.Scene, parent tree.Node, idx int, md *model.Model) *xyz.Group {
	gp := xyz.NewGroup(parent)
	gp.SetName(groupName(idx, md.Name))
	for _, ms := range md.Meshes {
		gm := &xyz.GenMesh{
			Vertex:   ms.Vertex,
			Normal:   ms.Normal,
			TexCoord: ms.TexCoord,
			Index:    ms.Index,
		}
		gm.Name = gp.Name + "/" + ms.Name
		sc.SetMesh(gm)
		clr := ms.Color
		if clr.A == 0 {
			clr = colors.White
		}
		sld := xyz.NewSolid(gp).SetMesh(gm).SetColor(clr)
		sld.SetName(ms.Name)
	}
	return gp
}

// ApplyTransform sets the pose of a model group from its spec.
func ApplyTransform(gp *xyz.Group, ms *config.ModelSpec) {
	if !ms.HasTransform() {
		return
	}
	p := ms.Position()
	gp.SetPos(p.X, p.Y, p.Z)
	s := ms.ScaleOrDefault()
	gp.SetScale(s, s, s)
	gp.SetEulerRotation(ms.Rotation[0], ms.Rotation[1], ms.Rotation[2])
}

// isObj returns whether path is a Wavefront OBJ file,
// which is decoded by the scene itself.
func isObj(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".obj")
}
