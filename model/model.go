// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model decodes glTF 2.0 files into flat triangle meshes
// in world coordinates, ready to be turned into xyz meshes.
package model

import (
	"fmt"
	"image/color"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrNoMeshes is returned when a file decodes but has no triangle meshes.
var ErrNoMeshes = errors.New("model: no triangle meshes")

// Model is a decoded model file.
type Model struct {

	// Name is the name of the model, typically the file name.
	Name string

	// Meshes are the triangle meshes of the model in world coordinates.
	Meshes []*Mesh
}

// Mesh is one indexed triangle mesh.
// Vertex and Normal have 3 values per vertex, TexCoord has 2.
type Mesh struct {
	Name     string
	Vertex   []float32
	Normal   []float32
	TexCoord []float32
	Index    []uint32

	// Color is the base color of the mesh material.
	Color color.RGBA
}

// NumVertex returns the number of vertices in the mesh.
func (ms *Mesh) NumVertex() int {
	return len(ms.Vertex) / 3
}

// Bounds returns the bounding box of all meshes in the model.
func (md *Model) Bounds() math32.Box3 {
	bb := math32.B3Empty()
	for _, ms := range md.Meshes {
		for i := 0; i+2 < len(ms.Vertex); i += 3 {
			bb.ExpandByPoint(math32.Vec3(ms.Vertex[i], ms.Vertex[i+1], ms.Vertex[i+2]))
		}
	}
	return bb
}

// Open reads the glTF or GLB file at the given path and decodes it.
func Open(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open %q: %w", path, err)
	}
	md, err := Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("model: decode %q: %w", path, err)
	}
	md.Name = path
	return md, nil
}

// Decode converts the default scene of the given document into a [Model].
// Node transforms are applied to the mesh data. If the document has no
// scenes, every mesh is decoded untransformed.
func Decode(doc *gltf.Document) (*Model, error) {
	md := &Model{}
	if len(doc.Scenes) == 0 {
		for mi := range doc.Meshes {
			if err := md.addMesh(doc, mi, math32.Identity4()); err != nil {
				return nil, err
			}
		}
	} else {
		si := 0
		if doc.Scene != nil {
			si = *doc.Scene
		}
		if si < 0 || si >= len(doc.Scenes) {
			return nil, fmt.Errorf("model: scene index %d out of range", si)
		}
		for _, ni := range doc.Scenes[si].Nodes {
			if err := md.addNode(doc, ni, math32.Identity4(), 0); err != nil {
				return nil, err
			}
		}
	}
	if len(md.Meshes) == 0 {
		return nil, ErrNoMeshes
	}
	return md, nil
}

// maxDepth guards against cyclic node hierarchies.
const maxDepth = 64

func (md *Model) addNode(doc *gltf.Document, ni int, parent *math32.Matrix4, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("model: node hierarchy deeper than %d", maxDepth)
	}
	if ni < 0 || ni >= len(doc.Nodes) {
		return fmt.Errorf("model: node index %d out of range", ni)
	}
	nd := doc.Nodes[ni]
	if nd == nil {
		return fmt.Errorf("model: node %d is empty", ni)
	}
	world := &math32.Matrix4{}
	world.MulMatrices(parent, nodeMatrix(nd))
	if nd.Mesh != nil {
		if err := md.addMesh(doc, *nd.Mesh, world); err != nil {
			return err
		}
	}
	for _, ci := range nd.Children {
		if err := md.addNode(doc, ci, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// nodeMatrix returns the local transform of the node, from either
// its matrix or its translation, rotation and scale.
func nodeMatrix(nd *gltf.Node) *math32.Matrix4 {
	m := &math32.Matrix4{}
	mat := nd.MatrixOrDefault()
	if mat != gltf.DefaultMatrix {
		for i, v := range mat {
			m[i] = float32(v)
		}
		return m
	}
	tr := nd.Translation
	rot := nd.RotationOrDefault()
	sc := nd.ScaleOrDefault()
	m.SetTransform(
		math32.Vec3(float32(tr[0]), float32(tr[1]), float32(tr[2])),
		math32.NewQuat(float32(rot[0]), float32(rot[1]), float32(rot[2]), float32(rot[3])),
		math32.Vec3(float32(sc[0]), float32(sc[1]), float32(sc[2])))
	return m
}

func (md *Model) addMesh(doc *gltf.Document, mi int, world *math32.Matrix4) error {
	if mi < 0 || mi >= len(doc.Meshes) {
		return fmt.Errorf("model: mesh index %d out of range", mi)
	}
	gm := doc.Meshes[mi]
	if gm == nil {
		return fmt.Errorf("model: mesh %d is empty", mi)
	}
	for pi, prim := range gm.Primitives {
		if prim == nil || prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		ms, err := decodePrimitive(doc, prim)
		if err != nil {
			return fmt.Errorf("model: mesh %q primitive %d: %w", gm.Name, pi, err)
		}
		ms.Name = meshName(gm.Name, mi, pi)
		ms.transform(world)
		md.Meshes = append(md.Meshes, ms)
	}
	return nil
}

func meshName(name string, mi, pi int) string {
	if name == "" {
		name = fmt.Sprintf("mesh%d", mi)
	}
	if pi == 0 {
		return name
	}
	return fmt.Sprintf("%s.%d", name, pi)
}

func decodePrimitive(doc *gltf.Document, prim *gltf.Primitive) (*Mesh, error) {
	pi, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, errors.New("no POSITION attribute")
	}
	acr, err := accessor(doc, pi)
	if err != nil {
		return nil, err
	}
	pos, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return nil, err
	}
	ms := &Mesh{Color: color.RGBA{255, 255, 255, 255}}
	nv := len(pos)
	ms.Vertex = make([]float32, 0, nv*3)
	for _, p := range pos {
		ms.Vertex = append(ms.Vertex, p[0], p[1], p[2])
	}

	if prim.Indices != nil {
		acr, err := accessor(doc, *prim.Indices)
		if err != nil {
			return nil, err
		}
		idx, err := modeler.ReadIndices(doc, acr, nil)
		if err != nil {
			return nil, err
		}
		for _, ix := range idx {
			if int(ix) >= nv {
				return nil, fmt.Errorf("index %d out of range of %d vertices", ix, nv)
			}
		}
		ms.Index = idx
	} else {
		ms.Index = make([]uint32, nv)
		for i := range ms.Index {
			ms.Index[i] = uint32(i)
		}
	}
	ms.Index = ms.Index[:len(ms.Index)-len(ms.Index)%3]

	if ni, ok := prim.Attributes[gltf.NORMAL]; ok {
		acr, err := accessor(doc, ni)
		if err != nil {
			return nil, err
		}
		nrm, err := modeler.ReadNormal(doc, acr, nil)
		if err != nil {
			return nil, err
		}
		if len(nrm) == nv {
			ms.Normal = make([]float32, 0, nv*3)
			for _, n := range nrm {
				ms.Normal = append(ms.Normal, n[0], n[1], n[2])
			}
		}
	}
	if ms.Normal == nil {
		ms.computeNormals()
	}

	if ti, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		acr, err := accessor(doc, ti)
		if err != nil {
			return nil, err
		}
		uv, err := modeler.ReadTextureCoord(doc, acr, nil)
		if err != nil {
			return nil, err
		}
		if len(uv) == nv {
			ms.TexCoord = make([]float32, 0, nv*2)
			for _, t := range uv {
				ms.TexCoord = append(ms.TexCoord, t[0], t[1])
			}
		}
	}
	if ms.TexCoord == nil {
		ms.TexCoord = make([]float32, nv*2)
	}

	if mi := prim.Material; mi != nil && *mi >= 0 && *mi < len(doc.Materials) && doc.Materials[*mi] != nil {
		ms.Color = baseColor(doc.Materials[*mi])
	}
	return ms, nil
}

// accessor returns the accessor with the given index.
func accessor(doc *gltf.Document, i int) (*gltf.Accessor, error) {
	if i < 0 || i >= len(doc.Accessors) || doc.Accessors[i] == nil {
		return nil, fmt.Errorf("accessor index %d out of range of %d accessors", i, len(doc.Accessors))
	}
	return doc.Accessors[i], nil
}

// baseColor returns the non-premultiplied base color factor of the material.
func baseColor(mat *gltf.Material) color.RGBA {
	clr := color.RGBA{255, 255, 255, 255}
	if mat.PBRMetallicRoughness == nil || mat.PBRMetallicRoughness.BaseColorFactor == nil {
		return clr
	}
	f := mat.PBRMetallicRoughness.BaseColorFactor
	to8 := func(v float64) uint8 {
		return uint8(math32.Clamp(float32(v), 0, 1)*255 + 0.5)
	}
	return color.RGBA{to8(f[0]), to8(f[1]), to8(f[2]), to8(f[3])}
}

// computeNormals sets smooth vertex normals from the area-weighted
// normals of the faces sharing each vertex.
func (ms *Mesh) computeNormals() {
	ms.Normal = make([]float32, len(ms.Vertex))
	vtx := func(i uint32) math32.Vector3 {
		return math32.Vec3(ms.Vertex[3*i], ms.Vertex[3*i+1], ms.Vertex[3*i+2])
	}
	for f := 0; f+2 < len(ms.Index); f += 3 {
		a, b, c := ms.Index[f], ms.Index[f+1], ms.Index[f+2]
		fn := vtx(b).Sub(vtx(a)).Cross(vtx(c).Sub(vtx(a)))
		for _, i := range []uint32{a, b, c} {
			ms.Normal[3*i] += fn.X
			ms.Normal[3*i+1] += fn.Y
			ms.Normal[3*i+2] += fn.Z
		}
	}
	for i := 0; i+2 < len(ms.Normal); i += 3 {
		n := math32.Vec3(ms.Normal[i], ms.Normal[i+1], ms.Normal[i+2])
		if n.Length() == 0 {
			continue
		}
		n = n.Normal()
		ms.Normal[i], ms.Normal[i+1], ms.Normal[i+2] = n.X, n.Y, n.Z
	}
}

// transform applies the world matrix to vertices, and its normal matrix
// (the inverse transpose) to normals. A mirroring matrix also reverses
// the triangle winding so front faces stay front faces.
func (ms *Mesh) transform(world *math32.Matrix4) {
	if *world == *math32.Identity4() {
		return
	}
	for i := 0; i+2 < len(ms.Vertex); i += 3 {
		v := math32.Vec3(ms.Vertex[i], ms.Vertex[i+1], ms.Vertex[i+2]).MulMatrix4(world)
		ms.Vertex[i], ms.Vertex[i+1], ms.Vertex[i+2] = v.X, v.Y, v.Z
	}
	var nm math32.Matrix3
	nm.SetNormalMatrix(world)
	for i := 0; i+2 < len(ms.Normal); i += 3 {
		n := math32.Vec3(ms.Normal[i], ms.Normal[i+1], ms.Normal[i+2]).MulMatrix3(&nm)
		if n.Length() == 0 {
			continue
		}
		n = n.Normal()
		ms.Normal[i], ms.Normal[i+1], ms.Normal[i+2] = n.X, n.Y, n.Z
	}
	if world.Determinant() < 0 {
		for f := 0; f+2 < len(ms.Index); f += 3 {
			ms.Index[f+1], ms.Index[f+2] = ms.Index[f+2], ms.Index[f+1]
		}
	}
}
