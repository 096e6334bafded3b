// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/core/base/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

// triangleDoc returns a document with one triangle mesh
// referenced by one node with the given translation.
func triangleDoc(translation [3]float64, withNormals bool) *gltf.Document {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	attrs := gltf.PrimitiveAttributes{gltf.POSITION: pos}
	if withNormals {
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	}
	doc.Materials = []*gltf.Material{{
		Name:                 "red",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{1, 0, 0, 1}},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: attrs,
			Material:   gltf.Index(0),
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "root", Mesh: gltf.Index(0), Translation: translation}}
	doc.Scenes = []*gltf.Scene{{Nodes: []int{0}}}
	doc.Scene = gltf.Index(0)
	return doc
}

func TestDecodeTriangle(t *testing.T) {
	md, err := Decode(triangleDoc([3]float64{}, true))
	require.NoError(t, err)
	require.Len(t, md.Meshes, 1)
	ms := md.Meshes[0]
	assert.Equal(t, "tri", ms.Name)
	assert.Equal(t, 3, ms.NumVertex())
	assert.Equal(t, []uint32{0, 1, 2}, ms.Index)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, ms.Vertex)
	assert.Len(t, ms.TexCoord, 6)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, ms.Color)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1, ms.Normal[3*i+2], tol)
	}
}

func TestDecodeComputesNormals(t *testing.T) {
	md, err := Decode(triangleDoc([3]float64{}, false))
	require.NoError(t, err)
	ms := md.Meshes[0]
	require.Len(t, ms.Normal, 9)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0, ms.Normal[3*i], tol)
		assert.InDelta(t, 0, ms.Normal[3*i+1], tol)
		assert.InDelta(t, 1, ms.Normal[3*i+2], tol)
	}
}

func TestDecodeNodeTranslation(t *testing.T) {
	md, err := Decode(triangleDoc([3]float64{2, 3, 4}, true))
	require.NoError(t, err)
	bb := md.Bounds()
	assert.InDelta(t, 2, bb.Min.X, tol)
	assert.InDelta(t, 3, bb.Min.Y, tol)
	assert.InDelta(t, 4, bb.Min.Z, tol)
	assert.InDelta(t, 3, bb.Max.X, tol)
	assert.InDelta(t, 4, bb.Max.Y, tol)
	assert.InDelta(t, 4, bb.Max.Z, tol)
	// translation leaves normals alone
	assert.InDelta(t, 1, md.Meshes[0].Normal[2], tol)
}

func TestDecodeChildNodes(t *testing.T) {
	doc := triangleDoc([3]float64{1, 0, 0}, true)
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "child", Mesh: gltf.Index(0), Translation: [3]float64{0, 0, -1}})
	doc.Nodes[0].Children = []int{1}
	md, err := Decode(doc)
	require.NoError(t, err)
	require.Len(t, md.Meshes, 2)
	// child is offset by both its own and its parent's translation
	assert.InDelta(t, 1, md.Meshes[1].Vertex[0], tol)
	assert.InDelta(t, -1, md.Meshes[1].Vertex[2], tol)
}

func TestDecodeNoScenes(t *testing.T) {
	doc := triangleDoc([3]float64{5, 5, 5}, true)
	doc.Scenes = nil
	doc.Scene = nil
	md, err := Decode(doc)
	require.NoError(t, err)
	require.Len(t, md.Meshes, 1)
	// without a scene the node transform is not applied
	assert.Equal(t, float32(0), md.Meshes[0].Vertex[0])
}

func TestDecodeNoMeshes(t *testing.T) {
	doc := gltf.NewDocument()
	_, err := Decode(doc)
	assert.True(t, errors.Is(err, ErrNoMeshes))
}

func TestDecodeBadSceneIndex(t *testing.T) {
	doc := triangleDoc([3]float64{}, true)
	doc.Scene = gltf.Index(3)
	_, err := Decode(doc)
	assert.Error(t, err)
}

func TestOpenGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.glb")
	require.NoError(t, gltf.SaveBinary(triangleDoc([3]float64{}, true), path))
	md, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, md.Name)
	assert.Len(t, md.Meshes, 1)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.gltf"))
	assert.Error(t, err)
}

func TestOpenBadAccessor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.gltf")
	src := `{"asset":{"version":"2.0"},"meshes":[{"primitives":[{"attributes":{"POSITION":7}}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	assert.NotPanics(t, func() {
		_, err := Open(path)
		assert.ErrorContains(t, err, "accessor index 7 out of range")
	})
}

func TestDecodeBadIndexes(t *testing.T) {
	tests := []struct {
		name  string
		corrupt func(doc *gltf.Document)
	}{
		{"indices", func(doc *gltf.Document) { doc.Meshes[0].Primitives[0].Indices = gltf.Index(40) }},
		{"normal", func(doc *gltf.Document) { doc.Meshes[0].Primitives[0].Attributes[gltf.NORMAL] = 40 }},
		{"texcoord", func(doc *gltf.Document) { doc.Meshes[0].Primitives[0].Attributes[gltf.TEXCOORD_0] = -1 }},
		{"mesh", func(doc *gltf.Document) { doc.Nodes[0].Mesh = gltf.Index(5) }},
		{"node", func(doc *gltf.Document) { doc.Scenes[0].Nodes = []int{9} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := triangleDoc([3]float64{}, true)
			tt.corrupt(doc)
			assert.NotPanics(t, func() {
				_, err := Decode(doc)
				assert.Error(t, err)
			})
		})
	}
}

func TestDecodeBadMaterialKeepsWhite(t *testing.T) {
	doc := triangleDoc([3]float64{}, true)
	doc.Meshes[0].Primitives[0].Material = gltf.Index(-2)
	md, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, md.Meshes[0].Color)
}

func TestDecodeNonUniformScaleNormals(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 1}})
	s := float32(1 / math.Sqrt2)
	nrm := modeler.WriteNormal(doc, [][3]float32{{0, -s, s}, {0, -s, s}, {0, -s, s}})
	doc.Meshes = []*gltf.Mesh{{Name: "slant", Primitives: []*gltf.Primitive{{
		Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos, gltf.NORMAL: nrm},
	}}}}
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0), Scale: [3]float64{1, 1, 2}}}
	doc.Scenes = []*gltf.Scene{{Nodes: []int{0}}}

	md, err := Decode(doc)
	require.NoError(t, err)
	ms := md.Meshes[0]
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 2}, ms.Vertex)
	// the face normal of the scaled triangle is (0, -2, 1) / sqrt(5)
	r5 := 1 / math.Sqrt(5)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0, ms.Normal[3*i], tol)
		assert.InDelta(t, -2*r5, ms.Normal[3*i+1], tol)
		assert.InDelta(t, r5, ms.Normal[3*i+2], tol)
	}
}

func TestDecodeMirrorFlipsWinding(t *testing.T) {
	doc := triangleDoc([3]float64{}, true)
	doc.Nodes[0].Scale = [3]float64{-1, 1, 1}
	md, err := Decode(doc)
	require.NoError(t, err)
	ms := md.Meshes[0]
	assert.Equal(t, []uint32{0, 2, 1}, ms.Index)
	assert.Equal(t, []float32{0, 0, 0, -1, 0, 0, 0, 1, 0}, ms.Vertex)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1, ms.Normal[3*i+2], tol)
	}
}
