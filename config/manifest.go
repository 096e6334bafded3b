// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/core/math32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ModelSpec is one model to load, with its placement in the scene.
type ModelSpec struct {

	// Path is the model file.
	Path string `toml:"path" yaml:"path"`

	// Pos is the position offset.
	Pos [3]float32 `toml:"pos" yaml:"pos"`

	// Scale is the uniform scale; 0 means 1.
	Scale float32 `toml:"scale" yaml:"scale"`

	// Rotation is the Euler rotation in degrees around X, Y and Z.
	Rotation [3]float32 `toml:"rotation" yaml:"rotation"`
}

// Position returns Pos as a vector.
func (ms *ModelSpec) Position() math32.Vector3 {
	return math32.Vec3(ms.Pos[0], ms.Pos[1], ms.Pos[2])
}

// ScaleOrDefault returns Scale, or 1 if it is not set.
func (ms *ModelSpec) ScaleOrDefault() float32 {
	if ms.Scale == 0 {
		return 1
	}
	return ms.Scale
}

// HasTransform returns whether the model is moved, scaled or rotated.
func (ms *ModelSpec) HasTransform() bool {
	return ms.Pos != [3]float32{} || ms.ScaleOrDefault() != 1 || ms.Rotation != [3]float32{}
}

// Manifest lists the models of a scene.
type Manifest struct {
	Models []ModelSpec `toml:"model" yaml:"model"`
}

// OpenManifest reads a manifest from a .toml, .yaml or .yml file.
// Relative model paths are resolved against the directory of the manifest.
func OpenManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	mf := &Manifest{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(b, mf)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, mf)
	default:
		return nil, fmt.Errorf("config: manifest %q: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("config: manifest %q: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i := range mf.Models {
		ms := &mf.Models[i]
		if ms.Path == "" {
			return nil, fmt.Errorf("config: manifest %q: model %d has no path", path, i)
		}
		if !filepath.IsAbs(ms.Path) {
			ms.Path = filepath.Join(dir, ms.Path)
		}
	}
	return mf, nil
}
