// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"context"
	"log/slog"
	"os"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/xyz"
	_ "cogentcore.org/core/xyz/io/obj"
	"cogentcore.org/houseview/assets"
	"cogentcore.org/houseview/config"
	"cogentcore.org/houseview/model"
	"cogentcore.org/houseview/watch"
)

// asyncLocker is the part of a widget used to update it from
// other goroutines; [xyzcore.Scene] implements it.
type asyncLocker interface {
	AsyncLock()
	AsyncUnlock()
}

// LoadModels clears the models group and loads the configured models
// into it in order. Loads still in flight from a previous call are dropped.
// It must be called from the GUI thread or with the async lock held.
func (v *Viewer) LoadModels() {
	if sq := v.newSequence(); sq != nil {
		sq.Start()
	}
}

// newSequence clears the models group and returns a new, unstarted
// sequence over the configured models, or nil if the model list
// cannot be read.
func (v *Viewer) newSequence() *assets.Sequence {
	specs, err := v.Config.ModelList()
	if errors.Log(err) != nil {
		v.status("cannot read model list")
		return nil
	}
	v.generation++
	v.failed = 0
	v.Specs = specs
	v.Models.DeleteChildren()

	paths := make([]string, len(specs))
	for i := range specs {
		paths[i] = specs[i].Path
	}
	sq := assets.NewSequence(paths, &sceneLoader{viewer: v, generation: v.generation})
	sq.OnSettled = func(path string, err error) {
		if err != nil {
			v.failed++
		}
		v.status(statusMessage(sq.Index(), len(paths), v.failed))
	}
	v.Sequence = sq
	v.status(statusMessage(0, len(paths), 0))
	return sq
}

// sceneLoader loads model files into the models group of a viewer.
// Files are decoded on a separate goroutine; the scene is only changed,
// and the sequence only told, with the async lock held.
type sceneLoader struct {
	viewer     *Viewer
	generation int
}

func (ld *sceneLoader) Load(path string, progress func(loaded, total int64), done func(err error)) {
	v := ld.viewer
	idx := v.Sequence.Index()
	spec := v.Specs[idx]
	go func() {
		var size int64
		if fi, err := os.Stat(path); err == nil {
			size = fi.Size()
		}
		progress(0, size)
		var md *model.Model
		var err error
		if !isObj(path) {
			md, err = model.Open(path)
		}
		progress(size, size)

		v.lock.AsyncLock()
		defer v.lock.AsyncUnlock()
		if ld.generation != v.generation {
			slog.Debug("viewer: dropping load from previous sequence", "path", path)
			return
		}
		if err == nil {
			err = ld.add(idx, &spec, md)
		}
		if err == nil {
			v.changed()
		}
		done(err)
	}()
}

// add puts a decoded model, or an OBJ file when md is nil,
// into the models group.
func (ld *sceneLoader) add(idx int, spec *config.ModelSpec, md *model.Model) error {
	v := ld.viewer
	var gp *xyz.Group
	if md == nil {
		var err error
		gp, err = v.sc.OpenNewObj(spec.Path, v.Models)
		if err != nil {
			return err
		}
		gp.SetName(groupName(idx, spec.Path))
	} else {
		gp = AddModel(v.sc, v.Models, idx, md)
	}
	ApplyTransform(gp, spec)
	slog.Info("viewer: loaded model", "path", spec.Path, "group", gp.Name)
	return nil
}

// watchPaths returns the files whose change reloads the models:
// the manifest, if any, and every model file.
func watchPaths(manifest string, specs []config.ModelSpec) []string {
	paths := make([]string, 0, len(specs)+1)
	if manifest != "" {
		paths = append(paths, manifest)
	}
	for i := range specs {
		paths = append(paths, specs[i].Path)
	}
	return paths
}

// watchModels reloads the models whenever the manifest or a model file
// changes, until ctx is done. The watched set is rebuilt after each
// reload, so models added to the manifest are watched too.
// It must be called from the GUI thread or with the async lock held.
func (v *Viewer) watchModels(ctx context.Context) error {
	if v.stopWatch != nil {
		v.stopWatch()
	}
	paths := watchPaths(v.Config.Manifest, v.Specs)
	if len(paths) == 0 {
		return nil
	}
	wctx, cancel := context.WithCancel(ctx)
	v.stopWatch = cancel
	err := watch.Watch(wctx, paths, func(path string) {
		slog.Info("viewer: model changed, reloading", "path", path)
		v.lock.AsyncLock()
		defer v.lock.AsyncUnlock()
		v.LoadModels()
		errors.Log(v.watchModels(ctx))
	})
	if err != nil {
		cancel()
	}
	return err
}
