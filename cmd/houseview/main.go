// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command houseview is a 3D walkthrough of a house: it loads the house
// models one after another, lights them, and lets you orbit with the
// mouse and walk with the W, A, S and D keys while music plays.
package main

import (
	"cogentcore.org/core/base/logx"
	"cogentcore.org/core/cli"
	"cogentcore.org/core/core"
	"cogentcore.org/houseview/config"
	"cogentcore.org/houseview/viewer"
)

func main() {
	opts := cli.DefaultOptions("houseview", "A 3D walkthrough of a house.")
	opts.DefaultFiles = []string{"houseview.toml"}
	cli.Run(opts, &config.Config{}, &cli.Cmd[*config.Config]{
		Func: Run,
		Name: "run",
		Doc:  "Run opens the viewer window.",
		Root: true,
	})
}

// Run opens the viewer window and blocks until it is closed.
func Run(c *config.Config) error {
	logx.UserLevel = c.LogLevel()
	b := core.NewBody("houseview").SetTitle("House")
	v := viewer.New(c)
	v.Build(b)
	b.RunMainWindow()
	return nil
}
