// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Toponull is a tool to test the congruence
// of two phylogenetic trees
// against a null distribution of random trees.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/toponull/cmd/toponull/add"
	"github.com/js-arias/toponull/cmd/toponull/cmpcmd"
	"github.com/js-arias/toponull/cmd/toponull/prj"
	"github.com/js-arias/toponull/cmd/toponull/random"
	"github.com/js-arias/toponull/cmd/toponull/rfcmd"
	"github.com/js-arias/toponull/cmd/toponull/terms"
)

var app = &command.Command{
	Usage: "toponull <command> [<argument>...]",
	Short: "a tool for topological congruence tests",
}

func init() {
	app.Add(add.Command)
	app.Add(cmpcmd.Command)
	app.Add(prj.Command)
	app.Add(random.Command)
	app.Add(rfcmd.Command)
	app.Add(terms.Command)
}

func main() {
	app.Main()
}
