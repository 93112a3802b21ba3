// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package random implements a command to generate
// random trees
// for a null distribution.
package random

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/timetree"
	"github.com/js-arias/toponull/project"
	"github.com/js-arias/toponull/randtree"
	"github.com/js-arias/toponull/rf"
)

var Command = &command.Command{
	Usage: `random [-n|--trees <number>] [--leaves <list>]
	[-o|--output <directory>] [-f|--force]
	[--seed <number>] [--cpu <number>]
	[--unit] [--tab <file>]
	<project-file>`,
	Short: "generate random trees",
	Long: `
Command random generates a number of trees with random topologies for a given
set of terminals. These trees are used as a null hypothesis of stochastic
relationships between the terminals, for example, in a Robinson-Foulds test.
All splits are bifurcations.

The argument of the command is the name of the project file. If no project
file exists, a new project will be created.

By default, the terminals are taken from the reference tree of the project.
Use the flag --leaves to define the terminals with a comma separated list, for
example "a,b,c,d". At least two terminals are required.

By default, 100 trees will be created. Use the flag --trees, or -n, to define
a different number of trees.

Each tree will be stored in its own file, named
'tree_<terminals>_<index>.newick', in the directory defined by the flag
--output, or -o. By default, the directory "random-trees" will be used. If the
directory does not exist it will be created. If the directory already has
tree files, the command fails, so trees from different runs are never mixed.
If the flag --force, or -f, is used, and the directory already exists, the
directory and ALL of its content will be removed before the trees are
written. The output directory will be set as the random trees directory of
the project.

By default, the branch lengths are not written. Use the flag --unit to write
all branch lengths as 1.

By default, a random seed is used (and printed in the standard error). Use
the flag --seed to define the seed, so the same trees will be produced by
different runs.

By default, all available CPUs will be used in the generation. Set the --cpu
flag to use a different number of CPUs.

If the flag --tab is defined, the trees will be also stored in the indicated
file as a collection of time trees, in tab-delimited format. This option
implies the flag --unit.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var numTrees int
var leavesFlag string
var output string
var force bool
var seed uint64
var numCPU int
var unitFlag bool
var tabFile string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&numTrees, "trees", 100, "")
	c.Flags().IntVar(&numTrees, "n", 100, "")
	c.Flags().StringVar(&leavesFlag, "leaves", "", "")
	c.Flags().StringVar(&output, "output", "random-trees", "")
	c.Flags().StringVar(&output, "o", "random-trees", "")
	c.Flags().BoolVar(&force, "force", false, "")
	c.Flags().BoolVar(&force, "f", false, "")
	c.Flags().Uint64Var(&seed, "seed", 0, "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().BoolVar(&unitFlag, "unit", false, "")
	c.Flags().StringVar(&tabFile, "tab", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if numTrees < 1 {
		return c.UsageError("flag --trees: expecting at least one tree")
	}

	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	leaves, err := getLeaves(p)
	if err != nil {
		return err
	}

	if seed == 0 {
		seed = rand.Uint64()
	}
	fmt.Fprintf(c.Stderr(), "# seed: %d\n", seed)

	if err := randtree.PrepareDir(output, force); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("on output %q: %v (use --force to replace them)", output, err)
		}
		return fmt.Errorf("on output %q: %v", output, err)
	}

	opts := randtree.Options{
		Dir:  output,
		Seed: seed,
		CPU:  numCPU,
		Unit: unitFlag || tabFile != "",
	}
	files, err := randtree.Generate(context.Background(), numTrees, leaves, opts)
	if err != nil {
		var we *randtree.WriteError
		if errors.As(err, &we) {
			fmt.Fprintf(c.Stderr(), "WARNING: %d of %d trees written\n", we.Done, we.Requested)
		}
		return err
	}
	for _, f := range files {
		fmt.Fprintf(c.Stdout(), "%s\n", f)
	}

	if tabFile != "" {
		if err := writeTimeTrees(files); err != nil {
			return err
		}
	}

	p.Add(project.Trees, output)
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

func getLeaves(p *project.Project) ([]string, error) {
	if leavesFlag != "" {
		return randtree.ParseLeaves(leavesFlag)
	}

	t, err := p.Reference()
	if err != nil {
		return nil, fmt.Errorf("flag --leaves undefined: %v", err)
	}
	leaves, err := rf.Terms(t)
	if err != nil {
		return nil, fmt.Errorf("on reference tree %q: %v", p.Path(project.Reference), err)
	}
	if err := randtree.CheckLeaves(leaves); err != nil {
		return nil, fmt.Errorf("on reference tree %q: %v", p.Path(project.Reference), err)
	}
	return leaves, nil
}

func writeTimeTrees(files []string) (err error) {
	tc := timetree.NewCollection()
	for _, fn := range files {
		nc, err := readNewick(fn)
		if err != nil {
			return err
		}
		for _, tn := range nc.Names() {
			if err := tc.Add(nc.Tree(tn)); err != nil {
				return fmt.Errorf("when adding tree %q: %v", tn, err)
			}
		}
	}

	f, err := os.Create(tabFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	fmt.Fprintf(f, "# random trees\n")
	fmt.Fprintf(f, "# date: %s\n", time.Now().Format(time.RFC3339))
	if err := tc.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", tabFile, err)
	}
	return nil
}

// readNewick reads a random tree file as a time tree.
// Branches have unit length,
// so the root age is taken from the tree.
func readNewick(name string) (*timetree.Collection, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tn := strings.TrimSuffix(filepath.Base(name), ".newick")
	c, err := timetree.Newick(f, tn, 0)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return c, nil
}
