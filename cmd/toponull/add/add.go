// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add data files
// to a toponull project.
package add

import (
	"errors"
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/toponull/project"
	"github.com/js-arias/toponull/rf"
	"github.com/js-arias/toponull/scores"
)

var Command = &command.Command{
	Usage: `add [--ref <file>] [--obs <file>]
	[--null <file>] [--score <file>] [--metric <name>]
	<project-file>`,
	Short: "add data files to a toponull project",
	Long: `
Command add reads one or more data files, and add them to a toponull project.

The argument of the command is the name of the project file. If no project
file exists, a new project will be created.

The flag --ref defines the newick file with the reference tree (for example,
the host tree).

The flag --obs defines the newick file with the observed tree (for example,
the microbe tree), that will be compared against the null distribution.

The flag --null defines a score file with the distances of the random trees
to the reference tree, and the flag --score defines a score file with the
distance of the observed tree to the reference tree. Score files can be
produced by other tools. By default, the score files must have an "R-F"
column. Use the flag --metric to define a different column.

Each file is read before it is added to the project, so an invalid file will
be reported immediately.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var refFile string
var obsFile string
var nullFile string
var scoreFile string
var metric string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&refFile, "ref", "", "")
	c.Flags().StringVar(&obsFile, "obs", "", "")
	c.Flags().StringVar(&nullFile, "null", "", "")
	c.Flags().StringVar(&scoreFile, "score", "", "")
	c.Flags().StringVar(&metric, "metric", rf.Metric, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if refFile == "" && obsFile == "" && nullFile == "" && scoreFile == "" {
		return c.UsageError("expecting at least one file to add")
	}

	pFile := args[0]
	p, err := openProject(pFile)
	if err != nil {
		return err
	}

	for _, nf := range []struct {
		set  project.Dataset
		name string
	}{
		{project.Reference, refFile},
		{project.Observed, obsFile},
	} {
		if nf.name == "" {
			continue
		}
		if _, err := project.ReadNewick(nf.name); err != nil {
			return err
		}
		p.Add(nf.set, nf.name)
	}

	for _, sf := range []struct {
		set  project.Dataset
		name string
	}{
		{project.Null, nullFile},
		{project.Score, scoreFile},
	} {
		if sf.name == "" {
			continue
		}
		if err := checkScores(sf.name); err != nil {
			return err
		}
		p.Add(sf.set, sf.name)
	}

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

func checkScores(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := scores.ReadTSV(f, metric); err != nil {
		return fmt.Errorf("while reading file %q: %v", name, err)
	}
	return nil
}
