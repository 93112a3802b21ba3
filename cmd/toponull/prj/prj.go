// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to print
// the basic information of a project.
package prj

import (
	"fmt"
	"io"

	"github.com/js-arias/command"
	"github.com/js-arias/toponull/project"
	"github.com/js-arias/toponull/rf"
	"gonum.org/v1/gonum/floats"
)

var Command = &command.Command{
	Usage: "prj [--metric <name>] <project-file>",
	Short: "print information about a project",
	Long: `
Command prj reads a toponull project and prints the information of the
different project elements into the standard output.

The argument of the command is the name of the project file.

By default, the column "R-F" of the score files is read. Use the flag
--metric to read a different column.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var metric string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&metric, "metric", rf.Metric, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	w := c.Stdout()
	if p.Path(project.Reference) != "" {
		if err := readTree(w, "Reference tree", p.Path(project.Reference)); err != nil {
			return err
		}
	}
	if p.Path(project.Observed) != "" {
		if err := readTree(w, "Observed tree", p.Path(project.Observed)); err != nil {
			return err
		}
	}
	if p.Path(project.Trees) != "" {
		if err := readTreeFiles(w, p); err != nil {
			return err
		}
	}
	if p.Path(project.Null) != "" {
		if err := readNull(w, p); err != nil {
			return err
		}
	}
	if p.Path(project.Score) != "" {
		v, err := p.ObservedScore(metric)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Observed score:\n")
		fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Score))
		fmt.Fprintf(w, "\t%s: %g\n", metric, v)
		fmt.Fprintf(w, "\n")
	}

	return nil
}

func readTree(w io.Writer, title, name string) error {
	t, err := project.ReadNewick(name)
	if err != nil {
		return err
	}
	terms, err := rf.Terms(t)
	if err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}

	fmt.Fprintf(w, "%s:\n", title)
	fmt.Fprintf(w, "\tfile: %s\n", name)
	fmt.Fprintf(w, "\tterminals: %d\n", len(terms))
	fmt.Fprintf(w, "\n")
	return nil
}

func readTreeFiles(w io.Writer, p *project.Project) error {
	files, err := p.TreeFiles()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Random trees:\n")
	fmt.Fprintf(w, "\tdirectory: %s\n", p.Path(project.Trees))
	fmt.Fprintf(w, "\ttrees: %d\n", len(files))
	fmt.Fprintf(w, "\n")
	return nil
}

func readNull(w io.Writer, p *project.Project) error {
	tab, err := p.NullScores(metric)
	if err != nil {
		return err
	}
	vals := tab.Values()

	fmt.Fprintf(w, "Null scores:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Null))
	fmt.Fprintf(w, "\tscores: %d\n", len(vals))
	fmt.Fprintf(w, "\t%s: [%g-%g]\n", metric, floats.Min(vals), floats.Max(vals))
	fmt.Fprintf(w, "\n")
	return nil
}
