// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package terms implements a command to print
// the list of the terminals in the trees of a toponull project.
package terms

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/timetree"
	"github.com/js-arias/toponull/project"
	"github.com/js-arias/toponull/rf"
	"golang.org/x/exp/slices"
)

var Command = &command.Command{
	Usage: "terms [--tab <file>] [--tree <tree-name>] [<project-file>]",
	Short: "print a list of tree terminals",
	Long: `
Command terms reads the reference tree from a toponull project and prints the
name of the terminals in the standard output. If the project has an observed
tree, any terminal found in only one of the trees will be reported in the
standard error.

The argument of the command is the name of the project file.

If the flag --tab is set, the terminals will be read from the indicated file,
a collection of trees in tab-delimited format (for example, the file produced
with 'toponull random --tab'). In that case, the project file is not
required. By default all terminals in the collection will be printed. If the
flag --tree is set, only the terminals of the indicated tree will be printed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var tabFile string
var treeName string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&tabFile, "tab", "", "")
	c.Flags().StringVar(&treeName, "tree", "", "")
}

func run(c *command.Command, args []string) error {
	if tabFile != "" {
		ls, err := makeTermList(tabFile)
		if err != nil {
			return err
		}
		printTerms(c.Stdout(), ls)
		return nil
	}

	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	ref, err := p.Reference()
	if err != nil {
		return err
	}
	ls, err := rf.Terms(ref)
	if err != nil {
		return fmt.Errorf("on reference tree %q: %v", p.Path(project.Reference), err)
	}
	printTerms(c.Stdout(), ls)

	if p.Path(project.Observed) == "" {
		return nil
	}
	obs, err := p.Observed()
	if err != nil {
		return err
	}
	obsLs, err := rf.Terms(obs)
	if err != nil {
		return fmt.Errorf("on observed tree %q: %v", p.Path(project.Observed), err)
	}
	for _, tax := range ls {
		if _, ok := slices.BinarySearch(obsLs, tax); !ok {
			fmt.Fprintf(c.Stderr(), "# WARNING: terminal %q not in observed tree\n", tax)
		}
	}
	for _, tax := range obsLs {
		if _, ok := slices.BinarySearch(ls, tax); !ok {
			fmt.Fprintf(c.Stderr(), "# WARNING: terminal %q not in reference tree\n", tax)
		}
	}
	return nil
}

func printTerms(w io.Writer, ls []string) {
	for _, term := range ls {
		fmt.Fprintf(w, "%s\n", term)
	}
}

func makeTermList(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := timetree.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}

	var ls []string
	if treeName != "" {
		ls = append(ls, treeName)
	} else {
		ls = c.Names()
	}

	terms := make(map[string]bool)
	for _, tn := range ls {
		t := c.Tree(tn)
		if t == nil {
			return nil, fmt.Errorf("on file %q: tree %q not found", name, tn)
		}
		for _, tax := range t.Terms() {
			terms[tax] = true
		}
	}

	termList := make([]string, 0, len(terms))
	for tax := range terms {
		termList = append(termList, tax)
	}
	slices.Sort(termList)

	return termList, nil
}
