// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rfcmd implements a command to calculate
// the Robinson-Foulds distances
// between the trees of a project.
package rfcmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/evolbioinfo/gotree/tree"
	"github.com/js-arias/command"
	"github.com/js-arias/toponull/project"
	"github.com/js-arias/toponull/rf"
	"github.com/js-arias/toponull/scores"
)

var Command = &command.Command{
	Usage: `rf [--metric <name>] [-o|--output <prefix>]
	[--cpu <number>]
	<project-file>`,
	Short: "calculate Robinson-Foulds distances",
	Long: `
Command rf reads the reference tree and the random trees of a project, and
calculates the Robinson-Foulds distance between each random tree and the
reference tree. If the project has an observed tree, its distance to the
reference tree will be calculated too.

The argument of the command is the name of the project file.

The Robinson-Foulds distance is calculated over the unrooted trees, as half
the number of splits (bipartitions) found only in one of the trees. All trees
must have the same terminals.

The distances of the random trees will be stored in the file
'<prefix>-null.tab', and the distance of the observed tree in the file
'<prefix>-score.tab'. By default, the prefix is the name of the project file.
Use the flag --output, or -o, to define a different prefix. Both files will be
set as the null and observed score files of the project.

By default, the distances are stored in the column "R-F". Use the flag
--metric to set a different column name.

By default, all available CPUs will be used in the calculations. Set the
--cpu flag to use a different number of CPUs.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var metric string
var output string
var numCPU int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&metric, "metric", rf.Metric, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	pFile := args[0]
	p, err := project.Read(pFile)
	if err != nil {
		return err
	}

	ref, err := p.Reference()
	if err != nil {
		return err
	}

	files, err := p.TreeFiles()
	if err != nil {
		return err
	}

	null, err := nullScores(ref, files)
	if err != nil {
		return err
	}

	if output == "" {
		output = pFile
	}

	nullFile := output + "-null.tab"
	header := fmt.Sprintf("Robinson-Foulds distances of %q to %q", p.Path(project.Trees), p.Path(project.Reference))
	if err := writeScores(nullFile, header, null); err != nil {
		return err
	}
	p.Add(project.Null, nullFile)
	fmt.Fprintf(c.Stderr(), "# %d random trees\n", null.Len())

	if p.Path(project.Observed) != "" {
		obs, err := p.Observed()
		if err != nil {
			return err
		}
		d, err := rf.Distance(ref, obs)
		if err != nil {
			return fmt.Errorf("on observed tree %q: %v", p.Path(project.Observed), err)
		}
		score := scores.New(metric)
		score.Add(treeName(p.Path(project.Observed)), d)

		scoreFile := output + "-score.tab"
		header := fmt.Sprintf("Robinson-Foulds distance of %q to %q", p.Path(project.Observed), p.Path(project.Reference))
		if err := writeScores(scoreFile, header, score); err != nil {
			return err
		}
		p.Add(project.Score, scoreFile)
		fmt.Fprintf(c.Stderr(), "# observed score: %g\n", d)
	}

	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func nullScores(ref *tree.Tree, files []string) (*scores.Table, error) {
	dist, err := rf.DistanceFiles(context.Background(), ref, files, numCPU)
	if err != nil {
		return nil, err
	}

	tab := scores.New(metric)
	for i, fn := range files {
		tab.Add(treeName(fn), dist[i])
	}
	return tab, nil
}

func treeName(name string) string {
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}

func writeScores(name, header string, tab *scores.Table) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	fmt.Fprintf(f, "# %s\n", header)
	fmt.Fprintf(f, "# date: %s\n", time.Now().Format(time.RFC3339))
	if err := tab.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
