// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package cmpcmd implements a command to compare
// the score of an observed tree
// against a null distribution.
package cmpcmd

import (
	"fmt"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/toponull/nulldist"
	"github.com/js-arias/toponull/project"
	"github.com/js-arias/toponull/rf"
)

var Command = &command.Command{
	Usage: `cmp --size <number> [--metric <name>]
	[--score <value>] [--plot <file>] [--bins <number>]
	<project-file>`,
	Short: "compare an observed score against a null distribution",
	Long: `
Command cmp reads the scores of a null distribution (for example, the
Robinson-Foulds distances between a set of random trees and a reference tree)
and the score of an observed tree, and reports the number of null scores that
are better (smaller), worse (larger), or equal to the observed score, as well
as the p-values of the observed score.

The argument of the command is the name of the project file. The null
distribution is read from the null score file of the project.

The flag --size is required and indicates the number of trees in the null
distribution. It must be equal to the number of scores in the null score file.

By default, the observed score is read from the observed score file of the
project. Use the flag --score to define the observed score directly.

By default, the column "R-F" of the score files is used. Use the flag
--metric to use a different column.

The p-value is the number of null scores better than the observed score,
divided by the size of the null distribution. The p-value of better or equal
scores includes the null scores equal to the observed score. Lower scores are
considered better.

If the flag --plot is defined, a histogram of the null distribution, with the
observed score marked as a vertical line, will be saved in the indicated file.
The file format is defined by the file extension (for example, ".png", or
".svg"). By default, the histogram uses 20 bins. Use the flag --bins to define
a different number of bins.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var size int
var metric string
var scoreFlag string
var plotFile string
var numBins int

func setFlags(c *command.Command) {
	c.Flags().IntVar(&size, "size", 0, "")
	c.Flags().StringVar(&metric, "metric", rf.Metric, "")
	c.Flags().StringVar(&scoreFlag, "score", "", "")
	c.Flags().StringVar(&plotFile, "plot", "", "")
	c.Flags().IntVar(&numBins, "bins", 20, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if size <= 0 {
		return c.UsageError("expecting null distribution size, flag --size")
	}
	if numBins < 1 {
		return c.UsageError("flag --bins: expecting at least one bin")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	null, err := p.NullScores(metric)
	if err != nil {
		return err
	}

	var obs float64
	if scoreFlag != "" {
		obs, err = strconv.ParseFloat(scoreFlag, 64)
		if err != nil {
			return fmt.Errorf("flag --score: %v", err)
		}
	} else {
		obs, err = p.ObservedScore(metric)
		if err != nil {
			return err
		}
	}

	r, err := nulldist.Compare(null.Values(), obs, size)
	if err != nil {
		return fmt.Errorf("on null scores %q: %w", p.Path(project.Null), err)
	}
	if err := r.Write(c.Stdout()); err != nil {
		return err
	}

	if plotFile != "" {
		if err := makePlot(null.Values(), obs); err != nil {
			return fmt.Errorf("on plot %q: %v", plotFile, err)
		}
	}
	return nil
}
