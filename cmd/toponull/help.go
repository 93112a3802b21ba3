// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(newickFilesGuide)
	app.Add(projectsGuide)
	app.Add(scoreFilesGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
Toponull requires several files to run a congruence test. To reduce the
burden of keeping track of many files, a single project file is used to hold
the reference of all files required in the analysis. This guide explains the
structure of the file, but most of the time, the best way to edit or view
this file is by using toponull commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# toponull project files
	dataset	path
	reference	host.newick
	observed	microbe.newick
	trees	random-trees
	null	project.tab-null.tab
	score	project.tab-score.tab

The valid file types are:

- Reference tree. Defined by the dataset keyword "reference". A newick file
  with the tree used as reference for all the distances (for example, the
  host tree). The recommended way to add a reference tree is by using the
  command 'toponull add'.
- Observed tree. Defined by the dataset keyword "observed". A newick file
  with the tree compared against the null distribution (for example, the
  microbe tree). The recommended way to add an observed tree is by using the
  command 'toponull add'.
- Random trees. Defined by the dataset keyword "trees". A directory with the
  random trees, one newick file per tree. It is usually set by the command
  'toponull random'.
- Null scores. Defined by the dataset keyword "null". A score table with the
  distances between the random trees and the reference tree. It is usually
  set by the command 'toponull rf'.
- Observed score. Defined by the dataset keyword "score". A score table with
  the distance between the observed tree and the reference tree. It is
  usually set by the command 'toponull rf'.
	`,
}

var newickFilesGuide = &command.Command{
	Usage: "newick-files",
	Short: "about newick tree files",
	Long: `
In toponull, trees are stored in newick format (i.e., a parenthetical
format). Each file must contain a single tree, terminated by a semicolon.
Branch lengths are accepted, but ignored, as the distances used by toponull
are topological.

Random trees are stored in a directory, one tree per file, using the name
'tree_<terminals>_<index>.newick', for example:

	random-trees/tree_6_0.newick
	random-trees/tree_6_1.newick
	random-trees/tree_6_2.newick

Here is an example of a random tree with six terminals:

	((Bos_taurus,(Homo_sapiens,Pan_troglodytes)),((Mus_musculus,Rattus_norvegicus),Canis_lupus));

Terminal names must not contain spaces, nor any of the characters with a
meaning in the newick format: parenthesis, brackets, commas, colons,
semicolons, or single quotes. Use underscores instead of spaces.
	`,
}

var scoreFilesGuide = &command.Command{
	Usage: "score-files",
	Short: "about score files",
	Long: `
A score file is a tab-delimited file with the distance between a set of trees
and a reference tree. It must contain a column with the name of the metric,
by default "R-F" (for the Robinson-Foulds distance). Any other column will be
ignored. If the file has a column "tree", it will be used as the name of the
tree, otherwise, the row number will be used. Lines starting with '#' are
ignored.

Here is an example file:

	# Robinson-Foulds distances to "host.newick"
	# date: 2024-01-15T10:22:41-03:00
	tree	R-F
	tree_6_0	2
	tree_6_1	3
	tree_6_2	1

Tables produced by other tools can be used, as long as they have a column
with the name of the metric. For example, the output of TreeCmp, that uses
"R-F" as the name of the Robinson-Foulds metric.

An empty or non-numeric score is an error: missing values are never read as
zero.
	`,
}
