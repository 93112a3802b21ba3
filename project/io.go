// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/evolbioinfo/gotree/io/newick"
	"github.com/evolbioinfo/gotree/tree"
	"github.com/js-arias/toponull/scores"
)

// Reference reads the reference tree
// as defined in a project.
func (p *Project) Reference() (*tree.Tree, error) {
	name := p.Path(Reference)
	if name == "" {
		return nil, fmt.Errorf("reference tree not defined in project %q", p.name)
	}
	return ReadNewick(name)
}

// Observed reads the observed tree
// as defined in a project.
func (p *Project) Observed() (*tree.Tree, error) {
	name := p.Path(Observed)
	if name == "" {
		return nil, fmt.Errorf("observed tree not defined in project %q", p.name)
	}
	return ReadNewick(name)
}

// ReadNewick reads the first tree
// from a newick file.
func ReadNewick(name string) (*tree.Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := newick.NewParser(f).Parse()
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return t, nil
}

// TreeFiles returns the newick files
// in the random trees directory
// as defined in a project.
// Files are sorted by the tree index.
//
// Files named tree_<terminals>_<index>.newick
// must have the same number of terminals
// and indexes from 0 to the number of files minus one,
// otherwise the directory mixes trees
// from different runs
// and an error is returned.
func (p *Project) TreeFiles() ([]string, error) {
	dir := p.Path(Trees)
	if dir == "" {
		return nil, fmt.Errorf("random trees not defined in project %q", p.name)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.newick"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("on directory %q: no newick files", dir)
	}

	slices.SortFunc(files, func(a, b string) int {
		_, ia, _ := treeIndex(a)
		_, ib, _ := treeIndex(b)
		if c := cmp.Compare(ia, ib); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	terms := -1
	var i int
	for _, f := range files {
		k, idx, ok := treeIndex(f)
		if !ok {
			continue
		}
		if terms < 0 {
			terms = k
		}
		if k != terms {
			return nil, fmt.Errorf("on directory %q: trees from different runs: file %q has %d terminals, want %d", dir, filepath.Base(f), k, terms)
		}
		if idx != i {
			return nil, fmt.Errorf("on directory %q: trees from different runs: file %q, want index %d", dir, filepath.Base(f), i)
		}
		i++
	}
	return files, nil
}

// treeIndex returns the number of terminals
// and the index of a tree
// from a file name in the form tree_<terms>_<index>.newick.
func treeIndex(name string) (terms, index int, ok bool) {
	base := strings.TrimSuffix(filepath.Base(name), ".newick")
	f := strings.Split(base, "_")
	if len(f) != 3 || f[0] != "tree" {
		return -1, -1, false
	}
	terms, err := strconv.Atoi(f[1])
	if err != nil {
		return -1, -1, false
	}
	index, err = strconv.Atoi(f[2])
	if err != nil {
		return -1, -1, false
	}
	return terms, index, true
}

// NullScores reads the scores of the null distribution
// for the indicated metric
// as defined in a project.
func (p *Project) NullScores(metric string) (*scores.Table, error) {
	name := p.Path(Null)
	if name == "" {
		return nil, fmt.Errorf("null scores not defined in project %q", p.name)
	}
	return readScores(name, metric)
}

// ObservedScore reads the score of the observed tree
// for the indicated metric
// as defined in a project.
// If the table has more than one score,
// the first one is used.
func (p *Project) ObservedScore(metric string) (float64, error) {
	name := p.Path(Score)
	if name == "" {
		return 0, fmt.Errorf("observed score not defined in project %q", p.name)
	}
	tab, err := readScores(name, metric)
	if err != nil {
		return 0, err
	}
	return tab.Values()[0], nil
}

func readScores(name, metric string) (*scores.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tab, err := scores.ReadTSV(f, metric)
	if err != nil {
		return nil, fmt.Errorf("when reading %q: %v", name, err)
	}
	return tab, nil
}
