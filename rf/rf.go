// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rf implements the Robinson-Foulds distance
// between two trees with the same terminals.
//
// The distance is calculated
// over the splits (bipartitions) of the unrooted trees,
// as half the number of splits
// present in only one of the trees.
// Splits are compared using the edge bitsets
// of gotree.
package rf

import (
	"errors"
	"fmt"
	"slices"

	"github.com/evolbioinfo/gotree/tree"
)

// Metric is the name of the Robinson-Foulds metric
// in score tables.
const Metric = "R-F"

// ErrLeafMismatch is returned when two trees
// have different terminals.
var ErrLeafMismatch = errors.New("different terminals")

// Terms returns the alphabetically sorted list
// of terminals of a tree.
func Terms(t *tree.Tree) ([]string, error) {
	var names []string
	for _, n := range t.Nodes() {
		if !n.Tip() {
			continue
		}
		names = append(names, n.Name())
	}
	slices.Sort(names)

	for i := 1; i < len(names); i++ {
		if names[i] == names[i-1] {
			return nil, fmt.Errorf("repeated terminal %q", names[i])
		}
	}
	return names, nil
}

// Distance returns the Robinson-Foulds distance
// between two trees.
//
// Trees with three or less terminals
// have a distance of 0.
// The input trees are not modified.
func Distance(t1, t2 *tree.Tree) (float64, error) {
	n1, err := Terms(t1)
	if err != nil {
		return 0, fmt.Errorf("first tree: %v", err)
	}
	n2, err := Terms(t2)
	if err != nil {
		return 0, fmt.Errorf("second tree: %v", err)
	}
	if len(n1) != len(n2) {
		return 0, fmt.Errorf("%w: got %d and %d terminals", ErrLeafMismatch, len(n1), len(n2))
	}
	for i, n := range n1 {
		if n2[i] != n {
			return 0, fmt.Errorf("%w: terminal %q", ErrLeafMismatch, n)
		}
	}
	if len(n1) <= 3 {
		return 0, nil
	}

	u1, err := unrooted(t1)
	if err != nil {
		return 0, fmt.Errorf("first tree: %v", err)
	}
	u2, err := unrooted(t2)
	if err != nil {
		return 0, fmt.Errorf("second tree: %v", err)
	}

	// CommonEdges returns the number of internal edges
	// of the receiver that are absent in the other tree
	only1, _, err := u1.CommonEdges(u2, false)
	if err != nil {
		return 0, err
	}
	only2, _, err := u2.CommonEdges(u1, false)
	if err != nil {
		return 0, err
	}
	return float64(only1+only2) / 2, nil
}

// unrooted returns an unrooted copy of a tree
// with updated edge bitsets.
func unrooted(t *tree.Tree) (*tree.Tree, error) {
	u := t.Clone()
	u.UnRoot()
	if err := u.ReinitIndexes(); err != nil {
		return nil, err
	}
	return u, nil
}
