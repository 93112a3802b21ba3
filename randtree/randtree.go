// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package randtree implements the generation
// of random bifurcating trees
// over a fixed set of terminals.
//
// The trees are used as a null hypothesis
// of stochastic relationships between the terminals,
// for example,
// to evaluate the Robinson-Foulds distance
// between a host and a microbe tree.
// All branches have the same length
// and all splits are bifurcations.
package randtree

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/evolbioinfo/gotree/tree"
)

// ErrInvalidInput is returned when the arguments
// of a tree generation are invalid.
var ErrInvalidInput = errors.New("invalid input")

// reserved are the characters with a meaning
// in the newick format.
const reserved = "()[],:;'"

// ParseLeaves returns the terminal names
// from a comma separated list,
// for example, "a,b,c".
func ParseLeaves(s string) ([]string, error) {
	var leaves []string
	for _, l := range strings.Split(s, ",") {
		l = strings.TrimSpace(l)
		if l == "" {
			return nil, fmt.Errorf("%w: empty terminal name in %q", ErrInvalidInput, s)
		}
		leaves = append(leaves, l)
	}
	if err := CheckLeaves(leaves); err != nil {
		return nil, err
	}
	return leaves, nil
}

// CheckLeaves returns an error if a list of terminals
// can not be used to build a bifurcating tree:
// there are less than two terminals,
// a name is repeated,
// or a name is not a valid bare newick label.
func CheckLeaves(leaves []string) error {
	if len(leaves) < 2 {
		return fmt.Errorf("%w: got %d terminals, want at least 2", ErrInvalidInput, len(leaves))
	}

	names := make(map[string]bool, len(leaves))
	for _, l := range leaves {
		if l == "" {
			return fmt.Errorf("%w: empty terminal name", ErrInvalidInput)
		}
		if strings.ContainsAny(l, reserved) || strings.ContainsFunc(l, unicode.IsSpace) {
			return fmt.Errorf("%w: invalid terminal name %q", ErrInvalidInput, l)
		}
		if names[l] {
			return fmt.Errorf("%w: repeated terminal %q", ErrInvalidInput, l)
		}
		names[l] = true
	}
	return nil
}

// Shuffle returns a random permutation
// of the terminals.
// The input slice is not modified.
func Shuffle(rnd *rand.Rand, leaves []string) []string {
	p := make([]string, len(leaves))
	copy(p, leaves)
	rnd.Shuffle(len(p), func(i, j int) {
		p[i], p[j] = p[j], p[i]
	})
	return p
}

// Random returns a random bifurcating tree
// with the given terminals.
//
// The terminals are shuffled,
// and then the shape of the tree is grown
// starting from a single node.
// At each step an open node is taken
// at random from either end of a queue,
// and split into two new open nodes
// that are pushed to the front of the queue.
// When there is an open node for each terminal,
// the open nodes are named using the shuffled terminals.
//
// This procedure does not produce a uniform distribution
// over all labeled binary topologies.
//
// If unit is true,
// the length of each branch will be set to 1.
func Random(rnd *rand.Rand, leaves []string, unit bool) (*tree.Tree, error) {
	if err := CheckLeaves(leaves); err != nil {
		return nil, err
	}
	names := Shuffle(rnd, leaves)

	t := tree.NewTree()
	root := t.NewNode()
	t.SetRoot(root)

	open := []*tree.Node{root}
	for len(open) < len(names) {
		var p *tree.Node
		if rnd.IntN(2) == 1 {
			p = open[len(open)-1]
			open = open[:len(open)-1]
		} else {
			p = open[0]
			open = open[1:]
		}

		c1 := t.NewNode()
		c2 := t.NewNode()
		connect(t, p, c1, unit)
		connect(t, p, c2, unit)
		open = append([]*tree.Node{c2, c1}, open...)
	}

	// names are assigned from the end of the permutation
	for i, n := range open {
		n.SetName(names[len(names)-1-i])
	}

	return t, nil
}

func connect(t *tree.Tree, parent, child *tree.Node, unit bool) {
	e := t.ConnectNodes(parent, child)
	if unit {
		e.SetLength(1)
	}
}

// Newick returns a tree in newick format.
func Newick(t *tree.Tree) string {
	s := t.Newick()
	if !strings.HasSuffix(s, ";") {
		s += ";"
	}
	return s
}
