// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package scores implements tables of tree distance scores.
//
// A score table stores the value of a distance metric
// between a set of trees
// and a reference tree.
package scores

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Table is a collection of scores
// for a given metric.
type Table struct {
	metric string
	names  []string
	vals   []float64
}

// New creates a new empty table
// for the indicated metric.
func New(metric string) *Table {
	return &Table{
		metric: metric,
	}
}

// Add adds a score of a tree.
func (t *Table) Add(tree string, v float64) {
	t.names = append(t.names, tree)
	t.vals = append(t.vals, v)
}

// Len returns the number of scores in the table.
func (t *Table) Len() int {
	return len(t.vals)
}

// Metric returns the name of the metric of the table.
func (t *Table) Metric() string {
	return t.metric
}

// Names returns the tree names,
// in the order in which they were added.
func (t *Table) Names() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// Values returns the scores,
// in the order in which they were added.
func (t *Table) Values() []float64 {
	vals := make([]float64, len(t.vals))
	copy(vals, t.vals)
	return vals
}

// Score returns the score of a tree.
func (t *Table) Score(tree string) (float64, bool) {
	for i, n := range t.names {
		if n == tree {
			return t.vals[i], true
		}
	}
	return 0, false
}

// ReadTSV reads the scores of a metric
// from a TSV file.
//
// The TSV file must contain a column
// with the name of the metric
// (the match is case insensitive),
// other columns will be ignored.
// If the file has a "tree" column,
// it will be used as the tree name;
// otherwise the row number will be used.
// Lines starting with '#' are ignored.
//
// Here is an example file:
//
//	# Robinson-Foulds distances to "host.newick"
//	tree	R-F
//	tree_12_0	7
//	tree_12_1	9
//	tree_12_2	8
func ReadTSV(r io.Reader, metric string) (*Table, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	m := strings.ToLower(metric)
	if _, ok := fields[m]; !ok {
		return nil, fmt.Errorf("expecting field %q", metric)
	}
	nameCol, hasName := fields["tree"]

	t := New(metric)
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		name := strconv.Itoa(t.Len())
		if hasName {
			name = strings.Join(strings.Fields(row[nameCol]), " ")
			if name == "" {
				return nil, fmt.Errorf("on row %d: field %q: empty tree name", ln, "tree")
			}
		}

		s := strings.TrimSpace(row[fields[m]])
		if s == "" {
			return nil, fmt.Errorf("on row %d: field %q: undefined value", ln, metric)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, metric, err)
		}
		if math.IsNaN(v) {
			return nil, fmt.Errorf("on row %d: field %q: undefined value", ln, metric)
		}
		t.Add(name, v)
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("while reading data: %v", io.EOF)
	}
	return t, nil
}

// TSV writes a table as a TSV file.
func (t *Table) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write([]string{"tree", t.metric}); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for i, n := range t.names {
		row := []string{
			n,
			strconv.FormatFloat(t.vals[i], 'f', -1, 64),
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
