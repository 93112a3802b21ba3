// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project_test

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/js-arias/toponull/project"
	"github.com/js-arias/toponull/randtree"
)

type setPath struct {
	set  project.Dataset
	path string
}

func TestProject(t *testing.T) {
	p := project.New()

	sets := []setPath{
		{project.Reference, "host.newick"},
		{project.Observed, "microbe.newick"},
		{project.Trees, "random-trees"},
		{project.Null, "null-scores.tab"},
		{project.Score, "observed-score.tab"},
	}

	for _, s := range sets {
		p.Add(s.set, s.path)
	}
	testProject(t, p, sets)

	name := filepath.Join(t.TempDir(), "project.tab")
	p.SetName(name)
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := project.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testProject(t, np, sets)

	if prev := np.Add(project.Score, ""); prev != "observed-score.tab" {
		t.Errorf("remove: got previous path %q, want %q", prev, "observed-score.tab")
	}
	if path := np.Path(project.Score); path != "" {
		t.Errorf("remove: got path %q, want empty", path)
	}
}

func TestTreeFiles(t *testing.T) {
	dir := t.TempDir()
	var want []string
	for i := 0; i < 12; i++ {
		n := fmt.Sprintf("tree_5_%d.newick", i)
		want = append(want, n)
		if err := os.WriteFile(filepath.Join(dir, n), []byte("(a,(b,(c,(d,e))));\n"), 0o644); err != nil {
			t.Fatalf("unable to write file: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}

	p := project.New()
	p.Add(project.Trees, dir)

	files, err := p.TreeFiles()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, f := range files {
		got = append(got, filepath.Base(f))
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got files %v, want %v", got, want)
	}

	p.Add(project.Trees, t.TempDir())
	if _, err := p.TreeFiles(); err == nil {
		t.Errorf("empty directory: expecting error")
	}
}

func TestTreeFilesMixedRuns(t *testing.T) {
	tests := map[string][]string{
		"missing index":       {"tree_4_0.newick", "tree_4_1.newick", "tree_4_3.newick"},
		"different terminals": {"tree_4_0.newick", "tree_4_1.newick", "tree_5_2.newick"},
	}

	for name, files := range tests {
		dir := t.TempDir()
		for _, n := range files {
			if err := os.WriteFile(filepath.Join(dir, n), []byte("((a,b),(c,d));\n"), 0o644); err != nil {
				t.Fatalf("%s: unable to write file: %v", name, err)
			}
		}

		p := project.New()
		p.Add(project.Trees, dir)
		if _, err := p.TreeFiles(); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestTreeFilesTwoRuns(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "random-trees")
	leaves := []string{"A", "B", "C", "D"}

	if err := randtree.PrepareDir(dir, false); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := randtree.Generate(context.Background(), 5, leaves, randtree.Options{Dir: dir, Seed: 1}); err != nil {
		t.Fatalf("first run: %v", err)
	}

	// a second run without overwrite
	// must not reuse the directory
	if err := randtree.PrepareDir(dir, false); !errors.Is(err, fs.ErrExist) {
		t.Fatalf("second run: got error %v, want %v", err, fs.ErrExist)
	}

	if err := randtree.PrepareDir(dir, true); err != nil {
		t.Fatalf("second run: %v", err)
	}
	gen, err := randtree.Generate(context.Background(), 3, leaves, randtree.Options{Dir: dir, Seed: 2})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	p := project.New()
	p.Add(project.Trees, dir)
	files, err := p.TreeFiles()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(files, gen) {
		t.Errorf("got files %v, want %v", files, gen)
	}
}

func TestReadUnknownDataset(t *testing.T) {
	name := filepath.Join(t.TempDir(), "project.tab")
	data := "dataset\tpath\nreference\thost.newick\nlandscape\tgeo.tab\n"
	if err := os.WriteFile(name, []byte(data), 0o644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}

	if _, err := project.Read(name); err == nil {
		t.Errorf("unknown dataset: expecting error")
	}
}

func TestDatasets(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "host.newick")
	if err := os.WriteFile(ref, []byte("((A,B),(C,D));\n"), 0o644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}
	null := filepath.Join(dir, "null.tab")
	if err := os.WriteFile(null, []byte("# null\ntree\tR-F\ntree_4_0\t1\ntree_4_1\t0\n"), 0o644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}
	score := filepath.Join(dir, "score.tab")
	if err := os.WriteFile(score, []byte("tree\tR-F\nmicrobe\t0\n"), 0o644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}

	p := project.New()
	p.SetName("test")

	if _, err := p.Reference(); err == nil {
		t.Errorf("undefined reference: expecting error")
	}

	p.Add(project.Reference, ref)
	p.Add(project.Null, null)
	p.Add(project.Score, score)

	rt, err := p.Reference()
	if err != nil {
		t.Fatalf("reference: %v", err)
	}
	var terms []string
	for _, n := range rt.Nodes() {
		if n.Tip() {
			terms = append(terms, n.Name())
		}
	}
	slices.Sort(terms)
	if want := []string{"A", "B", "C", "D"}; !reflect.DeepEqual(terms, want) {
		t.Errorf("reference: got terminals %v, want %v", terms, want)
	}

	tab, err := p.NullScores("R-F")
	if err != nil {
		t.Fatalf("null: %v", err)
	}
	if want := []float64{1, 0}; !reflect.DeepEqual(tab.Values(), want) {
		t.Errorf("null: got %v, want %v", tab.Values(), want)
	}

	v, err := p.ObservedScore("R-F")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if v != 0 {
		t.Errorf("score: got %.1f, want %.1f", v, 0.0)
	}
}

func testProject(t testing.TB, p *project.Project, sets []setPath) {
	t.Helper()

	for _, s := range sets {
		if path := p.Path(s.set); path != s.path {
			t.Errorf("set %s: got path %q, want %q", s.set, path, s.path)
		}
	}
	datasets := make([]project.Dataset, 0, len(sets))
	for _, v := range sets {
		datasets = append(datasets, v.set)
	}
	slices.Sort(datasets)

	if ls := p.Sets(); !reflect.DeepEqual(ls, datasets) {
		t.Errorf("sets: got %v, want %v", ls, datasets)
	}
}
