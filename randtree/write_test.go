// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package randtree_test

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/evolbioinfo/gotree/io/newick"
	"github.com/js-arias/toponull/randtree"
)

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	leaves := []string{"A", "B", "C", "D"}

	paths, err := randtree.Generate(context.Background(), 3, leaves, randtree.Options{
		Dir:  dir,
		Seed: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("got %d files, want %d", len(paths), 3)
	}

	for i, p := range paths {
		want := filepath.Join(dir, fmt.Sprintf("tree_4_%d.newick", i))
		if p != want {
			t.Errorf("tree %d: got file %q, want %q", i, p, want)
		}

		f, err := os.Open(p)
		if err != nil {
			t.Fatalf("tree %d: %v", i, err)
		}
		nt, err := newick.NewParser(f).Parse()
		f.Close()
		if err != nil {
			t.Fatalf("tree %d: unable to parse: %v", i, err)
		}
		testTree(t, fmt.Sprintf("tree %d", i), nt, leaves)
	}

	// no temporary files are left
	ls, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("unable to read directory: %v", err)
	}
	if len(ls) != 3 {
		t.Errorf("got %d files in directory, want %d", len(ls), 3)
	}
}

func TestGenerateUnique(t *testing.T) {
	dir := t.TempDir()
	leaves := []string{"a", "b", "c", "d", "e", "f"}

	const count = 200
	paths, err := randtree.Generate(context.Background(), count, leaves, randtree.Options{
		Dir:  dir,
		Seed: 5,
		CPU:  4,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := make(map[string]bool, count)
	for _, p := range paths {
		if names[p] {
			t.Errorf("file %q: repeated", p)
		}
		names[p] = true
		if _, err := os.Stat(p); err != nil {
			t.Errorf("file %q: %v", p, err)
		}
	}
	if len(names) != count {
		t.Errorf("got %d files, want %d", len(names), count)
	}
}

func TestGenerateSeed(t *testing.T) {
	leaves := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	opts := randtree.Options{Seed: 99, Unit: true}

	opts.Dir = t.TempDir()
	opts.CPU = 1
	first, err := randtree.Generate(context.Background(), 20, leaves, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opts.Dir = t.TempDir()
	opts.CPU = 8
	second, err := randtree.Generate(context.Background(), 20, leaves, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first {
		a, err := os.ReadFile(first[i])
		if err != nil {
			t.Fatalf("tree %d: %v", i, err)
		}
		b, err := os.ReadFile(second[i])
		if err != nil {
			t.Fatalf("tree %d: %v", i, err)
		}
		if string(a) != string(b) {
			t.Errorf("tree %d: got %q, want %q", i, b, a)
		}
	}
}

func TestGenerateInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]struct {
		count  int
		leaves []string
	}{
		"zero trees":  {0, []string{"a", "b", "c"}},
		"negative":    {-1, []string{"a", "b", "c"}},
		"no leaves":   {5, []string{}},
		"single leaf": {5, []string{"a"}},
	}

	for name, test := range tests {
		_, err := randtree.Generate(context.Background(), test.count, test.leaves, randtree.Options{Dir: dir})
		if !errors.Is(err, randtree.ErrInvalidInput) {
			t.Errorf("%s: got error %v, want %v", name, err, randtree.ErrInvalidInput)
		}
	}

	ls, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("unable to read directory: %v", err)
	}
	if len(ls) != 0 {
		t.Errorf("got %d files, want none", len(ls))
	}
}

func TestGenerateWriteError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	_, err := randtree.Generate(context.Background(), 5, []string{"a", "b", "c"}, randtree.Options{
		Dir: dir,
		CPU: 1,
	})
	var we *randtree.WriteError
	if !errors.As(err, &we) {
		t.Fatalf("got error %v, want a write error", err)
	}
	if we.Requested != 5 {
		t.Errorf("requested: got %d, want %d", we.Requested, 5)
	}
	if we.Done != 0 {
		t.Errorf("done: got %d, want %d", we.Done, 0)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got error %v, want %v", err, fs.ErrNotExist)
	}
}

func TestGenerateWriteErrorDone(t *testing.T) {
	leaves := []string{"A", "B", "C", "D"}

	for _, cpu := range []int{1, 4} {
		dir := t.TempDir()

		// a directory with the name of the third tree
		// can not be replaced by a file
		block := filepath.Join(dir, randtree.FileName(len(leaves), 2), "x")
		if err := os.MkdirAll(block, 0o755); err != nil {
			t.Fatalf("cpu %d: unable to create directory: %v", cpu, err)
		}

		_, err := randtree.Generate(context.Background(), 8, leaves, randtree.Options{
			Dir:  dir,
			Seed: 7,
			CPU:  cpu,
		})
		var we *randtree.WriteError
		if !errors.As(err, &we) {
			t.Fatalf("cpu %d: got error %v, want a write error", cpu, err)
		}
		if we.Name != filepath.Join(dir, randtree.FileName(len(leaves), 2)) {
			t.Errorf("cpu %d: got file %q", cpu, we.Name)
		}

		written, err := filepath.Glob(filepath.Join(dir, "tree_*.newick"))
		if err != nil {
			t.Fatalf("cpu %d: %v", cpu, err)
		}
		var files int
		for _, w := range written {
			if st, err := os.Stat(w); err == nil && !st.IsDir() {
				files++
			}
		}
		if we.Done != files {
			t.Errorf("cpu %d: got %d done, want %d (files in directory)", cpu, we.Done, files)
		}
		if cpu == 1 && we.Done != 2 {
			t.Errorf("cpu %d: got %d done, want %d", cpu, we.Done, 2)
		}
	}
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := randtree.Generate(ctx, 5, []string{"a", "b", "c"}, randtree.Options{Dir: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got error %v, want %v", err, context.Canceled)
	}
}

func TestPrepareDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "trees")

	if err := randtree.PrepareDir(dir, false); err != nil {
		t.Fatalf("unable to create directory: %v", err)
	}
	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("seed 1\n"), 0o644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}

	// other files do not block the directory
	if err := randtree.PrepareDir(dir, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	old := filepath.Join(dir, "tree_3_0.newick")
	if err := os.WriteFile(old, []byte("(a,(b,c));\n"), 0o644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}

	// without overwrite, previous trees are an error
	// and the content is kept
	if err := randtree.PrepareDir(dir, false); !errors.Is(err, fs.ErrExist) {
		t.Errorf("without overwrite: got error %v, want %v", err, fs.ErrExist)
	}
	if _, err := os.Stat(old); err != nil {
		t.Errorf("without overwrite: %v", err)
	}

	if err := randtree.PrepareDir(dir, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(old); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("with overwrite: got error %v, want %v", err, fs.ErrNotExist)
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		t.Errorf("with overwrite: directory not created: %v", err)
	}

	// a regular file is not a valid output
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}
	if err := randtree.PrepareDir(file, true); err == nil {
		t.Errorf("regular file: expecting error")
	}
	if _, err := os.Stat(file); err != nil {
		t.Errorf("regular file: removed: %v", err)
	}
}
