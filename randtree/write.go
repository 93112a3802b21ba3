// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package randtree

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Options are the options used to generate
// a set of random trees.
type Options struct {
	// Dir is the directory in which the trees will be written.
	Dir string

	// Seed is the seed of the random numbers.
	// The tree with index i uses a PCG source
	// with seeds (Seed, i).
	Seed uint64

	// CPU is the number of trees generated in parallel.
	// The default (zero) uses all available CPU.
	CPU int

	// Unit sets the length of each branch to 1.
	Unit bool
}

// A WriteError is returned when a tree file
// can not be written.
type WriteError struct {
	Name      string // the file that failed
	Done      int    // trees written when generation stopped
	Requested int    // trees requested
	Err       error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("on file %q: %d of %d trees written: %v", e.Name, e.Done, e.Requested, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// FileName returns the name of the file
// of the tree with the given index
// in a set of random trees with the given number of terminals.
func FileName(leaves, index int) string {
	return fmt.Sprintf("tree_%d_%d.newick", leaves, index)
}

// PrepareDir makes sure that a directory exists.
// If overwrite is true,
// and the directory already exists,
// it will be removed with all its contents,
// and created again.
//
// If overwrite is false,
// and the directory already has tree files
// from a previous run,
// it returns an error that wraps fs.ErrExist,
// so trees from different runs are never mixed.
func PrepareDir(dir string, overwrite bool) error {
	st, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("path %q is not a directory", dir)
	}
	if !overwrite {
		prev, err := filepath.Glob(filepath.Join(dir, "tree_*.newick"))
		if err != nil {
			return err
		}
		if len(prev) > 0 {
			return fmt.Errorf("%w: directory %q has %d tree files", fs.ErrExist, dir, len(prev))
		}
		return nil
	}

	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// Generate writes count random trees
// with the given terminals
// in the directory defined in the options,
// which must already exist
// (see PrepareDir).
// It returns the paths of the tree files,
// ordered by the tree index.
//
// Generation stops at the first error.
// Errors while writing a file
// are returned as a *WriteError.
func Generate(ctx context.Context, count int, leaves []string, opts Options) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: got %d trees, want at least 1", ErrInvalidInput, count)
	}
	if err := CheckLeaves(leaves); err != nil {
		return nil, err
	}

	cpu := opts.CPU
	if cpu <= 0 {
		cpu = runtime.NumCPU()
	}

	paths := make([]string, count)
	for i := range paths {
		paths[i] = filepath.Join(opts.Dir, FileName(len(leaves), i))
	}

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cpu)
	for i := range count {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rnd := rand.New(rand.NewPCG(opts.Seed, uint64(i)))
			t, err := Random(rnd, leaves, opts.Unit)
			if err != nil {
				return err
			}
			if err := writeFile(paths[i], Newick(t)); err != nil {
				return &WriteError{
					Name:      paths[i],
					Requested: count,
					Err:       err,
				}
			}
			done.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// all workers are finished,
		// so the count matches the files in the directory
		var we *WriteError
		if errors.As(err, &we) {
			we.Done = int(done.Load())
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

// writeFile writes the data into a temporary file
// that is renamed when all data is written.
func writeFile(name, data string) (err error) {
	f, err := os.CreateTemp(filepath.Dir(name), ".tmp-"+filepath.Base(name)+"-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(f.Name())
		}
	}()

	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return err
	}
	if _, err := f.WriteString(data + "\n"); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), name)
}
