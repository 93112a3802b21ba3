// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package rf

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/evolbioinfo/gotree/io/newick"
	"github.com/evolbioinfo/gotree/tree"
	"golang.org/x/sync/errgroup"
)

// DistanceFiles returns the Robinson-Foulds distance
// between a reference tree
// and the tree stored in each newick file,
// in the same order as the files.
//
// The files are read in parallel
// using up to cpu goroutines
// (if cpu is zero, all available CPU will be used).
// It stops at the first error,
// or when the context is canceled.
func DistanceFiles(ctx context.Context, ref *tree.Tree, files []string, cpu int) ([]float64, error) {
	if cpu <= 0 {
		cpu = runtime.NumCPU()
	}

	dist := make([]float64, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cpu)
	for i, fn := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			t, err := readNewick(fn)
			if err != nil {
				return err
			}
			d, err := Distance(ref, t)
			if err != nil {
				return fmt.Errorf("on file %q: %w", fn, err)
			}
			dist[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dist, nil
}

func readNewick(name string) (*tree.Tree, error) {
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
