// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package cmpcmd

import (
	"fmt"

	"github.com/js-arias/blind"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func makePlot(null []float64, obs float64) error {
	p := plot.New()
	p.X.Label.Text = metric
	p.Y.Label.Text = "trees"

	h, err := plotter.NewHist(plotter.Values(null), numBins)
	if err != nil {
		return fmt.Errorf("while building histogram: %v", err)
	}
	h.FillColor = blind.Sequential(blind.Iridescent, 0.35)
	h.LineStyle.Width = vg.Length(0)
	p.Add(h)

	_, _, _, yMax := h.DataRange()
	l, err := plotter.NewLine(plotter.XYs{
		{X: obs, Y: 0},
		{X: obs, Y: yMax},
	})
	if err != nil {
		return fmt.Errorf("while building observed line: %v", err)
	}
	l.LineStyle.Color = blind.Sequential(blind.Iridescent, 0.9)
	l.LineStyle.Width = vg.Points(2)
	p.Add(l)

	if err := p.Save(5*vg.Inch, 3*vg.Inch, plotFile); err != nil {
		return err
	}
	return nil
}
