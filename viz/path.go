// Package viz renders regularization-path figures.
package viz

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	gserrors "github.com/YuminosukeSato/gapsafe/pkg/errors"
)

// SavePathPlot draws one coefficient trajectory per feature against
// log10(lambda) and writes the figure to file. The image format follows
// the file extension (.png, .pdf, .svg, ...).
//
// coefs holds one coefficient vector per penalty, in the same order as
// lambdas, as produced by Path and LogisticLasso.Coefs.
func SavePathPlot(lambdas []float64, coefs [][]float64, file string) error {
	if len(lambdas) == 0 {
		return gserrors.NewValueError("SavePathPlot", "empty penalty grid")
	}
	if len(coefs) != len(lambdas) {
		return gserrors.NewDimensionError("SavePathPlot", len(lambdas), len(coefs), 0)
	}
	for _, l := range lambdas {
		if !(l > 0) || math.IsInf(l, 1) {
			return gserrors.NewValidationError("lambdas", "penalties must be positive and finite", l)
		}
	}
	p := len(coefs[0])
	for _, row := range coefs {
		if len(row) != p {
			return gserrors.NewDimensionError("SavePathPlot", p, len(row), 1)
		}
	}

	plt := plot.New()
	plt.Title.Text = "Regularization path"
	plt.X.Label.Text = "log10(lambda)"
	plt.Y.Label.Text = "coefficient"
	plt.Add(plotter.NewGrid())

	for j := 0; j < p; j++ {
		pts := make(plotter.XYs, len(lambdas))
		for t, l := range lambdas {
			pts[t].X = math.Log10(l)
			pts[t].Y = coefs[t][j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return gserrors.Wrap(err, "SavePathPlot")
		}
		line.Color = plotutil.Color(j)
		plt.Add(line)
	}

	if err := plt.Save(8*vg.Inch, 5*vg.Inch, file); err != nil {
		return gserrors.Wrap(err, "SavePathPlot")
	}
	return nil
}
