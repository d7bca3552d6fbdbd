package sgl

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gapsafe/core/parallel"
	gserrors "github.com/YuminosukeSato/gapsafe/pkg/errors"
)

// parallelNormThreshold is the feature count above which column norms are
// computed on multiple goroutines.
const parallelNormThreshold = 256

// PrecomputeNorms computes the per-column L2 norms of X, the Frobenius
// norm of each group's column block, and the squared L2 norm of y. Solvers
// reuse these quantities across a whole penalty grid, so they are computed
// once up front.
func PrecomputeNorms(X mat.Matrix, y []float64, layout GroupLayout) (colNorms, groupNorms []float64, sqNormY float64, err error) {
	n, p := X.Dims()

	if n == 0 || p == 0 {
		return nil, nil, 0, gserrors.NewModelError("PrecomputeNorms", "empty data", gserrors.ErrEmptyData)
	}
	if len(y) != n {
		return nil, nil, 0, gserrors.NewDimensionError("PrecomputeNorms", n, len(y), 0)
	}
	if err := layout.Validate(p); err != nil {
		return nil, nil, 0, err
	}

	colNorms = make([]float64, p)
	parallel.ParallelizeWithThreshold(p, parallelNormThreshold, func(start, end int) {
		col := make([]float64, n)
		for j := start; j < end; j++ {
			mat.Col(col, j, X)
			colNorms[j] = floats.Norm(col, 2)
		}
	})

	groupNorms = make([]float64, layout.NGroups())
	for g := range layout.Sizes {
		sq := 0.0
		for jj := 0; jj < layout.Sizes[g]; jj++ {
			nrm := colNorms[layout.Starts[g]+jj]
			sq += nrm * nrm
		}
		groupNorms[g] = math.Sqrt(sq)
	}

	sqNormY = floats.Dot(y, y)
	return colNorms, groupNorms, sqNormY, nil
}
