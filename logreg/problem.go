package logreg

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gapsafe/core/parallel"
	gserrors "github.com/YuminosukeSato/gapsafe/pkg/errors"
)

// parallelExtractThreshold is the feature count above which columns are
// extracted on multiple goroutines.
const parallelExtractThreshold = 256

// Problem is a read-only logistic lasso instance shared by the path
// driver and the kernel. Feature columns are extracted into contiguous
// slices once so the coordinate loops and gradient refreshes touch
// sequential memory, and the column norms the screening test needs are
// precomputed.
type Problem struct {
	NSamples  int
	NFeatures int

	// Y holds the binary targets, values in {0, 1}.
	Y []float64

	// Cols holds the feature columns, Cols[j][i] = X[i][j].
	Cols [][]float64

	// SqColNorms[j] = ||X_j||_2^2, ColNorms[j] = ||X_j||_2.
	SqColNorms []float64
	ColNorms   []float64

	// NPos counts targets equal to 1.
	NPos int
}

// NewProblem validates the dataset and precomputes the per-column
// quantities every solve reuses.
func NewProblem(X mat.Matrix, y []float64) (*Problem, error) {
	if X == nil {
		return nil, gserrors.NewValueError("NewProblem", "X must not be nil")
	}
	n, p := X.Dims()
	if n == 0 || p == 0 {
		return nil, gserrors.NewModelError("NewProblem", "empty data", gserrors.ErrEmptyData)
	}
	if len(y) != n {
		return nil, gserrors.NewDimensionError("NewProblem", n, len(y), 0)
	}

	nPos := 0
	for _, v := range y {
		switch v {
		case 1:
			nPos++
		case 0:
		default:
			return nil, gserrors.NewValidationError("y", "targets must be 0 or 1", v)
		}
	}

	prob := &Problem{
		NSamples:   n,
		NFeatures:  p,
		Y:          append([]float64(nil), y...),
		Cols:       make([][]float64, p),
		SqColNorms: make([]float64, p),
		ColNorms:   make([]float64, p),
		NPos:       nPos,
	}

	parallel.ParallelizeWithThreshold(p, parallelExtractThreshold, func(start, end int) {
		for j := start; j < end; j++ {
			col := make([]float64, n)
			mat.Col(col, j, X)
			prob.Cols[j] = col
			sq := floats.Dot(col, col)
			prob.SqColNorms[j] = sq
			prob.ColNorms[j] = math.Sqrt(sq)
		}
	})

	return prob, nil
}

// NNeg counts targets equal to 0.
func (p *Problem) NNeg() int {
	return p.NSamples - p.NPos
}

// LambdaMax returns the smallest penalty for which the all-zero
// coefficient vector solves the L1-penalized logistic regression:
// the infinity norm of X^T (y - 0.5), the gradient magnitude at zero.
func LambdaMax(X mat.Matrix, y []float64) (float64, error) {
	prob, err := NewProblem(X, y)
	if err != nil {
		return 0, err
	}
	return prob.lambdaMax(), nil
}

func (p *Problem) lambdaMax() float64 {
	residual := make([]float64, p.NSamples)
	for i, v := range p.Y {
		residual[i] = v - 0.5
	}
	maxAbs := 0.0
	for j := 0; j < p.NFeatures; j++ {
		if a := math.Abs(floats.Dot(p.Cols[j], residual)); a > maxAbs {
			maxAbs = a
		}
	}
	return maxAbs
}
