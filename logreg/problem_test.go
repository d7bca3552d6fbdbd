package logreg

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	gserrors "github.com/YuminosukeSato/gapsafe/pkg/errors"
)

// randomBinaryDataset draws a Gaussian design and labels from a sparse
// ground-truth logistic model, deterministic per seed.
func randomBinaryDataset(t *testing.T, seed int64, n, p int) (*mat.Dense, []float64) {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	X := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			X.Set(i, j, rng.NormFloat64())
		}
	}

	truth := make([]float64, p)
	for j := 0; j < p && j < 3; j++ {
		truth[j] = 1.5
		if j%2 == 1 {
			truth[j] = -1.5
		}
	}

	y := make([]float64, n)
	for i := 0; i < n; i++ {
		z := 0.0
		for j := 0; j < p; j++ {
			z += X.At(i, j) * truth[j]
		}
		if 1/(1+math.Exp(-z)) > rng.Float64() {
			y[i] = 1
		}
	}

	// The solvers need both classes; force them in the (very unlikely)
	// degenerate draw.
	hasZero, hasOne := false, false
	for _, v := range y {
		if v == 0 {
			hasZero = true
		} else {
			hasOne = true
		}
	}
	if !hasZero {
		y[0] = 0
	}
	if !hasOne {
		y[n-1] = 1
	}

	return X, y
}

// emptyMatrix stands in for a 0 x 0 input; gonum itself refuses to
// construct zero-sized Dense matrices.
type emptyMatrix struct{}

func (emptyMatrix) Dims() (int, int)    { return 0, 0 }
func (emptyMatrix) At(i, j int) float64 { return 0 }
func (m emptyMatrix) T() mat.Matrix     { return m }

func TestNewProblemPrecomputesColumns(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 2,
		0, -1,
		2, 2,
	})
	y := []float64{1, 0, 1}

	prob, err := NewProblem(X, y)
	require.NoError(t, err)

	assert.Equal(t, 3, prob.NSamples)
	assert.Equal(t, 2, prob.NFeatures)
	assert.Equal(t, 2, prob.NPos)
	assert.Equal(t, 1, prob.NNeg())

	assert.Equal(t, []float64{1, 0, 2}, prob.Cols[0])
	assert.Equal(t, []float64{2, -1, 2}, prob.Cols[1])
	assert.InDelta(t, 5, prob.SqColNorms[0], 1e-12)
	assert.InDelta(t, 9, prob.SqColNorms[1], 1e-12)
	assert.InDelta(t, math.Sqrt(5), prob.ColNorms[0], 1e-12)
	assert.InDelta(t, 3, prob.ColNorms[1], 1e-12)

	// The problem owns its targets.
	y[0] = 0
	assert.Equal(t, 1.0, prob.Y[0])
}

func TestNewProblemValidation(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{1, 0, 0, 1})

	tests := []struct {
		name string
		fn   func() error
	}{
		{
			name: "nil matrix",
			fn: func() error {
				_, err := NewProblem(nil, []float64{0, 1})
				return err
			},
		},
		{
			name: "empty data",
			fn: func() error {
				_, err := NewProblem(emptyMatrix{}, nil)
				return err
			},
		},
		{
			name: "target length mismatch",
			fn: func() error {
				_, err := NewProblem(X, []float64{0, 1, 1})
				return err
			},
		},
		{
			name: "target outside the label alphabet",
			fn: func() error {
				_, err := NewProblem(X, []float64{0, 2})
				return err
			},
		},
		{
			name: "fractional target",
			fn: func() error {
				_, err := NewProblem(X, []float64{0, 0.5})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.fn())
		})
	}
}

func TestNewProblemRejectsBadLabelsTyped(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{1, -1})
	_, err := NewProblem(X, []float64{0, 3})
	require.Error(t, err)

	var ve *gserrors.ValidationError
	assert.True(t, gserrors.As(err, &ve))
}

func TestLambdaMaxMatchesGradientAtZero(t *testing.T) {
	X, y := randomBinaryDataset(t, 11, 30, 5)

	got, err := LambdaMax(X, y)
	require.NoError(t, err)

	n := len(y)
	resid := mat.NewVecDense(n, nil)
	for i, v := range y {
		resid.SetVec(i, v-0.5)
	}
	var g mat.VecDense
	g.MulVec(X.T(), resid)

	want := 0.0
	for j := 0; j < g.Len(); j++ {
		if a := math.Abs(g.AtVec(j)); a > want {
			want = a
		}
	}

	assert.InDelta(t, want, got, 1e-12)
	assert.Greater(t, got, 0.0)
}
