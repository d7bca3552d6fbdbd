// Package datasets generates the synthetic designs used by the demos
// and benchmarks: Toeplitz-correlated features with a sparse group
// structure in the true coefficients.
package datasets

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gapsafe/core/parallel"
	gserrors "github.com/YuminosukeSato/gapsafe/pkg/errors"
	"github.com/YuminosukeSato/gapsafe/sgl"
)

// parallelRowThreshold is the sample count above which rows are drawn on
// multiple goroutines.
const parallelRowThreshold = 512

// noiseScale is the standard deviation of the additive noise on
// regression targets.
const noiseScale = 0.01

// Config describes a synthetic dataset. Features are drawn from a
// stationary Gaussian with covariance rho^|i-j|; roughly 10% of the
// groups carry signal, and within each such group roughly 10% of the
// features.
type Config struct {
	NSamples   int
	GroupSizes []int

	// Rho is the correlation decay between adjacent features,
	// |Rho| < 1.
	Rho float64

	Seed int64
}

// Dataset bundles a generated design with its target, the coefficients
// that produced it and the group layout.
type Dataset struct {
	X        *mat.Dense
	Y        []float64
	TrueBeta []float64
	Layout   sgl.GroupLayout
}

// MakeCorrelated generates a regression dataset: y = X*beta plus small
// Gaussian noise. Identical configs produce identical datasets.
func MakeCorrelated(cfg Config) (*Dataset, error) {
	ds, xb, rows, err := makeDesign(cfg)
	if err != nil {
		return nil, err
	}
	for i := range ds.Y {
		ds.Y[i] = xb[i] + noiseScale*rows[i].NormFloat64()
	}
	return ds, nil
}

// MakeClassification generates a binary dataset by sampling each label
// from the logistic model at X*beta. Identical configs produce identical
// datasets.
func MakeClassification(cfg Config) (*Dataset, error) {
	ds, xb, rows, err := makeDesign(cfg)
	if err != nil {
		return nil, err
	}
	for i := range ds.Y {
		if 1/(1+math.Exp(-xb[i])) > rows[i].Float64() {
			ds.Y[i] = 1
		}
	}
	return ds, nil
}

// makeDesign draws the design matrix and true coefficients, returning
// the per-row RNGs so the callers can draw their target terms from the
// same deterministic streams.
func makeDesign(cfg Config) (*Dataset, []float64, []*rand.Rand, error) {
	if cfg.NSamples < 1 {
		return nil, nil, nil, gserrors.NewValidationError("NSamples", "must be at least 1", cfg.NSamples)
	}
	if math.Abs(cfg.Rho) >= 1 {
		return nil, nil, nil, gserrors.NewValidationError("Rho", "must satisfy |rho| < 1", cfg.Rho)
	}
	layout, err := sgl.NewContiguousGroups(cfg.GroupSizes)
	if err != nil {
		return nil, nil, nil, err
	}

	n := cfg.NSamples
	p := layout.TotalFeatures()
	beta := drawTrueBeta(rand.New(rand.NewSource(cfg.Seed)), layout)

	X := mat.NewDense(n, p, nil)
	xb := make([]float64, n)
	rows := make([]*rand.Rand, n)

	// Each row has its own stream keyed by the row index, so the output
	// does not depend on how the rows are split across goroutines.
	decay := math.Sqrt(1 - cfg.Rho*cfg.Rho)
	parallel.ParallelizeWithThreshold(n, parallelRowThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			rng := rand.New(rand.NewSource(cfg.Seed + int64(i) + 1))
			rows[i] = rng

			z := rng.NormFloat64()
			X.Set(i, 0, z)
			dot := z * beta[0]
			for j := 1; j < p; j++ {
				// Stationary AR(1): the unique Gaussian with covariance
				// rho^|i-j|.
				z = cfg.Rho*z + decay*rng.NormFloat64()
				X.Set(i, j, z)
				dot += z * beta[j]
			}
			xb[i] = dot
		}
	})

	ds := &Dataset{
		X:        X,
		Y:        make([]float64, n),
		TrueBeta: beta,
		Layout:   layout,
	}
	return ds, xb, rows, nil
}

// drawTrueBeta selects about 10% of the groups, then about 10% of the
// features inside each, with magnitudes in [0.5, 10].
func drawTrueBeta(rng *rand.Rand, layout sgl.GroupLayout) []float64 {
	nGroups := layout.NGroups()
	beta := make([]float64, layout.TotalFeatures())

	nSelected := int(math.Ceil(float64(nGroups) * 0.1))
	for k := 0; k < nSelected; k++ {
		g := rng.Intn(nGroups)
		begin := layout.Starts[g]
		size := layout.Sizes[g]

		nFeatures := int(math.Ceil(float64(size) * 0.1))
		for f := 0; f < nFeatures; f++ {
			j := begin + rng.Intn(size)
			sign := 1.0
			if rng.Float64() < 0.5 {
				sign = -1
			}
			beta[j] = sign * (9.5*rng.Float64() + 0.5)
		}
	}
	return beta
}
