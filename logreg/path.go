// Package logreg computes L1-penalized logistic regression
// regularization paths with gap-safe feature screening.
//
// The path driver sequences coordinate descent solves across a
// decreasing grid of penalties, warm-starting both the iterate and the
// active set between consecutive penalties. Screening follows Ndiaye,
// Fercoq, Gramfort and Salmon, "Gap Safe screening rules for sparsity
// enforcing penalties" (https://arxiv.org/abs/1611.05780): the duality
// gap yields a sphere that provably contains the dual optimum, and
// features whose correlation stays strictly inside the unit bound over
// that sphere are eliminated with certainty.
package logreg

import (
	"math"

	"gonum.org/v1/gonum/mat"

	gserrors "github.com/YuminosukeSato/gapsafe/pkg/errors"
	"github.com/YuminosukeSato/gapsafe/pkg/log"
)

// PathResult accumulates the outputs of a path solve, one entry per
// penalty. It is immutable once returned.
type PathResult struct {
	// Lambdas is a copy of the penalty grid that was solved.
	Lambdas []float64

	// Coefs holds one coefficient vector per penalty.
	Coefs [][]float64

	// Gaps holds the final duality gap reached at each penalty.
	Gaps []float64

	// NIters holds the coordinate passes spent at each penalty.
	NIters []int

	// NActive holds the features surviving screening at each penalty.
	NActive []int
}

type pathConfig struct {
	eps             float64
	maxIter         int
	screenFreq      int
	betaInit        []float64
	policy          Policy
	strongWarmStart bool
	gapWarmStart    bool
	kernel          Kernel
	logger          log.Logger
}

// PathOption is a functional option for Path.
type PathOption func(*pathConfig)

// WithEps sets the relative duality-gap accuracy (default 1e-4). The
// absolute stopping tolerance additionally scales with the class
// balance so imbalanced targets do not make the criterion vacuous.
func WithEps(eps float64) PathOption {
	return func(c *pathConfig) {
		c.eps = eps
	}
}

// WithMaxIter caps the coordinate passes spent per penalty
// (default 3000).
func WithMaxIter(maxIter int) PathOption {
	return func(c *pathConfig) {
		c.maxIter = maxIter
	}
}

// WithScreenFreq sets how many coordinate passes run between duality-gap
// evaluations (default 10).
func WithScreenFreq(f int) PathOption {
	return func(c *pathConfig) {
		c.screenFreq = f
	}
}

// WithBetaInit starts the path from the given coefficients instead of
// the all-zero vector. The slice is copied.
func WithBetaInit(beta []float64) PathOption {
	return func(c *pathConfig) {
		c.betaInit = append([]float64(nil), beta...)
	}
}

// WithScreening selects the safe-screening policy
// (default SequentialAndDynamicSafe).
func WithScreening(policy Policy) PathOption {
	return func(c *pathConfig) {
		c.policy = policy
	}
}

// WithStrongWarmStart enables the strong-rule active warm start: before
// each penalty after the first, features with |XTR_j| < 2*lambda_t -
// lambda_{t-1} are provisionally excluded and the iterate is refined on
// the survivors before the definitive solve.
func WithStrongWarmStart(enabled bool) PathOption {
	return func(c *pathConfig) {
		c.strongWarmStart = enabled
	}
}

// WithGapWarmStart enables the gap-based active warm start: the
// restricted refinement only runs when the previous penalty's screening
// left fewer than all features active, reusing that surviving set.
func WithGapWarmStart(enabled bool) PathOption {
	return func(c *pathConfig) {
		c.gapWarmStart = enabled
	}
}

// WithKernel injects a custom arithmetic kernel (default CDKernel).
func WithKernel(k Kernel) PathOption {
	return func(c *pathConfig) {
		c.kernel = k
	}
}

// WithLogger routes per-penalty progress and convergence warnings to the
// given logger (default: the package-level provider).
func WithLogger(l log.Logger) PathOption {
	return func(c *pathConfig) {
		c.logger = l
	}
}

// Path solves the L1-penalized logistic regression
//
//	argmin_beta  sum_i -y_i*<x_i, beta> + log(1 + exp(<x_i, beta>)) + lambda*||beta||_1
//
// at every penalty in lambdas, in the given order. The grid is the
// caller's contract: warm starting and the cross-penalty elimination
// bounds assume successive values are comparable, typically decreasing.
//
// Non-convergence at a penalty is reported through a ConvergenceWarning
// (pkg/errors.Warn and the configured logger) and recorded in the
// result's Gaps, never as an error. An empty grid yields an empty
// result.
func Path(X mat.Matrix, y []float64, lambdas []float64, opts ...PathOption) (*PathResult, error) {
	cfg := defaultPathConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	prob, err := NewProblem(X, y)
	if err != nil {
		return nil, err
	}
	return solvePath(prob, lambdas, cfg)
}

func defaultPathConfig() pathConfig {
	return pathConfig{
		eps:        1e-4,
		maxIter:    3000,
		screenFreq: 10,
		policy:     SequentialAndDynamicSafe,
	}
}

// solvePath runs the path loop on an already validated Problem. The
// estimator enters here directly so the column extraction is not redone
// between the automatic grid construction and the solve.
func solvePath(prob *Problem, lambdas []float64, cfg pathConfig) (*PathResult, error) {
	if cfg.kernel == nil {
		cfg.kernel = CDKernel{}
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLogger()
	}
	if cfg.eps <= 0 {
		return nil, gserrors.NewValidationError("eps", "must be positive", cfg.eps)
	}
	if cfg.maxIter < 0 {
		return nil, gserrors.NewValidationError("maxIter", "must be non-negative", cfg.maxIter)
	}
	if cfg.screenFreq < 1 {
		return nil, gserrors.NewValidationError("screenFreq", "must be at least 1", cfg.screenFreq)
	}

	nLambdas := len(lambdas)
	res := &PathResult{
		Lambdas: append([]float64(nil), lambdas...),
		Coefs:   make([][]float64, nLambdas),
		Gaps:    make([]float64, nLambdas),
		NIters:  make([]int, nLambdas),
		NActive: make([]int, nLambdas),
	}
	if nLambdas == 0 {
		return res, nil
	}
	for _, l := range lambdas {
		if !(l > 0) {
			return nil, gserrors.NewValidationError("lambdas", "penalties must be positive", l)
		}
	}

	tol := cfg.eps * math.Max(1, float64(min(prob.NPos, prob.NNeg()))) / float64(prob.NSamples)

	state, err := NewState(prob, cfg.betaInit, lambdas[0])
	if err != nil {
		return nil, err
	}
	active := NewActiveSet(prob.NFeatures)

	logger := cfg.logger.With(
		log.OperationKey, log.OperationPath,
		log.NLambdasKey, nLambdas,
		log.ScreeningPolicyKey, cfg.policy.String(),
	)

	activeWarmStart := cfg.strongWarmStart || cfg.gapWarmStart
	prevActive := prob.NFeatures

	for t, lambda := range lambdas {
		if activeWarmStart && t != 0 {
			if cfg.strongWarmStart {
				// The strong rule can wrongly discard a feature, so its
				// mask only seeds the restricted refinement below. The
				// definitive solve resets the mask and rebuilds it with
				// safe tests.
				threshold := 2*lambda - lambdas[t-1]
				active.Reset()
				for j, g := range state.XTR {
					if math.Abs(g) < threshold {
						active.Disable(j)
					}
				}
			}
			run := true
			if cfg.gapWarmStart {
				run = prevActive < prob.NFeatures
			}
			if run {
				// Refine the iterate on the restricted set. Only the
				// refined State matters; the diagnostics of this solve
				// are deliberately discarded.
				cfg.kernel.Solve(prob, state, active, lambda, tol,
					cfg.maxIter, cfg.screenFreq, cfg.policy, true)
			}
		}

		diag := cfg.kernel.Solve(prob, state, active, lambda, tol,
			cfg.maxIter, cfg.screenFreq, cfg.policy, false)

		res.Coefs[t] = append([]float64(nil), state.Beta...)
		res.Gaps[t] = diag.Gap
		res.NIters[t] = diag.NIter
		res.NActive[t] = diag.NActive
		prevActive = diag.NActive

		logger.Debug("penalty solved",
			log.LambdaIndexKey, t,
			log.LambdaKey, lambda,
			log.DualGapKey, diag.Gap,
			log.PassesKey, diag.NIter,
			log.ActiveFeaturesKey, diag.NActive,
		)

		if math.Abs(diag.Gap) > tol {
			warning := gserrors.NewConvergenceWarning("logreg.Path", t, diag.NIter, diag.Gap, tol)
			gserrors.Warn(warning)
			logger.Warn("penalty did not converge",
				log.LambdaIndexKey, t,
				log.LambdaKey, lambda,
				log.DualGapKey, diag.Gap,
				log.ToleranceKey, tol,
				log.PassesKey, diag.NIter,
			)
		}
	}

	return res, nil
}
