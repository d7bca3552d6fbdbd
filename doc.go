// Package gapsafe solves L1-penalized sparse logistic regression over
// regularization paths with gap-safe feature screening, and builds
// sparse-group-lasso penalty grids through the epsilon-norm.
//
// Safe screening uses the duality gap to certify, at any point of the
// solve, that certain features are zero in the optimal solution. Those
// features are removed from the problem with no change to the result,
// which makes whole-path solves over thousands of features cheap. The
// rules implemented here follow Ndiaye, Fercoq, Gramfort and Salmon,
// "Gap Safe screening rules for sparsity enforcing penalties"
// (https://arxiv.org/abs/1611.05780).
//
// # Quick Start
//
// Fit a logistic lasso path on a synthetic dataset:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/gapsafe/datasets"
//	    "github.com/YuminosukeSato/gapsafe/logreg"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    data, err := datasets.MakeClassification(datasets.Config{
//	        NSamples:   300,
//	        GroupSizes: []int{10, 10, 10},
//	        Rho:        0.5,
//	        Seed:       42,
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    clf := logreg.NewLogisticLasso()
//	    y := mat.NewVecDense(len(data.Y), data.Y)
//	    if err := clf.Fit(data.X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    score, err := clf.Score(data.X, y)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("accuracy: %.4f\n", score)
//	}
//
// The lower-level logreg.Path gives direct control over the penalty
// grid, the screening policy and the warm-start strategies, and returns
// the full path: coefficients, duality gaps, iteration counts and
// active-set sizes per penalty.
//
// # Packages
//
//   - logreg: the path solver and the LogisticLasso estimator
//   - sgl: sparse-group-lasso penalty grids and the epsilon-norm
//   - datasets: synthetic Toeplitz-correlated designs with group structure
//   - metrics: accuracy, log loss and AUC
//   - preprocessing: feature standardization
//   - viz: coefficient-path figures
//   - core/model: estimator state, interfaces and persistence
//   - core/parallel: chunked parallel loops
//   - pkg/errors: error taxonomy and the warning channel
//   - pkg/log: structured logging backed by rs/zerolog
//
// # Command Line
//
// The gapsafe command demonstrates both solvers on synthetic data:
//
//	go run ./cmd/gapsafe path --samples 1000 --groups 20 --plot path.png
//	go run ./cmd/gapsafe grid --tau 0.3
package gapsafe
