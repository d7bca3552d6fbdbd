package model

import "gonum.org/v1/gonum/mat"

// Fitter is the interface for models that learn from training data.
type Fitter interface {
	// Fit trains the model on the given features and targets.
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for models that produce predictions.
type Predictor interface {
	// Predict returns predictions for the given input data.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Estimator is the minimal interface shared by all fitted models.
type Estimator interface {
	Fitter

	// IsFitted reports whether Fit has completed successfully.
	IsFitted() bool
}

// LinearModel is the interface for models parameterized by a coefficient
// vector and an intercept.
type LinearModel interface {
	// Weights returns the learned coefficients.
	Weights() []float64
	// Intercept returns the learned intercept.
	Intercept() float64
	// Score computes the model's default evaluation metric on the given
	// data: accuracy for classifiers, R^2 for regressors.
	Score(X, y mat.Matrix) (float64, error)
}
