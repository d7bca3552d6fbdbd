// Package model provides additional interfaces and types for fitted models.
// This file complements the core interfaces in estimator.go and transformer.go.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns the model's default evaluation metric on the given data.
	Score(X mat.Matrix, y mat.Matrix) (float64, error)
}

// Classifier combines the interfaces a binary classifier implements.
type Classifier interface {
	Estimator
	Predictor
	Scorer

	// PredictProba returns probability estimates for the positive class.
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// Classes returns the unique class labels seen during fitting.
	Classes() []float64
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}

// ParameterSetter is the interface for models that allow parameter modification.
type ParameterSetter interface {
	// SetParams sets the model's hyperparameters.
	SetParams(params map[string]interface{}) error
}

// Persistable is the interface for models that can be saved and loaded.
type Persistable interface {
	// Save saves the model to a file.
	Save(path string) error

	// Load loads the model from a file.
	Load(path string) error
}

// WeightExporter is the interface for models whose learned weights can be
// exported in a portable format.
type WeightExporter interface {
	// ExportWeights exports the model's weights.
	ExportWeights() (*ModelWeights, error)

	// ImportWeights imports previously exported weights.
	ImportWeights(weights *ModelWeights) error
}
