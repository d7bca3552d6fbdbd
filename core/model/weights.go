package model

import (
	"encoding/json"
	"fmt"
)

// ModelWeights is a portable representation of a fitted linear model's
// weights, suitable for JSON serialization and cross-process exchange.
type ModelWeights struct {
	// ModelType names the model kind (e.g. "LogisticLasso").
	ModelType string `json:"model_type"`

	// Version tags the weight format for compatibility checks.
	Version string `json:"version"`

	// Coefficients holds the learned weight vector.
	Coefficients []float64 `json:"coefficients"`

	// Intercept holds the learned intercept.
	Intercept float64 `json:"intercept"`

	// Features optionally names the features.
	Features []string `json:"features,omitempty"`

	// Hyperparameters records the model's hyperparameters.
	Hyperparameters map[string]interface{} `json:"hyperparameters"`

	// Metadata carries additional information such as training statistics.
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted reports whether the weights come from a fitted model.
	IsFitted bool `json:"is_fitted"`
}

// ToJSON serializes the weights to indented JSON.
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mw, "", "  ")
}

// FromJSON deserializes the weights from JSON.
func (mw *ModelWeights) FromJSON(data []byte) error {
	return json.Unmarshal(data, mw)
}

// Validate checks the weights for internal consistency.
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return fmt.Errorf("model_type is required")
	}

	if mw.Version == "" {
		return fmt.Errorf("version is required")
	}

	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return fmt.Errorf("unfitted model should not have coefficients")
	}

	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return fmt.Errorf("fitted model must have coefficients")
	}

	return nil
}

// Clone creates a deep copy of the weights.
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := &ModelWeights{
		ModelType:       mw.ModelType,
		Version:         mw.Version,
		Intercept:       mw.Intercept,
		IsFitted:        mw.IsFitted,
		Coefficients:    make([]float64, len(mw.Coefficients)),
		Features:        make([]string, len(mw.Features)),
		Hyperparameters: make(map[string]interface{}),
		Metadata:        make(map[string]interface{}),
	}

	copy(clone.Coefficients, mw.Coefficients)
	copy(clone.Features, mw.Features)

	for k, v := range mw.Hyperparameters {
		clone.Hyperparameters[k] = v
	}

	for k, v := range mw.Metadata {
		clone.Metadata[k] = v
	}

	return clone
}
