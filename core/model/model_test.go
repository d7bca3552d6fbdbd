package model

import (
	"bytes"
	"testing"
)

func TestStateManagerLifecycle(t *testing.T) {
	sm := NewStateManager()

	if sm.IsFitted() {
		t.Error("new StateManager should not be fitted")
	}
	if err := sm.RequireFitted(); err == nil {
		t.Error("RequireFitted should fail before SetFitted")
	}

	sm.SetDimensions(20, 100)
	sm.SetFitted()

	if !sm.IsFitted() {
		t.Error("StateManager should be fitted after SetFitted")
	}
	if err := sm.RequireFitted(); err != nil {
		t.Errorf("RequireFitted after SetFitted: %v", err)
	}

	nFeatures, nSamples := sm.GetDimensions()
	if nFeatures != 20 || nSamples != 100 {
		t.Errorf("GetDimensions = (%d, %d), want (20, 100)", nFeatures, nSamples)
	}

	sm.Reset()
	if sm.IsFitted() {
		t.Error("StateManager should not be fitted after Reset")
	}
}

func TestModelWeightsJSONRoundTrip(t *testing.T) {
	mw := &ModelWeights{
		ModelType:    "LogisticLasso",
		Version:      "1.0",
		Coefficients: []float64{0.5, 0, -1.25},
		Intercept:    0,
		IsFitted:     true,
		Hyperparameters: map[string]interface{}{
			"eps": 1e-4,
		},
	}

	if err := mw.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	data, err := mw.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	var restored ModelWeights
	if err := restored.FromJSON(data); err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	if restored.ModelType != mw.ModelType || len(restored.Coefficients) != 3 {
		t.Errorf("round trip altered weights: %+v", restored)
	}
	if restored.Coefficients[2] != -1.25 {
		t.Errorf("Coefficients[2] = %v, want -1.25", restored.Coefficients[2])
	}
}

func TestModelWeightsValidate(t *testing.T) {
	tests := []struct {
		name    string
		weights ModelWeights
		wantErr bool
	}{
		{"missing model type", ModelWeights{Version: "1.0"}, true},
		{"missing version", ModelWeights{ModelType: "LogisticLasso"}, true},
		{"fitted without coefficients", ModelWeights{ModelType: "LogisticLasso", Version: "1.0", IsFitted: true}, true},
		{"unfitted with coefficients", ModelWeights{ModelType: "LogisticLasso", Version: "1.0", Coefficients: []float64{1}}, true},
		{"valid", ModelWeights{ModelType: "LogisticLasso", Version: "1.0", IsFitted: true, Coefficients: []float64{1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveLoadModelRoundTrip(t *testing.T) {
	type toyModel struct {
		Coef []float64
		Bias float64
	}

	saved := toyModel{Coef: []float64{1, 0, 2.5}, Bias: -0.5}

	var buf bytes.Buffer
	if err := SaveModelToWriter(&saved, &buf); err != nil {
		t.Fatalf("SaveModelToWriter: %v", err)
	}

	var loaded toyModel
	if err := LoadModelFromReader(&loaded, &buf); err != nil {
		t.Fatalf("LoadModelFromReader: %v", err)
	}

	if loaded.Bias != saved.Bias || len(loaded.Coef) != len(saved.Coef) {
		t.Errorf("round trip altered model: %+v", loaded)
	}
	for i := range saved.Coef {
		if loaded.Coef[i] != saved.Coef[i] {
			t.Errorf("Coef[%d] = %v, want %v", i, loaded.Coef[i], saved.Coef[i])
		}
	}
}

func TestModelWeightsClone(t *testing.T) {
	mw := &ModelWeights{
		ModelType:    "LogisticLasso",
		Version:      "1.0",
		Coefficients: []float64{1, 2},
		IsFitted:     true,
		Hyperparameters: map[string]interface{}{
			"max_iter": 3000,
		},
	}

	clone := mw.Clone()
	clone.Coefficients[0] = 99
	clone.Hyperparameters["max_iter"] = 1

	if mw.Coefficients[0] != 1 {
		t.Error("Clone should not share the coefficient slice")
	}
	if mw.Hyperparameters["max_iter"] != 3000 {
		t.Error("Clone should not share the hyperparameter map")
	}
}
