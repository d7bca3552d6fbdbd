package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "gapsafe: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "gapsafe: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Predict", 10, 12, 0)

	want := "gapsafe: Predict: dimension mismatch on axis 0 (rows). Expected 10, got 12"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
	if dimErr.Expected != 10 || dimErr.Got != 12 {
		t.Errorf("Expected/Got = %d/%d, want 10/12", dimErr.Expected, dimErr.Got)
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("LogisticLasso", "Predict")

	want := "gapsafe: LogisticLasso: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("BuildLambdas", "nLambdas must be positive")

	want := "gapsafe: BuildLambdas: nLambdas must be positive"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValueError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValueError")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("eps", "must be in (0, 1]", 2.5)

	want := "gapsafe: validation failed for parameter 'eps': must be in (0, 1] (got: 2.5)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var validationErr *ValidationError
	if !As(err, &validationErr) {
		t.Error("Error should be castable to *ValidationError")
	}
}

func TestNewConvergenceWarning(t *testing.T) {
	warn := NewConvergenceWarning("cdLogreg", 7, 3000, 1.5e-3, 1e-4)

	msg := warn.Error()
	for _, frag := range []string{
		"cdLogreg did not converge at penalty index 7",
		"after 3000 iterations",
		"gap=1.500000e-03",
		"tol=1.000000e-04",
	} {
		if !strings.Contains(msg, frag) {
			t.Errorf("warning message %q should contain %q", msg, frag)
		}
	}

	var convWarn *ConvergenceWarning
	if !As(warn, &convWarn) {
		t.Error("Warning should be castable to *ConvergenceWarning")
	}
}

func TestNewDataConversionWarning(t *testing.T) {
	warn := NewDataConversionWarning("{-1, +1}", "{0, 1}", "binary labels remapped for logistic loss")

	msg := warn.Error()
	if !strings.Contains(msg, "{-1, +1}") || !strings.Contains(msg, "{0, 1}") {
		t.Errorf("warning message should name both label encodings: %s", msg)
	}

	var convWarn *DataConversionWarning
	if !As(warn, &convWarn) {
		t.Error("Warning should be castable to *DataConversionWarning")
	}
}

func TestWarnUsesInstalledHandler(t *testing.T) {
	var captured []error
	SetWarningHandler(func(w error) {
		captured = append(captured, w)
	})
	defer SetWarningHandler(func(w error) {})

	w := NewConvergenceWarning("cdLogreg", 0, 100, 1e-2, 1e-4)
	Warn(w)

	if len(captured) != 1 {
		t.Fatalf("expected 1 captured warning, got %d", len(captured))
	}
	if captured[0] != w {
		t.Errorf("captured warning = %v, want %v", captured[0], w)
	}
}

func TestWarnPrefersZerologSink(t *testing.T) {
	var handlerHits, sinkHits int
	SetWarningHandler(func(w error) { handlerHits++ })
	SetZerologWarnFunc(func(w error) { sinkHits++ })
	defer func() {
		SetZerologWarnFunc(nil)
		SetWarningHandler(func(w error) {})
	}()

	Warn(NewDataConversionWarning("float32", "float64", "matrix promoted"))

	if sinkHits != 1 {
		t.Errorf("zerolog sink hits = %d, want 1", sinkHits)
	}
	if handlerHits != 0 {
		t.Errorf("plain handler hits = %d, want 0 when a zerolog sink is installed", handlerHits)
	}
}

func TestWrapAndIs(t *testing.T) {
	baseErr := ErrEmptyData

	wrapped := Wrap(baseErr, "in LogisticLasso.Fit")

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	if !strings.Contains(wrapped.Error(), "in LogisticLasso.Fit") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	baseErr := ErrEmptyData

	wrapped := Wrapf(baseErr, "in %s: expected %d, got %d", "Predict", 10, 5)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in Predict: expected 10, got 5"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestErrorChaining(t *testing.T) {
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("Operation", "failed", err2)

	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}
