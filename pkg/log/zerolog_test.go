package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	gserrors "github.com/YuminosukeSato/gapsafe/pkg/errors"
)

func TestZerologLoggerEmitsStructuredJSON(t *testing.T) {
	var buffer bytes.Buffer
	provider := NewZerologProvider(&buffer, LevelDebug)

	logger := provider.GetLogger()
	logger.Info("Penalty solved",
		LambdaKey, 0.25,
		LambdaIndexKey, 3,
		ActiveFeaturesKey, 42,
		"screened", true,
	)

	line := strings.TrimSpace(buffer.String())
	if line == "" {
		t.Fatal("expected a JSON log line")
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}

	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["message"] != "Penalty solved" {
		t.Errorf("message = %v, want 'Penalty solved'", entry["message"])
	}
	if entry[LambdaKey] != 0.25 {
		t.Errorf("%s = %v, want 0.25", LambdaKey, entry[LambdaKey])
	}
	if entry[LambdaIndexKey] != 3.0 {
		t.Errorf("%s = %v, want 3", LambdaIndexKey, entry[LambdaIndexKey])
	}
	if entry["screened"] != true {
		t.Errorf("screened = %v, want true", entry["screened"])
	}
}

func TestZerologLoggerWith(t *testing.T) {
	var buffer bytes.Buffer
	provider := NewZerologProvider(&buffer, LevelDebug)

	logger := provider.GetLogger().With(ModelNameKey, "LogisticLasso", NLambdasKey, 100)
	logger.Info("Starting path solve")

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(buffer.String())), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}

	if entry[ModelNameKey] != "LogisticLasso" {
		t.Errorf("%s = %v, want LogisticLasso", ModelNameKey, entry[ModelNameKey])
	}
	if entry[NLambdasKey] != 100.0 {
		t.Errorf("%s = %v, want 100", NLambdasKey, entry[NLambdasKey])
	}
}

func TestZerologProviderLevelFiltering(t *testing.T) {
	var buffer bytes.Buffer
	provider := NewZerologProvider(&buffer, LevelWarn)

	logger := provider.GetLogger()
	ctx := context.Background()

	if logger.Enabled(ctx, LevelDebug) {
		t.Error("debug should be disabled at warn level")
	}
	if !logger.Enabled(ctx, LevelError) {
		t.Error("error should be enabled at warn level")
	}

	logger.Info("suppressed")
	logger.Warn("emitted")

	output := buffer.String()
	if strings.Contains(output, "suppressed") {
		t.Error("info message should be filtered out at warn level")
	}
	if !strings.Contains(output, "emitted") {
		t.Error("warn message should pass the filter")
	}

	// Lowering the level lets info through for fresh loggers.
	provider.SetLevel(LevelDebug)
	provider.GetLogger().Info("now visible")
	if !strings.Contains(buffer.String(), "now visible") {
		t.Error("info message should pass after SetLevel(LevelDebug)")
	}
}

func TestZerologLoggerNamedComponent(t *testing.T) {
	var buffer bytes.Buffer
	provider := NewZerologProvider(&buffer, LevelDebug)

	provider.GetLoggerWithName("logreg").Info("component message")

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(buffer.String())), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}

	if entry[ComponentKey] != "logreg" {
		t.Errorf("%s = %v, want logreg", ComponentKey, entry[ComponentKey])
	}
}

func TestRouteWarningsTo(t *testing.T) {
	var buffer bytes.Buffer
	zl := zerolog.New(&buffer)

	RouteWarningsTo(zl)
	defer gserrors.SetZerologWarnFunc(nil)

	gserrors.Warn(gserrors.NewConvergenceWarning("cdLogreg", 4, 3000, 2e-3, 1e-4))

	output := buffer.String()
	if !strings.Contains(output, "did not converge") {
		t.Errorf("warning message missing from output: %s", output)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &entry); err != nil {
		t.Fatalf("warning line is not valid JSON: %v", err)
	}

	// Structured fields from MarshalZerologObject are embedded at top level.
	if entry["algorithm"] != "cdLogreg" {
		t.Errorf("algorithm = %v, want cdLogreg", entry["algorithm"])
	}
	if entry["penalty_index"] != 4.0 {
		t.Errorf("penalty_index = %v, want 4", entry["penalty_index"])
	}
	if entry["level"] != "warn" {
		t.Errorf("level = %v, want warn", entry["level"])
	}
}

func TestRouteWarningsToPlainError(t *testing.T) {
	var buffer bytes.Buffer
	zl := zerolog.New(&buffer)

	RouteWarningsTo(zl)
	defer gserrors.SetZerologWarnFunc(nil)

	gserrors.Warn(gserrors.New("unstructured warning"))

	if !strings.Contains(buffer.String(), "unstructured warning") {
		t.Errorf("plain warning missing from output: %s", buffer.String())
	}
}
