package log

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// TestLoggerInterface tests the Logger interface implementation
func TestLoggerInterface(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	// Test Debug logging
	testLogger.Debug("debug message", "key1", "value1", "number", 42)

	// Test Info logging
	testLogger.Info("info message", "operation", "test")

	// Test Warn logging
	testLogger.Warn("warning message", "warning_code", "TEST_WARNING")

	// Test Error logging
	testErr := fmt.Errorf("test error")
	testLogger.Error("error message", "error", testErr, "error_code", "TEST_ERROR")

	// Verify output was captured
	output := buffer.String()
	if output == "" {
		t.Fatal("Expected log output, got empty string")
	}

	// Verify all log levels were captured
	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}

	// Verify structured fields
	if !testLogger.ContainsField("key1", "value1") {
		t.Error("Expected field key1=value1 not found")
	}

	if !testLogger.ContainsField("number", 42.0) { // JSON unmarshaling converts numbers to float64
		t.Error("Expected field number=42 not found")
	}
}

// TestLoggerWith tests the With method for context-aware logging
func TestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	// Create contextual logger
	contextLogger := testLogger.With(
		ModelNameKey, "LogisticLasso",
		ComponentKey, "logreg",
		EstimatorIDKey, "lasso-001",
	)

	// Log with context
	contextLogger.Info("contextual message", OperationKey, OperationPath)

	// Verify context fields are included
	if !testLogger.ContainsField(ModelNameKey, "LogisticLasso") {
		t.Error("Model name context not found")
	}

	if !testLogger.ContainsField(ComponentKey, "logreg") {
		t.Error("Component context not found")
	}

	if !testLogger.ContainsField(OperationKey, OperationPath) {
		t.Error("Operation field not found")
	}
}

// TestLoggerEnabled tests the Enabled method
func TestLoggerEnabled(t *testing.T) {
	// Create logger with Info level
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	// Test level checking
	if !testLogger.Enabled(ctx, LevelInfo) {
		t.Error("Logger should be enabled for Info level")
	}

	if !testLogger.Enabled(ctx, LevelError) {
		t.Error("Logger should be enabled for Error level")
	}

	if testLogger.Enabled(ctx, LevelDebug) {
		t.Error("Logger should not be enabled for Debug level")
	}

	// Test that disabled logs don't appear
	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")

	if testLogger.ContainsMessage("this should not appear") {
		t.Error("Debug message should not appear when level is Info")
	}

	if !testLogger.ContainsMessage("this should appear") {
		t.Error("Info message should appear when level is Info")
	}
}

// TestSolverAttributeKeys tests solver-specific attribute keys
func TestSolverAttributeKeys(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	// Simulate per-penalty solver logging
	testLogger.Info("Penalty solved",
		OperationKey, OperationPath,
		PhaseKey, PhaseTraining,
		SamplesKey, 1000,
		FeaturesKey, 500,
		LambdaIndexKey, 12,
		DualGapKey, 3.2e-5,
		ActiveFeaturesKey, 87,
	)

	// Verify solver attributes
	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatalf("Failed to parse log entries: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}

	entry := entries[0]

	// Check solver-specific fields
	expectedFields := map[string]interface{}{
		OperationKey:      OperationPath,
		PhaseKey:          PhaseTraining,
		SamplesKey:        1000.0, // JSON numbers are float64
		FeaturesKey:       500.0,
		LambdaIndexKey:    12.0,
		DualGapKey:        3.2e-5,
		ActiveFeaturesKey: 87.0,
	}

	for key, expectedValue := range expectedFields {
		if actualValue, exists := entry[key]; !exists {
			t.Errorf("Expected field %s not found", key)
		} else if actualValue != expectedValue {
			t.Errorf("Field %s: expected %v, got %v", key, expectedValue, actualValue)
		}
	}
}

// TestLoggerProviderIntegration tests the LoggerProvider interface
func TestLoggerProviderIntegration(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelDebug)

	// Test GetLogger
	logger := provider.GetLogger()
	logger.Info("provider test message")

	// Test GetLoggerWithName
	namedLogger := provider.GetLoggerWithName("sgl")
	namedLogger.Info("named logger message")

	// Verify output
	lines := buffer.String()
	if lines == "" {
		t.Fatal("Expected log output from provider")
	}

	if !strings.Contains(lines, "provider test message") {
		t.Error("Provider test message not found")
	}

	if !strings.Contains(lines, "named logger message") {
		t.Error("Named logger message not found")
	}

	if !strings.Contains(lines, "sgl") {
		t.Error("Component name not found in named logger output")
	}
}

// TestDefaultProviderSwap tests installing a custom provider globally
func TestDefaultProviderSwap(t *testing.T) {
	provider, _ := NewTestLoggerProvider(LevelDebug)
	testLogger := provider.logger

	SetProvider(provider)
	defer SetProvider(NewZerologProvider(discardWriter{}, LevelWarn))

	GetLogger().Info("global logger message")
	GetLoggerWithName("datasets").Info("named global message")

	if !testLogger.ContainsMessage("global logger message") {
		t.Error("Global logger did not use installed provider")
	}

	if !testLogger.ContainsField("component", "datasets") {
		t.Error("Named global logger did not tag the component")
	}
}

// TestErrorLoggingIntegration tests error logging integration
func TestErrorLoggingIntegration(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelError)

	// Create a test error
	testErr := fmt.Errorf("path solve failed")

	// Log error with context
	testLogger.Error("Fit failed",
		"error", testErr,
		OperationKey, OperationFit,
		ErrorCodeKey, ErrorConvergence,
		SamplesKey, 100,
		SuggestionKey, "Try increasing max_iter",
	)

	// Verify error logging
	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatalf("Failed to parse log entries: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Expected 1 error entry, got %d", len(entries))
	}

	entry := entries[0]

	// Check error-specific fields
	if entry["level"] != "ERROR" {
		t.Error("Expected ERROR level")
	}

	if !testLogger.ContainsField(ErrorCodeKey, ErrorConvergence) {
		t.Error("Error code not found")
	}

	if !testLogger.ContainsField(SuggestionKey, "Try increasing max_iter") {
		t.Error("Error suggestion not found")
	}
}

// TestConcurrentLogging tests thread safety of logging
func TestConcurrentLogging(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	numGoroutines := 4
	messagesPerGoroutine := 25

	done := make(chan bool, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer func() { done <- true }()

			for j := 0; j < messagesPerGoroutine; j++ {
				testLogger.Info(fmt.Sprintf("goroutine %d message %d", id, j),
					"goroutine_id", id,
					"message_id", j,
				)
			}
		}(i)
	}

	// Wait for all goroutines to complete
	for i := 0; i < numGoroutines; i++ {
		<-done
	}

	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatalf("Failed to parse log entries: %v", err)
	}

	if want := numGoroutines * messagesPerGoroutine; len(entries) != want {
		t.Errorf("Expected %d log entries, got %d", want, len(entries))
	}
}

// discardWriter drops all output. Used to restore a quiet default provider.
type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// BenchmarkLogging benchmarks logging performance
func BenchmarkLogging(b *testing.B) {
	testLogger, _ := NewTestLogger(LevelInfo)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		testLogger.Info("benchmark message",
			"iteration", i,
			OperationKey, OperationPredict,
			SamplesKey, 1000,
		)
	}
}

// BenchmarkLoggingWithContext benchmarks logging with contextual fields
func BenchmarkLoggingWithContext(b *testing.B) {
	testLogger, _ := NewTestLogger(LevelInfo)
	contextLogger := testLogger.With(
		ModelNameKey, "BenchmarkModel",
		ComponentKey, "benchmark",
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		contextLogger.Info("benchmark message",
			"iteration", i,
			OperationKey, OperationPredict,
			SamplesKey, 1000,
		)
	}
}
