package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

type contextKey string

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	config := LoggerConfig{
		Level:         LevelInfo,
		Format:        "json",
		Output:        &buf,
		IncludeSource: false,
		Component:     "test-component",
	}

	logger := NewLogger(config)
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}

	logger.Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected log output to contain 'test message', got: %s", output)
	}

	if !strings.Contains(output, "test-component") {
		t.Errorf("Expected log output to contain component name, got: %s", output)
	}
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, test := range tests {
		if got := test.level.String(); got != test.expected {
			t.Errorf("LogLevel(%d).String() = %s, want %s", test.level, got, test.expected)
		}
	}
}

func TestNewDefaultLogger(t *testing.T) {
	logger := NewDefaultLogger()
	if logger == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}

	// Test that it doesn't panic
	logger.Info("test message")
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	// Temporarily replace stdout to capture output
	originalLogger := defaultLogger
	defer func() { defaultLogger = originalLogger }()

	logger := NewLogger(LoggerConfig{
		Level:  LevelInfo,
		Format: "json",
		Output: &buf,
	})

	logger.Info("test json message", "key", "value")

	output := buf.String()

	// Verify it's valid JSON
	var jsonData map[string]interface{}
	if err := json.Unmarshal([]byte(output), &jsonData); err != nil {
		t.Errorf("Output is not valid JSON: %v\nOutput: %s", err, output)
	}

	if jsonData["msg"] != "test json message" {
		t.Errorf("Expected message 'test json message', got: %v", jsonData["msg"])
	}

	if jsonData["key"] != "value" {
		t.Errorf("Expected key 'value', got: %v", jsonData["key"])
	}
}

func TestNewDebugLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:         LevelDebug,
		Format:        "text",
		Output:        &buf,
		IncludeSource: true,
	})

	logger.Debug("debug message")

	output := buf.String()
	if !strings.Contains(output, "debug message") {
		t.Errorf("Expected debug message in output, got: %s", output)
	}
}

func TestLogger_WithMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LevelInfo,
		Format: "json",
		Output: &buf,
	})

	// Test WithTable
	tableLogger := logger.WithTable("linked_trip")
	tableLogger.Info("table test")

	output := buf.String()
	if !strings.Contains(output, "linked_trip") {
		t.Errorf("Expected table name in output, got: %s", output)
	}

	// Reset buffer
	buf.Reset()

	// Test WithDay
	dayLogger := logger.WithDay(123, 2)
	dayLogger.Info("day test")

	output = buf.String()
	if !strings.Contains(output, "123") || !strings.Contains(output, "\"day_num\":2") {
		t.Errorf("Expected person/day context in output, got: %s", output)
	}

	// Reset buffer
	buf.Reset()

	// Test WithRule
	ruleLogger := logger.WithRule("UNIQUE_HH_ID", "household")
	ruleLogger.Info("rule test")

	output = buf.String()
	if !strings.Contains(output, "UNIQUE_HH_ID") {
		t.Errorf("Expected rule code in output, got: %s", output)
	}

	// Reset buffer
	buf.Reset()

	// Test WithError
	err := errors.New("test error")
	errorLogger := logger.WithError(err)
	errorLogger.Info("error test")

	output = buf.String()
	if !strings.Contains(output, "test error") {
		t.Errorf("Expected error message in output, got: %s", output)
	}

	// Reset buffer
	buf.Reset()

	// Test WithDuration
	duration := 150 * time.Millisecond
	durationLogger := logger.WithDuration("validation", duration)
	durationLogger.Info("duration test")

	output = buf.String()
	if !strings.Contains(output, "150") {
		t.Errorf("Expected duration in output, got: %s", output)
	}

	// Reset buffer
	buf.Reset()

	// Test WithMetrics
	metricsLogger := logger.WithMetrics(5, 12, 500*time.Millisecond)
	metricsLogger.Info("metrics test")

	output = buf.String()
	if !strings.Contains(output, "\"rows_processed\":5") {
		t.Errorf("Expected metrics in output, got: %s", output)
	}
}

func TestLogger_ValidationMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LevelInfo,
		Format: "json",
		Output: &buf,
	})

	table := "linked_trip"
	duration := 100 * time.Millisecond

	// Test ValidationStart
	logger.ValidationStart("survey_2026")
	output := buf.String()
	if !strings.Contains(output, "starting validation") {
		t.Errorf("Expected validation start message, got: %s", output)
	}
	buf.Reset()

	// Test ValidationComplete
	logger.ValidationComplete("survey_2026", duration, 5, true)
	output = buf.String()
	if !strings.Contains(output, "validation completed") {
		t.Errorf("Expected validation complete message, got: %s", output)
	}
	buf.Reset()

	// Test ValidationError
	err := errors.New("validation failed")
	logger.ValidationError(table, err)
	output = buf.String()
	if !strings.Contains(output, "validation error") {
		t.Errorf("Expected validation error message, got: %s", output)
	}
	buf.Reset()

	// Test RuleViolation
	logger.RuleViolation(table, "UNIQUE_HH_ID", "duplicate household id", 42)
	output = buf.String()
	if !strings.Contains(output, "rule violation") || !strings.Contains(output, "UNIQUE_HH_ID") {
		t.Errorf("Expected rule violation message, got: %s", output)
	}
	buf.Reset()

	// Test PerformanceWarning
	threshold := 50 * time.Millisecond
	logger.PerformanceWarning("validation", duration, threshold)
	output = buf.String()
	if !strings.Contains(output, "performance warning") {
		t.Errorf("Expected performance warning message, got: %s", output)
	}
	buf.Reset()

	// Test LinkStart / LinkComplete
	logger.LinkStart(10, 1, 4)
	output = buf.String()
	if !strings.Contains(output, "starting trip linking") {
		t.Errorf("Expected link start message, got: %s", output)
	}
	buf.Reset()

	logger.LinkComplete(10, 1, 2, time.Second)
	output = buf.String()
	if !strings.Contains(output, "trip linking completed") {
		t.Errorf("Expected link complete message, got: %s", output)
	}
	buf.Reset()

	// Test TourStageStart / TourStageComplete
	logger.TourStageStart("classify_locations", 500)
	output = buf.String()
	if !strings.Contains(output, "starting tour extraction stage") {
		t.Errorf("Expected tour stage start message, got: %s", output)
	}
	buf.Reset()

	logger.TourStageComplete("classify_locations", time.Second, 120)
	output = buf.String()
	if !strings.Contains(output, "tour extraction stage completed") {
		t.Errorf("Expected tour stage complete message, got: %s", output)
	}
	buf.Reset()

	// Test RowBatchProgress
	logger.RowBatchProgress(table, 0, 10000, 42000)
	output = buf.String()
	if !strings.Contains(output, "row batch validated") {
		t.Errorf("Expected row batch progress message, got: %s", output)
	}
	buf.Reset()

	// Test ConfigurationLoaded
	logger.ConfigurationLoaded("config.yaml", 3)
	output = buf.String()
	if !strings.Contains(output, "configuration loaded") {
		t.Errorf("Expected configuration loaded message, got: %s", output)
	}
}

func TestLogger_DebugMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LevelDebug,
		Format: "json",
		Output: &buf,
	})

	// Test MemoryUsage
	logger.MemoryUsage("validation", 25.5, 128.0)
	output := buf.String()
	if !strings.Contains(output, "memory usage") {
		t.Errorf("Expected memory usage message, got: %s", output)
	}
}

func TestLogger_IsLevelEnabled(t *testing.T) {
	logger := NewLogger(LoggerConfig{Level: LevelWarn})

	if !logger.IsLevelEnabled(LevelError) {
		t.Error("Expected ERROR level to be enabled for WARN logger")
	}

	if !logger.IsLevelEnabled(LevelWarn) {
		t.Error("Expected WARN level to be enabled for WARN logger")
	}

	if logger.IsLevelEnabled(LevelInfo) {
		t.Error("Expected INFO level to be disabled for WARN logger")
	}

	if logger.IsLevelEnabled(LevelDebug) {
		t.Error("Expected DEBUG level to be disabled for WARN logger")
	}
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := defaultLogger
	defer func() { defaultLogger = originalLogger }()

	// Set a test logger as default
	testLogger := NewLogger(LoggerConfig{
		Level:  LevelInfo,
		Format: "json",
		Output: &buf,
	})
	SetDefaultLogger(testLogger)

	if GetDefaultLogger() != testLogger {
		t.Error("GetDefaultLogger did not return the expected logger")
	}

	// Test global convenience functions
	Info("test info", "key", "value")
	output := buf.String()
	if !strings.Contains(output, "test info") {
		t.Errorf("Expected global Info to work, got: %s", output)
	}
	buf.Reset()

	Warn("test warning")
	output = buf.String()
	if !strings.Contains(output, "test warning") {
		t.Errorf("Expected global Warn to work, got: %s", output)
	}
	buf.Reset()

	Error("test error")
	output = buf.String()
	if !strings.Contains(output, "test error") {
		t.Errorf("Expected global Error to work, got: %s", output)
	}
	buf.Reset()

	ValidationStart("survey_2026")
	output = buf.String()
	if !strings.Contains(output, "starting validation") {
		t.Errorf("Expected global ValidationStart to work, got: %s", output)
	}
	buf.Reset()

	ValidationComplete("survey_2026", 100*time.Millisecond, 2, true)
	output = buf.String()
	if !strings.Contains(output, "validation completed") {
		t.Errorf("Expected global ValidationComplete to work, got: %s", output)
	}
	buf.Reset()

	ValidationError("linked_trip", errors.New("test error"))
	output = buf.String()
	if !strings.Contains(output, "validation error") {
		t.Errorf("Expected global ValidationError to work, got: %s", output)
	}
	buf.Reset()

	RuleViolation("linked_trip", "RULE_1", "test message", 10)
	output = buf.String()
	if !strings.Contains(output, "rule violation") {
		t.Errorf("Expected global RuleViolation to work, got: %s", output)
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LevelInfo,
		Format: "json",
		Output: &buf,
	})

	ctx := context.WithValue(context.Background(), contextKey("request_id"), "req-123")
	contextLogger := logger.WithContext(ctx)

	contextLogger.Info("context test")

	output := buf.String()
	// Note: context value might be nil if not properly set up, but method should not panic
	if output == "" {
		t.Error("Expected some output from context logger")
	}
}
