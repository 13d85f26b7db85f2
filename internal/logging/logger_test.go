package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSetupLogger(t *testing.T) {
	// Save original logger to restore later
	originalLogger := defaultLogger

	// Defer restoration of the original logger
	defer func() {
		defaultLogger = originalLogger
	}()

	testCases := []struct {
		name          string
		level         LogLevel
		expectedLevel slog.Level
	}{
		{
			name:          "Debug level",
			level:         LevelDebug,
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "Info level",
			level:         LevelInfo,
			expectedLevel: slog.LevelInfo,
		},
		{
			name:          "Warn level",
			level:         LevelWarn,
			expectedLevel: slog.LevelWarn,
		},
		{
			name:          "Error level",
			level:         LevelError,
			expectedLevel: slog.LevelError,
		},
		{
			name:          "Invalid level defaults to Info",
			level:         LogLevel("invalid"),
			expectedLevel: slog.LevelInfo,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Setup logger with a buffer to capture output
			var buf bytes.Buffer
			SetupLogger(&buf, tc.level)

			// Verify logger was set
			if defaultLogger == nil {
				t.Fatal("defaultLogger is nil after setup")
			}

			// Test logging
			Info("test message")

			// Verify output contains expected level
			output := buf.String()

			if tc.expectedLevel <= slog.LevelInfo && !strings.Contains(output, "INFO") && !strings.Contains(output, "info") {
				t.Errorf("Expected INFO level in output, got: %s", output)
			}
		})
	}
}

func TestLoggingFunctions(t *testing.T) {
	// Save original logger to restore later
	originalLogger := defaultLogger
	defer func() {
		defaultLogger = originalLogger
	}()

	// Set to debug to capture all levels
	var buf bytes.Buffer
	SetupLogger(&buf, LevelDebug)

	tests := []struct {
		name    string
		logFunc func(string, ...any)
		level   string
		message string
	}{
		{
			name:    "Debug logging",
			logFunc: Debug,
			level:   "DEBUG",
			message: "debug message",
		},
		{
			name:    "Info logging",
			logFunc: Info,
			level:   "INFO",
			message: "info message",
		},
		{
			name:    "Warn logging",
			logFunc: Warn,
			level:   "WARN",
			message: "warn message",
		},
		{
			name:    "Error logging",
			logFunc: Error,
			level:   "ERROR",
			message: "error message",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Clear buffer
			buf.Reset()

			// Call the log function
			tc.logFunc(tc.message, "key", "value")

			// Check output
			output := buf.String()
			if !strings.Contains(strings.ToUpper(output), tc.level) {
				t.Errorf("Expected log level %s in output, got: %s", tc.level, output)
			}
			if !strings.Contains(output, tc.message) {
				t.Errorf("Expected message %q in output, got: %s", tc.message, output)
			}
			if !strings.Contains(output, "key") || !strings.Contains(output, "value") {
				t.Errorf("Expected key-value pair in output, got: %s", output)
			}
		})
	}
}

func TestMaskSensitive(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Empty string",
			input:    "",
			expected: "<not set>",
		},
		{
			name:     "Short string",
			input:    "abc",
			expected: "<set>",
		},
		{
			name:     "Exactly 4 characters",
			input:    "abcd",
			expected: "<set>",
		},
		{
			name:     "Long string",
			input:    "abcdefghijklm",
			expected: "abcd...***",
		},
		{
			name:     "Token-like string",
			input:    "2Dn5j8fk39Dkf0s",
			expected: "2Dn5...***",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := MaskSensitive(tc.input)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}
