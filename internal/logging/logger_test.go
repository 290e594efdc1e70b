package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.level); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")

	logger.Info("info message")
	logger.Warn("warn message")

	out := buf.String()
	if strings.Contains(out, "info message") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(out, "warn message") {
		t.Error("warn message missing")
	}
}

func TestRedactSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info")

	logger.Info("config loaded",
		"api_token", "secret-value",
		"db_password", "hunter2",
		"tracking_dir", "/data/mlruns",
	)

	out := buf.String()
	if strings.Contains(out, "secret-value") || strings.Contains(out, "hunter2") {
		t.Errorf("secret leaked into log output: %s", out)
	}
	if !strings.Contains(out, "***REDACTED***") {
		t.Error("redaction marker missing")
	}
	if !strings.Contains(out, "/data/mlruns") {
		t.Error("non-secret field was redacted")
	}
}

func TestNewFromConfig(t *testing.T) {
	logger, err := NewFromConfig("json", "debug", "discard")
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	if logger == nil {
		t.Fatal("NewFromConfig returned nil logger")
	}

	if _, err := NewFromConfig("text", "info", "/nonexistent-dir/x/y.log"); err == nil {
		t.Error("NewFromConfig succeeded for an unwritable output path")
	}
}

func TestContextRoundTrip(t *testing.T) {
	logger := New("debug")
	ctx := WithContext(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Error("FromContext did not return the attached logger")
	}
	if got := FromContext(context.Background()); got == nil {
		t.Error("FromContext returned nil for a bare context")
	}
}
