package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.Info("hello", "key", "value")

	logged := buf.String()
	if !strings.Contains(logged, "hello") {
		t.Errorf("expected message in output, got %q", logged)
	}
	if !strings.Contains(logged, "key") {
		t.Errorf("expected structured field in output, got %q", logged)
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	logger.Info("to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("expected message written to file, got %q", data)
	}
}

func TestRequestID(t *testing.T) {
	a := RequestID()
	b := RequestID()

	if a == b {
		t.Error("expected unique request ids")
	}
	if len(a) != 36 {
		t.Errorf("expected UUID format, got %q", a)
	}
}
