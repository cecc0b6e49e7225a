package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fishcap.log")
	logger, err := New(path, false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("assessment saved", zap.String("assessment", "Team"))
	logger.Debug("hidden at info level")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"assessment saved"`) || !strings.Contains(out, `"assessment":"Team"`) {
		t.Fatalf("unexpected log output: %s", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Fatalf("debug entry must be filtered")
	}
}

func TestNewVerboseKeepsDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fishcap.log")
	logger, err := New(path, true)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("frame scheduled")
	_ = logger.Sync()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "frame scheduled") {
		t.Fatalf("expected debug entry, got %s", data)
	}
}

func TestNewEmptyPathIsNop(t *testing.T) {
	logger, err := New("", true)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if logger.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("expected a no-op logger")
	}
}
