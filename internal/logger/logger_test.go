package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idilsaglam/tada/internal/logger"
)

func TestNew_WritesToFallback(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn, err := logger.New(logger.Config{Level: "info", Encoding: "json", Fallback: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closeFn()

	log.Debug("hidden")
	log.Info("request failed")

	out := buf.String()
	if !strings.Contains(out, `"msg":"request failed"`) {
		t.Errorf("expected json entry, got: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry leaked at info level: %s", out)
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log, _, err := logger.New(logger.Config{Level: "verbose", Fallback: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("hidden")
	log.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.log")
	log, closeFn, err := logger.New(logger.Config{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("fetched todos")
	_ = log.Sync()
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "fetched todos") {
		t.Errorf("log file missing entry: %s", b)
	}
}

func TestNew_FileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "todo.log")
	if _, _, err := logger.New(logger.Config{File: path}); err == nil {
		t.Error("expected error for unwritable log path")
	}
}

func TestForTUI_NoFileIsSilent(t *testing.T) {
	log, closeFn, err := logger.ForTUI(logger.Config{Level: "debug"})
	if err != nil {
		t.Fatalf("ForTUI: %v", err)
	}
	defer closeFn()
	if log.Core().Enabled(0) {
		t.Error("expected a no-op logger")
	}
}
