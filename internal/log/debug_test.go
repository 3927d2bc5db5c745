package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetLogger() {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()
	if globalDebugLogger.file != nil {
		_ = globalDebugLogger.file.Close()
	}
	globalDebugLogger.file = nil
	globalDebugLogger.buffer = nil
	globalDebugLogger.discard = false
}

func TestBufferedLogsAreFlushedToFile(t *testing.T) {
	resetLogger()
	t.Cleanup(resetLogger)

	Debugf("before file: %s", "hello")

	path := filepath.Join(t.TempDir(), "debug.log")
	if err := SetFile(path); err != nil {
		t.Fatalf("SetFile: %v", err)
	}
	Debugf("after file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "before file: hello") {
		t.Errorf("buffered message missing from log file: %q", content)
	}
	if !strings.Contains(content, "after file") {
		t.Errorf("direct message missing from log file: %q", content)
	}
}

func TestEmptyPathDiscards(t *testing.T) {
	resetLogger()
	t.Cleanup(resetLogger)

	Debugf("will be dropped")
	if err := SetFile(""); err != nil {
		t.Fatalf("SetFile: %v", err)
	}

	globalDebugLogger.mu.Lock()
	buffered := len(globalDebugLogger.buffer)
	discard := globalDebugLogger.discard
	globalDebugLogger.mu.Unlock()

	if buffered != 0 {
		t.Errorf("expected buffer to be dropped, got %d bytes", buffered)
	}
	if !discard {
		t.Error("expected discard mode")
	}
}

func TestSetFileAppends(t *testing.T) {
	resetLogger()
	t.Cleanup(resetLogger)

	path := filepath.Join(t.TempDir(), "debug.log")
	if err := os.WriteFile(path, []byte("existing\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := SetFile(path); err != nil {
		t.Fatalf("SetFile: %v", err)
	}
	Debugf("appended")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "existing\n") {
		t.Errorf("existing content truncated: %q", string(data))
	}
	if !strings.Contains(string(data), "appended") {
		t.Errorf("new content missing: %q", string(data))
	}
}
