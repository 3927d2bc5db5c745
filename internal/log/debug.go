// Package log provides file-backed debug logging for the TUI. Standard
// output belongs to Bubble Tea, so debug messages are buffered until a log
// file is configured and discarded if none ever is.
package log

import (
	"log"
	"os"
	"sync"
)

// DebugLogger handles debug logging to file and/or buffering.
// It implements io.Writer to be compatible with standard log.Logger.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	buffer  []byte
	discard bool
}

var (
	globalDebugLogger = &DebugLogger{}
	stdLogger         = log.New(globalDebugLogger, "", log.LstdFlags|log.Lmicroseconds)
)

// Write implements io.Writer. It writes to the file if set, otherwise
// appends to the buffer.
func (l *DebugLogger) Write(p []byte) (n int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.discard {
		return len(p), nil
	}

	if l.file != nil {
		n, err = l.file.Write(p)
		// Sync so messages survive a crash; sync errors are not critical.
		_ = l.file.Sync()
		return n, err
	}

	// p may be reused by the caller.
	b := make([]byte, len(p))
	copy(b, p)
	l.buffer = append(l.buffer, b...)
	return len(p), nil
}

// SetFile sets the debug log file path, creating the file if needed and
// flushing anything buffered so far. An empty path discards buffered and
// future logs.
func SetFile(path string) error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	if globalDebugLogger.file != nil {
		_ = globalDebugLogger.file.Close()
		globalDebugLogger.file = nil
	}

	if path == "" {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	globalDebugLogger.discard = false
	globalDebugLogger.file = f

	if len(globalDebugLogger.buffer) > 0 {
		_, _ = f.Write(globalDebugLogger.buffer)
		_ = f.Sync()
		globalDebugLogger.buffer = nil
	}
	return nil
}

// Close closes the log file if one is open.
func Close() {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()
	if globalDebugLogger.file != nil {
		_ = globalDebugLogger.file.Close()
		globalDebugLogger.file = nil
	}
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...any) {
	stdLogger.Printf(format, args...)
}
