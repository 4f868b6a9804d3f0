package statuslog

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Logger appends status lines to a file.
type Logger struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// Open creates a fresh status file at path, removing any previous one.
func Open(path string, logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Logger{path: path, logger: logger}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Error("remove status log", "path", path, "error", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("create status log dir", "path", dir, "error", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		logger.Error("create status log", "path", path, "error", err)
		return l
	}
	f.Close()
	return l
}

// Path returns the file path.
func (l *Logger) Path() string {
	return l.path
}

// LogStatus appends msg as one line.
func (l *Logger) LogStatus(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		l.logger.Error("open status log", "path", l.path, "error", err)
		return
	}
	defer f.Close()

	if _, err := f.WriteString(msg + "\n"); err != nil {
		l.logger.Error("write status log", "path", l.path, "message", msg, "error", err)
	}
}
