// Package logging provides session-scoped file logging for webpilot
// components. Every component of one process run logs into the same file
// under ~/.webpilot/logs/, named after a per-run session id, so a whole
// browsing session can be replayed from a single log.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	sessionID     string
	sessionIDOnce sync.Once

	logDir     string
	logDirOnce sync.Once
	logDirErr  error
)

// SessionID returns the id shared by all loggers of this process run.
func SessionID() string {
	sessionIDOnce.Do(func() {
		sessionID = uuid.New().String()
	})
	return sessionID
}

func ensureLogDir() (string, error) {
	logDirOnce.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			logDirErr = fmt.Errorf("resolve home directory: %w", err)
			return
		}
		logDir = filepath.Join(home, ".webpilot", "logs")
		if err := os.MkdirAll(logDir, 0o750); err != nil {
			logDirErr = fmt.Errorf("create log directory: %w", err)
		}
	})
	return logDir, logDirErr
}

// Logger writes leveled, timestamped entries for one component. All levels
// write unconditionally; there is no level filtering.
type Logger struct {
	component string
	file      *os.File
	out       *log.Logger
	path      string

	mu        sync.Mutex
	closeOnce sync.Once
}

// New creates a logger for the named component, appending to the session
// log file. When the file cannot be opened it returns a logger that writes
// to stderr together with the error, so callers may warn about degraded
// logging but keep running.
func New(component string) (*Logger, error) {
	dir, err := ensureLogDir()
	if err != nil {
		return stderrLogger(component, err), err
	}
	path := filepath.Join(dir, SessionID()+"-webpilot.log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		err = fmt.Errorf("open log file: %w", err)
		return stderrLogger(component, err), err
	}
	return &Logger{
		component: component,
		file:      file,
		out:       log.New(file, "", 0),
		path:      path,
	}, nil
}

func stderrLogger(component string, cause error) *Logger {
	out := log.New(os.Stderr, "", 0)
	l := &Logger{component: component, out: out}
	l.Warnf("file logging unavailable, using stderr: %v", cause)
	return l
}

func (l *Logger) write(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	l.out.Printf("[%s] [%s] [%s] %s", timestamp, l.component, level, fmt.Sprintf(format, args...))
}

// Debugf logs a debug-level entry.
func (l *Logger) Debugf(format string, args ...interface{}) { l.write("DEBUG", format, args...) }

// Infof logs an info-level entry.
func (l *Logger) Infof(format string, args ...interface{}) { l.write("INFO", format, args...) }

// Warnf logs a warning-level entry.
func (l *Logger) Warnf(format string, args ...interface{}) { l.write("WARN", format, args...) }

// Errorf logs an error-level entry.
func (l *Logger) Errorf(format string, args ...interface{}) { l.write("ERROR", format, args...) }

// Path returns the log file path, or "" when logging to stderr.
func (l *Logger) Path() string {
	return l.path
}

// Close closes the log file. Safe to call multiple times.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}
