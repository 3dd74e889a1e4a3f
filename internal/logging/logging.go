// Package logging provides leveled helpers on top of the standard logger.
//
// The TUI owns the terminal, so Setup redirects the standard logger to a
// file. The level comes from SetLevel (config) unless DEBUG or LOG_LEVEL
// are set in the environment.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	// LevelDebug is the debug log level
	LevelDebug LogLevel = iota
	// LevelInfo is the info log level
	LevelInfo
	// LevelWarn is the warning log level
	LevelWarn
	// LevelError is the error log level
	LevelError
)

var (
	mu           sync.RWMutex
	currentLevel = LevelInfo
	envChecked   bool
	envOverride  bool
)

// ParseLevel maps a level name to a LogLevel. Unknown names are info.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// initLevel reads DEBUG and LOG_LEVEL once
func initLevel() {
	mu.Lock()
	defer mu.Unlock()
	if envChecked {
		return
	}
	envChecked = true

	if debug := os.Getenv("DEBUG"); debug != "" {
		switch strings.ToLower(debug) {
		case "1", "true", "yes", "on":
			currentLevel = LevelDebug
			envOverride = true
			return
		}
	}
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		currentLevel = ParseLevel(levelStr)
		envOverride = true
	}
}

// SetLevel sets the level from configuration. The environment wins.
func SetLevel(name string) {
	initLevel()
	mu.Lock()
	defer mu.Unlock()
	if envOverride {
		return
	}
	currentLevel = ParseLevel(name)
}

// GetLevel returns the current log level
func GetLevel() LogLevel {
	initLevel()
	mu.RLock()
	defer mu.RUnlock()
	return currentLevel
}

// IsDebugEnabled returns true if debug logging is enabled
func IsDebugEnabled() bool {
	return GetLevel() <= LevelDebug
}

// Setup sends the standard logger to path. An empty path discards output.
// Callers close the returned file on exit.
func Setup(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	return f, nil
}

// Debug logs a debug message (only if DEBUG=true or LOG_LEVEL=debug)
func Debug(format string, args ...interface{}) {
	if GetLevel() <= LevelDebug {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	if GetLevel() <= LevelInfo {
		log.Printf("[INFO] "+format, args...)
	}
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	if GetLevel() <= LevelWarn {
		log.Printf("[WARN] "+format, args...)
	}
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	if GetLevel() <= LevelError {
		log.Printf("[ERROR] "+format, args...)
	}
}

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

// reset is used by tests to re-read the environment
func reset() {
	mu.Lock()
	defer mu.Unlock()
	envChecked = false
	envOverride = false
	currentLevel = LevelInfo
}
