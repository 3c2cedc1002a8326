package logger

import (
	"os"
	"sync"
)

var (
	mu           sync.RWMutex
	globalLogger *Logger
)

// GetLogger returns the process-wide logger, building a JSON logger on
// stderr from WORDSTAT_LOG_LEVEL / DEBUG the first time it is needed.
func GetLogger() *Logger {
	mu.RLock()
	l := globalLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if globalLogger == nil {
		level := "warn"
		if os.Getenv("DEBUG") == "true" {
			level = "debug"
		} else if v := os.Getenv("WORDSTAT_LOG_LEVEL"); v != "" {
			level = v
		}
		globalLogger = New(Config{Level: level, Format: "json", Output: "stderr"})
	}
	return globalLogger
}

// SetLogger replaces the process-wide logger
func SetLogger(logger *Logger) {
	mu.Lock()
	globalLogger = logger
	mu.Unlock()
}

// WithField adds a field to the global logger
func WithField(key string, value interface{}) *Logger {
	return GetLogger().WithField(key, value)
}

// WithError adds an error to the global logger
func WithError(err error) *Logger {
	return GetLogger().WithError(err)
}
