package logger

import (
	"os"
	"sync"
)

var (
	globalLogger *Logger
	mu           sync.Mutex
)

// GetLogger returns the global logger instance
func GetLogger() *Logger {
	mu.Lock()
	defer mu.Unlock()

	if globalLogger == nil {
		defaultLevel := "warn"
		if os.Getenv("DEBUG") == "true" {
			defaultLevel = "debug"
		} else if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
			defaultLevel = lvl
		}

		globalLogger = New(Config{
			Level:  defaultLevel,
			Format: "json",
			Output: "stderr",
		})
	}
	return globalLogger
}

// SetLogger sets the global logger instance
func SetLogger(logger *Logger) {
	mu.Lock()
	defer mu.Unlock()
	globalLogger = logger
}

// WithField adds a field to the global logger
func WithField(key string, value interface{}) *Logger {
	return GetLogger().WithField(key, value)
}

// WithError adds an error to the global logger
func WithError(err error) *Logger {
	return GetLogger().WithError(err)
}
