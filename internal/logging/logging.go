// Package logging is the process-wide diagnostic logger. It is silent
// unless Configure enables it.
package logging

import (
	"sort"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Configure replaces the global logger. Verbose enables debug output on stderr.
func Configure(verbose bool) error {
	if !verbose {
		Set(zap.NewNop())
		return nil
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	config.DisableStacktrace = true
	l, err := config.Build()
	if err != nil {
		return err
	}
	Set(l)
	return nil
}

// Set installs l as the global logger.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Sync flushes buffered entries.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = logger.Sync()
}

func Info(message string, metadata map[string]any) {
	current().Info(message, fields(metadata)...)
}

func Debug(message string, metadata map[string]any) {
	current().Debug(message, fields(metadata)...)
}

func Warn(message string, metadata map[string]any) {
	current().Warn(message, fields(metadata)...)
}

func Error(message string, metadata map[string]any) {
	current().Error(message, fields(metadata)...)
}

func current() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func fields(metadata map[string]any) []zap.Field {
	if len(metadata) == 0 {
		return nil
	}
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		if err, ok := metadata[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, metadata[k]))
	}
	return out
}
