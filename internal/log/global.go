package log

import (
	"sync"
)

// All quill commands share one process-wide logger, wired up by the
// root command once flags are parsed. It materializes lazily so code
// that logs before Execute still gets the stderr defaults.
var (
	globalMu sync.RWMutex
	global   *Logger
)

// SetDefaultLogger replaces the shared logger.
func SetDefaultLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = logger
}

// DefaultLogger returns the shared logger, creating one with the
// default configuration if none has been set.
func DefaultLogger() *Logger {
	globalMu.RLock()
	logger := global
	globalMu.RUnlock()
	if logger != nil {
		return logger
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global = Default()
	}
	return global
}
