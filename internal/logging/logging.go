package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogFile = "tiledu.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	logger       *zap.Logger
)

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	current().Error("error", zap.Error(err))
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are being written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	if payload == nil {
		current().Info(event)
		return
	}
	current().Info(event, zap.Any("payload", payload))
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing. The file itself
// is only opened once something is logged.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	resetLocked()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Sync flushes buffered entries.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if logger != nil {
		_ = logger.Sync()
	}
}

func resetLocked() {
	if logger != nil {
		_ = logger.Sync()
		logger = nil
	}
}

func current() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger != nil {
		return logger
	}

	encoder := zap.NewProductionEncoderConfig()
	encoder.TimeKey = "time"
	encoder.MessageKey = "event"
	encoder.EncodeTime = zapcore.ISO8601TimeEncoder

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(zapcore.InfoLevel),
		Encoding:          "json",
		EncoderConfig:     encoder,
		OutputPaths:       []string{logPath},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: true,
	}
	built, err := config.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		logger = zap.NewNop()
		return logger
	}
	logger = built
	return logger
}
