package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"mpeg2-bot/pkg/config"
)

// Logger wraps logrus so call sites stay decoupled from the backend.
type Logger struct {
	log *logrus.Logger
}

var (
	globalLogger *Logger
	globalMu     sync.RWMutex
)

// NewLogger builds a logger from the log section of the configuration.
func NewLogger(cfg *config.Config) *Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	level := logrus.InfoLevel
	if cfg != nil {
		if parsed, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
			level = parsed
		}
	}
	log.SetLevel(level)

	if cfg != nil && cfg.Log.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return &Logger{log: log}
}

// SetGlobalLogger installs the process-wide logger.
func SetGlobalLogger(l *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

func global() *logrus.Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l == nil {
		return logrus.StandardLogger()
	}
	return l.log
}

// Close flushes the logger; logrus writes synchronously so this is a no-op
// kept for symmetry with startup.
func (l *Logger) Close() {}

// Debug logs a message with structured fields.
func Debug(msg string, fields map[string]interface{}) {
	global().WithFields(fields).Debug(msg)
}

// Info logs a message with structured fields.
func Info(msg string, fields map[string]interface{}) {
	global().WithFields(fields).Info(msg)
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...interface{}) {
	global().Debugf(format, args...)
}

// Infof logs a formatted info message.
func Infof(format string, args ...interface{}) {
	global().Infof(format, args...)
}

// Warnf logs a formatted warning.
func Warnf(format string, args ...interface{}) {
	global().Warnf(format, args...)
}

// Errorf logs a formatted error.
func Errorf(format string, args ...interface{}) {
	global().Errorf(format, args...)
}

// Fatal logs the message and exits with a non-zero status.
func Fatal(msg string) {
	global().Fatal(msg)
}
