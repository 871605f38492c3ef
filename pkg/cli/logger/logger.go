package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	log     = newDiscard()
	logFile *os.File
)

func newDiscard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init opens a timestamped log file under dir. The terminal belongs to the
// TUI, so nothing is ever written to stdout or stderr once a file is open.
// Until Init is called log calls are discarded.
func Init(dir, level string) error {
	if dir == "" {
		dir = "tmp"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	name := filepath.Join(dir, fmt.Sprintf("cli-%s.log", time.Now().Format("20060102-150405")))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l := logrus.New()
	l.SetOutput(f)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	CloseLog()
	log = l
	logFile = f
	return nil
}

// Logger exposes the underlying logger for packages that take a
// *logrus.Logger, such as the API client.
func Logger() *logrus.Logger {
	return log
}

// Log writes a debug message
func Log(format string, v ...interface{}) {
	log.Debugf(format, v...)
}

// Info writes an informational message
func Info(format string, v ...interface{}) {
	log.Infof(format, v...)
}

// LogError writes an error log message
func LogError(err error, format string, v ...interface{}) {
	log.WithError(err).Errorf(format, v...)
}

// WithFields starts a structured entry
func WithFields(fields logrus.Fields) *logrus.Entry {
	return log.WithFields(fields)
}

// CloseLog closes the log file
func CloseLog() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
