// Package logging configures the process-wide logrus logger for the command line hosts.
// Logs never go to stdout or stderr: the terminal belongs to the maze output.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	logDir      = "logs"
	logFileName = "mazegen.log"
	maxLogSize  = 10 * 1024 * 1024
)

// Setup routes logrus and the standard log package to logs/mazegen.log when debug is set,
// and discards everything otherwise. An oversized log is renamed with a timestamp first.
// Returns the open file for the caller to close, nil when logging is off or the file could
// not be opened.
func Setup(debug bool) *os.File {
	if !debug {
		discard()
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		discard()
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("mazegen-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		discard()
		return nil
	}

	logrus.SetOutput(f)
	logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	logrus.SetLevel(logrus.DebugLevel)
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

func discard() {
	logrus.SetOutput(io.Discard)
	logrus.SetLevel(logrus.PanicLevel)
	log.SetOutput(io.Discard)
}

// Run returns a logger entry tagged with a fresh run id
func Run(component string) (*logrus.Entry, uuid.UUID) {
	id := uuid.New()
	return logrus.WithFields(logrus.Fields{
		"run":       id.String(),
		"component": component,
	}), id
}
