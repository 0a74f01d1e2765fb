package common

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// LoggerWrapper is a thin wrapper around a leveled key/value logger.
// Verbosity is a small integer: 0 logs only essentials, higher values enable
// progressively chattier Info output, and >= 2 also enables Debug.
type LoggerWrapper struct {
	verbosity int
	logger    *log.Logger
}

// MakeLogger creates a logger writing to fileName.
// "stderr" and "stdout" are special names. An empty fileName discards all
// output: the wrapper shadows a real compiler and must stay silent unless a
// debug sink was explicitly requested.
func MakeLogger(fileName string, verbosity int, appendMode bool) (*LoggerWrapper, error) {
	var w io.Writer
	switch fileName {
	case "":
		w = io.Discard
	case "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	default:
		flags := os.O_WRONLY | os.O_CREATE
		if appendMode {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		f, err := os.OpenFile(fileName, flags, 0644)
		if err != nil {
			return nil, err
		}
		w = f
	}

	logger := log.NewWithOptions(w, log.Options{ReportTimestamp: true})
	if verbosity >= 2 {
		logger.SetLevel(log.DebugLevel)
	}

	return &LoggerWrapper{verbosity: verbosity, logger: logger}, nil
}

// MakeDiscardLogger returns a logger that drops everything.
// Packages use it as the initial value of their logger singletons, so that
// code paths reached before explicit logger setup (and unit tests) don't write anywhere.
func MakeDiscardLogger() *LoggerWrapper {
	return &LoggerWrapper{logger: log.New(io.Discard)}
}

func (l *LoggerWrapper) Info(verbosity int, msg string, keyvals ...any) {
	if verbosity > l.verbosity {
		return
	}
	l.logger.Info(msg, keyvals...)
}

func (l *LoggerWrapper) Debug(msg string, keyvals ...any) {
	l.logger.Debug(msg, keyvals...)
}

func (l *LoggerWrapper) Warn(msg string, keyvals ...any) {
	l.logger.Warn(msg, keyvals...)
}

func (l *LoggerWrapper) Error(msg string, keyvals ...any) {
	l.logger.Error(msg, keyvals...)
}
