package core

import (
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger defines the output interface used by the pipeline components.
type Logger interface {
	Info(...interface{})
	Infof(string, ...interface{})
	Warn(...interface{})
	Warnf(string, ...interface{})
	Error(...interface{})
	Errorf(string, ...interface{})
	Critical(...interface{})
	Criticalf(string, ...interface{})
}

// DefaultLogger is the default logger used by a pipeline. It wraps a logrus entry so that
// every line carries the name of the component which emitted it.
type DefaultLogger struct {
	E *logrus.Entry
}

// NewLogger returns a configured default logger which writes to stderr.
// stdout is reserved for the analysis results.
func NewLogger() *DefaultLogger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return &DefaultLogger{E: logrus.NewEntry(l)}
}

// With returns a child logger tagged with the specified component name.
func (d *DefaultLogger) With(component string) *DefaultLogger {
	return &DefaultLogger{E: d.E.WithField("component", component)}
}

// SetOutput redirects all the levels to the given writer.
func (d *DefaultLogger) SetOutput(w io.Writer) {
	d.E.Logger.SetOutput(w)
}

// SetQuiet hides everything below warnings.
func (d *DefaultLogger) SetQuiet(quiet bool) {
	if quiet {
		d.E.Logger.SetLevel(logrus.WarnLevel)
	} else {
		d.E.Logger.SetLevel(logrus.InfoLevel)
	}
}

// Info writes to info logger
func (d *DefaultLogger) Info(v ...interface{}) { d.E.Info(v...) }

// Infof writes to info logger
func (d *DefaultLogger) Infof(f string, v ...interface{}) { d.E.Infof(f, v...) }

// Warn writes to the warning logger
func (d *DefaultLogger) Warn(v ...interface{}) { d.E.Warn(v...) }

// Warnf writes to the warning logger
func (d *DefaultLogger) Warnf(f string, v ...interface{}) { d.E.Warnf(f, v...) }

// Error writes to the error logger
func (d *DefaultLogger) Error(v ...interface{}) { d.E.Error(v...) }

// Errorf writes to the error logger
func (d *DefaultLogger) Errorf(f string, v ...interface{}) { d.E.Errorf(f, v...) }

// Critical writes to the error logger with attached stack trace
func (d *DefaultLogger) Critical(v ...interface{}) {
	d.E.WithField("stack", stack()).Error(v...)
}

// Criticalf writes to the error logger with attached stack trace
func (d *DefaultLogger) Criticalf(f string, v ...interface{}) {
	d.E.WithField("stack", stack()).Errorf(f, v...)
}

// stack drops the frames of the logger itself.
func stack() string {
	lines := strings.Split(string(debug.Stack()), "\n")
	// goroutine header + (debug.Stack, stack, Critical) * 2 lines each
	const skip = 1 + 3*2
	if len(lines) > skip {
		lines = append(lines[:1], lines[skip:]...)
	}
	return strings.Join(lines, "\n")
}
