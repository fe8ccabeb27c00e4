// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package loginit

// Logger describes the interface that must be implemented by all loggers
type Logger interface {
	// WithName returns a new Logger instance with the specified name
	// appended to the namespace.
	WithName(name string) Logger

	// Trace emit a message and key/value pairs at the TRACE level.
	Trace(msg string, args ...any)

	// Debug emit a message and key/value pairs at the DEBUG level.
	Debug(msg string, args ...any)

	// Info emit a message and key/value pairs at the INFO level.
	Info(msg string, args ...any)

	// Warn emit a message and key/value pairs at the WARN level.
	Warn(msg string, args ...any)

	// Error emit a message and key/value pairs at the ERROR level.
	Error(msg string, args ...any)
}

var (
	// nullLogger is a logger that discards all log messages.
	nullLogger Logger = discardLogger{}
)

// Make sure that instance is a Logger.
var _ Logger = &instance{}

// instance is a Logger implementation bound to a namespace. Severity
// filtering happens in the routing table, not here, so instances are
// cheap to create and safe to share.
type instance struct {
	name string
}

// New creates a Logger attributed to the given namespace.
func New(name string) Logger {
	return &instance{name: name}
}

func (i *instance) WithName(name string) Logger {
	if i.name == "" {
		return &instance{name: name}
	}
	return &instance{name: i.name + "." + name}
}

func (i *instance) Trace(msg string, args ...any) {
	emit(Trace, i.name, msg, args...)
}

func (i *instance) Debug(msg string, args ...any) {
	emit(Debug, i.name, msg, args...)
}

func (i *instance) Info(msg string, args ...any) {
	emit(Info, i.name, msg, args...)
}

func (i *instance) Warn(msg string, args ...any) {
	emit(Warn, i.name, msg, args...)
}

func (i *instance) Error(msg string, args ...any) {
	emit(Error, i.name, msg, args...)
}

// discardLogger drops every record; it backs FromContext when no logger
// was stored.
type discardLogger struct{}

func (discardLogger) WithName(string) Logger { return discardLogger{} }
func (discardLogger) Trace(string, ...any)   {}
func (discardLogger) Debug(string, ...any)   {}
func (discardLogger) Info(string, ...any)    {}
func (discardLogger) Warn(string, ...any)    {}
func (discardLogger) Error(string, ...any)   {}
