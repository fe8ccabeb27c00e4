// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package loginit

import (
	"io"
	stdlog "log"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Hclog returns an hclog.Logger that routes every record through the
// facility configured by Setup, so hashicorp-ecosystem libraries share
// the same sinks and namespace severity table as the rest of the
// process.
func Hclog(name string) hclog.Logger {
	return &hclogBridge{name: name}
}

// Make sure the bridge satisfies the full hclog contract.
var _ hclog.Logger = &hclogBridge{}

type hclogBridge struct {
	name    string
	implied []any
}

func severityFromHclog(level hclog.Level) Severity {
	switch level {
	case hclog.Trace:
		return Trace
	case hclog.Debug:
		return Debug
	case hclog.Warn:
		return Warn
	case hclog.Error:
		return Error
	case hclog.Off:
		return Off
	default: // NoLevel and Info
		return Info
	}
}

func hclogFromSeverity(severity Severity) hclog.Level {
	switch severity {
	case Trace:
		return hclog.Trace
	case Debug:
		return hclog.Debug
	case Warn:
		return hclog.Warn
	case Error:
		return hclog.Error
	case Off:
		return hclog.Off
	default:
		return hclog.Info
	}
}

// routedThreshold resolves the namespace threshold, falling back to the
// pre-initialization behavior when no facility is committed yet.
func routedThreshold(name string) Severity {
	if d := facility.Load(); d != nil {
		return d.routes.effective(name)
	}
	return Warn
}

func (b *hclogBridge) Log(level hclog.Level, msg string, args ...any) {
	combined := make([]any, 0, len(b.implied)+len(args))
	combined = append(combined, b.implied...)
	combined = append(combined, args...)
	emit(severityFromHclog(level), b.name, msg, combined...)
}

func (b *hclogBridge) Trace(msg string, args ...any) { b.Log(hclog.Trace, msg, args...) }
func (b *hclogBridge) Debug(msg string, args ...any) { b.Log(hclog.Debug, msg, args...) }
func (b *hclogBridge) Info(msg string, args ...any)  { b.Log(hclog.Info, msg, args...) }
func (b *hclogBridge) Warn(msg string, args ...any)  { b.Log(hclog.Warn, msg, args...) }
func (b *hclogBridge) Error(msg string, args ...any) { b.Log(hclog.Error, msg, args...) }

func (b *hclogBridge) IsTrace() bool { return b.wouldEmit(Trace) }
func (b *hclogBridge) IsDebug() bool { return b.wouldEmit(Debug) }
func (b *hclogBridge) IsInfo() bool  { return b.wouldEmit(Info) }
func (b *hclogBridge) IsWarn() bool  { return b.wouldEmit(Warn) }
func (b *hclogBridge) IsError() bool { return b.wouldEmit(Error) }

func (b *hclogBridge) wouldEmit(severity Severity) bool {
	threshold := routedThreshold(b.name)
	return threshold != Off && severity >= threshold
}

func (b *hclogBridge) ImpliedArgs() []any { return b.implied }

func (b *hclogBridge) With(args ...any) hclog.Logger {
	implied := make([]any, 0, len(b.implied)+len(args))
	implied = append(implied, b.implied...)
	implied = append(implied, args...)
	return &hclogBridge{name: b.name, implied: implied}
}

func (b *hclogBridge) Name() string { return b.name }

func (b *hclogBridge) Named(name string) hclog.Logger {
	if b.name == "" {
		return b.ResetNamed(name)
	}
	return b.ResetNamed(b.name + "." + name)
}

func (b *hclogBridge) ResetNamed(name string) hclog.Logger {
	return &hclogBridge{name: name, implied: b.implied}
}

// SetLevel writes the namespace threshold straight into the routing
// table, matching the semantics a native hclog logger would have.
func (b *hclogBridge) SetLevel(level hclog.Level) {
	if d := facility.Load(); d != nil {
		d.routes.set(b.name, severityFromHclog(level))
	}
}

func (b *hclogBridge) GetLevel() hclog.Level {
	return hclogFromSeverity(routedThreshold(b.name))
}

func (b *hclogBridge) StandardLogger(opts *hclog.StandardLoggerOptions) *stdlog.Logger {
	return stdlog.New(b.StandardWriter(opts), "", 0)
}

func (b *hclogBridge) StandardWriter(*hclog.StandardLoggerOptions) io.Writer {
	return &stdlogWriter{bridge: b}
}

// stdlogWriter adapts standard-library log output: a leading "[LEVEL] "
// tag selects the severity, anything else is emitted at Info.
type stdlogWriter struct {
	bridge *hclogBridge
}

func (w *stdlogWriter) Write(data []byte) (int, error) {
	msg := strings.TrimRight(string(data), "\n")
	severity := Info

	if strings.HasPrefix(msg, "[") {
		if end := strings.Index(msg, "] "); end > 0 {
			if parsed, err := ParseSeverity(msg[1:end]); err == nil {
				severity = parsed
				msg = msg[end+2:]
			}
		}
	}

	emit(severity, w.bridge.name, msg)
	return len(data), nil
}
