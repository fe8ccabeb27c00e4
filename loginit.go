// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package loginit

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
)

// Options configures Setup. The zero value resolves the level from the
// environment, logs to the console only and attributes unqualified
// records to the empty root namespace.
type Options struct {
	// Level overrides the LOG_LEVEL environment variable when non-nil.
	Level *Severity
	// Suppress lists namespaces that must be fully silenced.
	Suppress []string
	// HighPriority lists namespaces that follow the resolved level
	// instead of the dependency baseline.
	HighPriority []string
	// LogFile appends every record to this path when set. Failure to
	// open it aborts the process.
	LogFile string
	// Root is the namespace of the main program; it always follows the
	// resolved level.
	Root string
	// DisableColor forces plain console output even on a terminal.
	DisableColor bool
}

// Setup states for the one-time initialization guard.
const (
	stateUninitialized int32 = iota
	stateInitializing
	stateInitialized
)

var (
	setupState atomic.Int32
	facility   atomic.Pointer[dispatcher]

	// Injection points for tests.
	consoleOut io.Writer = os.Stdout
	errOut     io.Writer = os.Stderr
	osExit               = os.Exit
)

// dispatcher routes records through the severity table to the sinks.
type dispatcher struct {
	routes *router
	sinks  []*sink
	root   string
}

func (d *dispatcher) dispatch(severity Severity, name string, msg string, args ...any) {
	if !d.routes.enabled(name, severity) {
		return
	}

	newRecord := record{
		time:     time.Now(),
		severity: severity,
		name:     name,
		message:  msg + encodeFields(args...),
	}
	for _, s := range d.sinks {
		s.write(newRecord)
	}
}

// emit routes a record through the configured facility. Before Setup has
// committed a facility only Warn and louder records are surfaced, as
// plain lines on stderr.
func emit(severity Severity, name string, msg string, args ...any) {
	if d := facility.Load(); d != nil {
		d.dispatch(severity, name, msg, args...)
		return
	}

	if severity >= Warn && severity != Off {
		fmt.Fprintf(errOut, "%s %s: %s%s\n", severity, name, msg, encodeFields(args...))
	}
}

// fail reports an unrecoverable initialization error and aborts the
// process.
func fail(format string, args ...any) {
	fmt.Fprintf(errOut, "loginit: "+format+"\n", args...)
	osExit(1)
}

// Setup configures the process-wide logging facility exactly once.
//
// The effective severity is Options.Level when set, otherwise the
// LOG_LEVEL environment variable (case-insensitive), otherwise Info.
// Namespaces not listed in Suppress or HighPriority follow a baseline:
// Trace, Error and Off propagate globally, every other level clamps
// dependencies to Warn. The root namespace always follows the effective
// severity. A namespace listed in both HighPriority and Suppress ends up
// silenced, because suppressions are applied last.
//
// Calling Setup a second time emits a warning and returns without
// touching the existing configuration. Failure to open the log file or
// to commit the facility aborts the process.
func Setup(opts Options) {
	if !setupState.CompareAndSwap(stateUninitialized, stateInitializing) {
		name := opts.Root
		if d := facility.Load(); d != nil {
			name = d.root
		}
		emit(Warn, name, "logging already initialized, Setup must be called exactly once")
		return
	}

	environmentVars := loadEnvironment()
	level := resolveLevel(opts.Level, environmentVars.Level)

	routes := newRouter(baselineFor(level))
	routes.set(opts.Root, level)
	for _, name := range opts.HighPriority {
		routes.set(name, level)
	}
	for _, name := range opts.Suppress {
		routes.set(name, Off)
	}

	sinks := []*sink{newConsoleSink(consoleOut, colorEnabled(opts, environmentVars))}
	if opts.LogFile != "" {
		logFile, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fail("cannot open log file %q: %v", opts.LogFile, err)
			return
		}
		// The file stays open for the process lifetime, there is no
		// teardown to pair it with.
		sinks = append(sinks, newFileSink(logFile))
	}

	newDispatcher := &dispatcher{routes: routes, sinks: sinks, root: opts.Root}
	if !facility.CompareAndSwap(nil, newDispatcher) {
		fail("logging facility already configured outside of Setup")
		return
	}

	armBridge(opts.Root)

	if !setupState.CompareAndSwap(stateInitializing, stateInitialized) {
		fail("initialization guard changed state during Setup")
		return
	}

	newDispatcher.dispatch(Debug, opts.Root, "logging initialized",
		"level", level,
		"runId", uuid.NewString(),
		"fileSink", opts.LogFile != "")
}

func resolveLevel(override *Severity, fromEnvironment string) Severity {
	if override != nil {
		return *override
	}
	if fromEnvironment != "" {
		if level, err := ParseSeverity(fromEnvironment); err == nil {
			return level
		}
	}
	return Info
}

// baselineFor derives the default severity for namespaces without an
// explicit entry: the extreme levels propagate globally, everything else
// clamps dependency noise to Warn.
func baselineFor(level Severity) Severity {
	switch level {
	case Trace, Error, Off:
		return level
	default:
		return Warn
	}
}

func colorEnabled(opts Options, environmentVars environment) bool {
	if opts.DisableColor || environmentVars.NoColor {
		return false
	}
	file, isFile := consoleOut.(*os.File)
	return isFile && isatty.IsTerminal(file.Fd())
}
