// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package loginit

import (
	"errors"
	"fmt"
	"strings"
)

// Severity is the verbosity level of a log record, ordered from Trace
// (most verbose) to Off (silences everything).
type Severity int

const (
	Trace Severity = iota
	Debug
	Info
	Warn
	Error
	Off
)

var (
	// ErrUnknownSeverity reports a severity name that cannot be parsed.
	ErrUnknownSeverity = errors.New("unknown severity")
)

var severityNames = map[Severity]string{
	Trace: "TRACE",
	Debug: "DEBUG",
	Info:  "INFO",
	Warn:  "WARN",
	Error: "ERROR",
	Off:   "OFF",
}

func (s Severity) String() string {
	if name, found := severityNames[s]; found {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// ParseSeverity parses a case-insensitive severity name.
func ParseSeverity(value string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "TRACE":
		return Trace, nil
	case "DEBUG":
		return Debug, nil
	case "INFO":
		return Info, nil
	case "WARN":
		return Warn, nil
	case "ERROR":
		return Error, nil
	case "OFF":
		return Off, nil
	}

	return Info, fmt.Errorf("%w: %q", ErrUnknownSeverity, value)
}
