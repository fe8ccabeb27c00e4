// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package loginit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
)

// record is a single fully-assembled log line waiting to be rendered by
// the sinks.
type record struct {
	time     time.Time
	severity Severity
	name     string
	message  string
}

var (
	timeColor      = forcedColor(color.FgBlue)
	namespaceColor = forcedColor(color.FgGreen)

	severityColors = map[Severity]*color.Color{
		Trace: forcedColor(color.FgHiBlack),
		Debug: forcedColor(color.FgWhite),
		Info:  forcedColor(color.FgGreen),
		Warn:  forcedColor(color.FgYellow),
		Error: forcedColor(color.FgRed),
	}
)

// forcedColor returns a color that ignores the package-global tty
// detection: the sink decides whether colors are wanted, not the writer.
func forcedColor(attribute color.Attribute) *color.Color {
	newColor := color.New(attribute)
	newColor.EnableColor()
	return newColor
}

// render formats the record as a single line, with or without ANSI
// colors. The colored and plain renderings carry identical content so
// file sinks match console sinks byte for byte once colors are stripped.
func (r record) render(colored bool) string {
	timestamp := r.time.UTC().Format(time.RFC3339)
	severity := r.severity.String()

	if !colored {
		return fmt.Sprintf("[%s %s %s] %s", timestamp, severity, r.name, r.message)
	}

	severityColor, found := severityColors[r.severity]
	if !found {
		severityColor = severityColors[Info]
	}

	return fmt.Sprintf("[%s %s %s] %s",
		timeColor.Sprint(timestamp),
		severityColor.Sprint(severity),
		namespaceColor.Sprint(r.name),
		r.message)
}

// encodeFields renders key/value pairs in the hclog style, quoting
// values that contain whitespace. An odd trailing argument is kept
// visible instead of dropped.
func encodeFields(args ...any) string {
	if len(args) == 0 {
		return ""
	}

	builder := new(strings.Builder)
	for i := 0; i+1 < len(args); i += 2 {
		value := fmt.Sprintf("%v", args[i+1])
		if strings.ContainsAny(value, " \t") {
			value = strconv.Quote(value)
		}
		fmt.Fprintf(builder, " %v=%s", args[i], value)
	}
	if len(args)%2 != 0 {
		fmt.Fprintf(builder, " EXTRA_VALUE_AT_END=%v", args[len(args)-1])
	}

	return builder.String()
}
