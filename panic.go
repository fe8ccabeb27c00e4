// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package loginit

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
)

// panicHandler is armed by Setup as its last step; once armed it never
// changes for the process lifetime.
var panicHandler atomic.Pointer[func(payload any)]

// CatchPanic converts an unhandled panic into a logged Error record and
// a process exit with status 1. It must be deferred at the top of the
// goroutine it protects, typically in main:
//
//	func main() {
//		defer loginit.CatchPanic()
//		...
//	}
//
// Before Setup has run the bridge degrades to a plain stderr line and
// still terminates the process.
func CatchPanic() {
	payload := recover()
	if payload == nil {
		return
	}

	if handler := panicHandler.Load(); handler != nil {
		(*handler)(payload)
		return
	}

	fmt.Fprintf(errOut, "panic: %s\n", panicMessage(payload))
	osExit(1)
}

// Go runs fn on a new goroutine protected by the panic bridge.
func Go(fn func()) {
	go func() {
		defer CatchPanic()
		fn()
	}()
}

func armBridge(root string) {
	handler := bridgeHandler(root)
	panicHandler.Store(&handler)
}

func bridgeHandler(root string) func(payload any) {
	return func(payload any) {
		if file, line, found := panicOrigin(); found {
			emit(Debug, root, fmt.Sprintf("panic occurred at %s:%d", file, line))
		}
		emit(Error, root, panicMessage(payload))
		osExit(1)
	}
}

// panicMessage extracts a human-readable message from a panic payload:
// textual payloads pass through, everything else gets a debug-formatted
// representation.
func panicMessage(payload any) string {
	switch value := payload.(type) {
	case string:
		return value
	case error:
		return value.Error()
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprintf("%#v", payload)
	}
}

// panicOrigin walks the call stack looking for the frame that raised the
// panic, skipping the runtime internals between it and the recover.
func panicOrigin() (string, int, bool) {
	callers := make([]uintptr, 64)
	found := runtime.Callers(3, callers)
	frames := runtime.CallersFrames(callers[:found])

	seenPanic := false
	for {
		frame, more := frames.Next()
		if seenPanic && !strings.HasPrefix(frame.Function, "runtime.") {
			return frame.File, frame.Line, true
		}
		if frame.Function == "runtime.gopanic" {
			seenPanic = true
		}
		if !more {
			break
		}
	}

	return "", 0, false
}
