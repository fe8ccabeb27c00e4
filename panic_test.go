// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package loginit

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicBridgeTextPayload(t *testing.T) {
	console, _ := resetState(t)
	exitCode := -1
	osExit = func(code int) { exitCode = code }

	Setup(Options{Level: severityPointer(Trace), Root: "app"})

	func() {
		defer CatchPanic()
		panic("boom")
	}()

	require.Equal(t, 1, exitCode)
	assert.Contains(t, console.String(), "ERROR app] boom")
	assert.Contains(t, console.String(), "panic occurred at ")
	assert.Contains(t, console.String(), "panic_test.go:")
}

func TestPanicBridgeErrorPayload(t *testing.T) {
	console, _ := resetState(t)
	exitCode := -1
	osExit = func(code int) { exitCode = code }

	Setup(Options{Level: severityPointer(Trace), Root: "app"})

	func() {
		defer CatchPanic()
		panic(errors.New("wrapped failure"))
	}()

	require.Equal(t, 1, exitCode)
	assert.Contains(t, console.String(), "ERROR app] wrapped failure")
}

func TestPanicBridgeOpaquePayload(t *testing.T) {
	console, _ := resetState(t)
	exitCode := -1
	osExit = func(code int) { exitCode = code }

	Setup(Options{Level: severityPointer(Trace), Root: "app"})

	require.NotPanics(t, func() {
		func() {
			defer CatchPanic()
			panic(struct{ Code int }{Code: 7})
		}()
	})

	require.Equal(t, 1, exitCode)
	assert.Contains(t, console.String(), "ERROR app]")
	assert.Contains(t, console.String(), "Code:7")
}

func TestPanicBridgeLocationIsDiagnosticOnly(t *testing.T) {
	console, _ := resetState(t)
	exitCode := -1
	osExit = func(code int) { exitCode = code }

	// At Info the Debug location record is filtered while the Error
	// record still goes through.
	Setup(Options{Level: severityPointer(Info), Root: "app"})

	func() {
		defer CatchPanic()
		panic("boom")
	}()

	require.Equal(t, 1, exitCode)
	assert.Contains(t, console.String(), "ERROR app] boom")
	assert.NotContains(t, console.String(), "panic occurred at ")
}

func TestPanicBridgeBeforeSetup(t *testing.T) {
	_, stderr := resetState(t)
	exitCode := -1
	osExit = func(code int) { exitCode = code }

	func() {
		defer CatchPanic()
		panic("early crash")
	}()

	require.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "panic: early crash")
}

func TestCatchPanicWithoutPanic(t *testing.T) {
	resetState(t)
	exitCode := -1
	osExit = func(code int) { exitCode = code }

	func() {
		defer CatchPanic()
	}()

	assert.Equal(t, -1, exitCode, "no panic means no exit")
}

func TestGoWrapsGoroutines(t *testing.T) {
	console, _ := resetState(t)

	exitCode := -1
	done := make(chan struct{})
	var once sync.Once
	osExit = func(code int) {
		exitCode = code
		once.Do(func() { close(done) })
	}

	Setup(Options{Level: severityPointer(Trace), Root: "app"})

	Go(func() {
		panic("goroutine boom")
	})
	<-done

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, console.String(), "ERROR app] goroutine boom")
}

func TestPanicMessageExtraction(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "boom", panicMessage("boom"))
	assert.Equal(t, "failure", panicMessage(errors.New("failure")))
	assert.Equal(t, "7m30s", panicMessage(stringerPayload{}))
	assert.Contains(t, panicMessage(struct{ Code int }{Code: 42}), "Code:42")
	assert.Equal(t, "<nil>", panicMessage(nil))
}

type stringerPayload struct{}

func (stringerPayload) String() string { return "7m30s" }
