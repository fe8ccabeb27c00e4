// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package loginit configures process-wide structured logging in a single
// call. Setup resolves the severity from an explicit override or the
// LOG_LEVEL environment variable, routes namespaces through a per-name
// severity table, attaches console and optional file sinks, and arms a
// panic bridge that turns unhandled panics into logged errors followed by
// a controlled exit. Setup is a one-shot operation: calling it again
// warns and leaves the first configuration untouched.
package loginit
