// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package loginit

import (
	"strings"
	"sync"
)

// router holds the per-namespace severity table assembled by Setup.
// Namespaces are hierarchical: "app.db.pool" falls back to "app.db" and
// then "app" before the baseline applies.
type router struct {
	mu       sync.RWMutex
	baseline Severity
	levels   map[string]Severity
}

func newRouter(baseline Severity) *router {
	return &router{
		baseline: baseline,
		levels:   map[string]Severity{},
	}
}

func (r *router) set(name string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.levels[name] = severity
}

// effective resolves the severity threshold for a namespace: exact
// match first, then the longest dot-separated prefix, then the baseline.
func (r *router) effective(name string) Severity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for current := name; ; {
		if severity, found := r.levels[current]; found {
			return severity
		}
		separator := strings.LastIndex(current, ".")
		if separator < 0 {
			break
		}
		current = current[:separator]
	}

	return r.baseline
}

// enabled reports whether a record at the given severity should be
// emitted for the namespace.
func (r *router) enabled(name string, severity Severity) bool {
	threshold := r.effective(name)
	return threshold != Off && severity >= threshold
}
