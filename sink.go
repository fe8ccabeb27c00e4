// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package loginit

import (
	"io"
	"sync"
)

// sink is a serialized output destination. The mutex guarantees that
// concurrent records never interleave within a single line.
type sink struct {
	mu      sync.Mutex
	writer  io.Writer
	colored bool
}

func newConsoleSink(writer io.Writer, colored bool) *sink {
	return &sink{writer: writer, colored: colored}
}

// newFileSink wraps an already-opened file. File output is always plain
// text; colors are console decoration only.
func newFileSink(writer io.Writer) *sink {
	return &sink{writer: writer}
}

func (s *sink) write(r record) {
	line := r.render(s.colored) + "\n"

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.writer, line)
}
