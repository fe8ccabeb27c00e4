// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package loginit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvironment(t *testing.T) {
	t.Run("reads log level and color preference", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "warn")
		t.Setenv("NO_COLOR", "1")

		environmentVars := loadEnvironment()
		assert.Equal(t, "warn", environmentVars.Level)
		assert.True(t, environmentVars.NoColor)
	})

	t.Run("unset variables leave the zero value", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("NO_COLOR", "")

		environmentVars := loadEnvironment()
		assert.Empty(t, environmentVars.Level)
		assert.False(t, environmentVars.NoColor)
	})

	t.Run("malformed color flag falls back to defaults", func(t *testing.T) {
		t.Setenv("NO_COLOR", "maybe")

		environmentVars := loadEnvironment()
		assert.False(t, environmentVars.NoColor)
	})
}

func TestResolveLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Trace, resolveLevel(severityPointer(Trace), "error"))
	assert.Equal(t, Debug, resolveLevel(nil, "dEbUg"))
	assert.Equal(t, Info, resolveLevel(nil, ""))
	assert.Equal(t, Info, resolveLevel(nil, "loudest"))
}
