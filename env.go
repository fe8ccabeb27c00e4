// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package loginit

import (
	"github.com/caarlos0/env/v11"
)

// environment holds the environment variables consulted during Setup.
// LOG_LEVEL is only used when Options.Level is nil; NO_COLOR follows the
// no-color.org convention.
type environment struct {
	Level   string `env:"LOG_LEVEL"`
	NoColor bool   `env:"NO_COLOR"`
}

// loadEnvironment reads the environment best-effort: a malformed
// variable falls back to the zero configuration instead of failing,
// Setup has its own defaults for every field.
func loadEnvironment() environment {
	var environmentVars environment
	if err := env.Parse(&environmentVars); err != nil {
		return environment{}
	}
	return environmentVars
}
