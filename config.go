// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package loginit

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrParsing reports failures that occur while decoding an options file.
	ErrParsing = errors.New("error parsing")
)

// optionsFile is the YAML representation of Options. The level is a
// severity name so files stay readable.
type optionsFile struct {
	Level        string   `yaml:"level,omitempty"`
	Suppress     []string `yaml:"suppress,omitempty"`
	HighPriority []string `yaml:"highPriority,omitempty"`
	LogFile      string   `yaml:"logFile,omitempty"`
	Root         string   `yaml:"root"`
	DisableColor bool     `yaml:"disableColor,omitempty"`
}

// OptionsFromFile loads Setup options from a YAML file. An absent level
// keeps the environment/default resolution; an invalid one is an error
// rather than a silent fallback.
func OptionsFromFile(path string) (Options, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %s", ErrParsing, err.Error())
	}

	var decoded optionsFile
	if err := yaml.Unmarshal(content, &decoded); err != nil {
		return Options{}, fmt.Errorf("%w: %s", ErrParsing, err.Error())
	}

	opts := Options{
		Suppress:     decoded.Suppress,
		HighPriority: decoded.HighPriority,
		LogFile:      decoded.LogFile,
		Root:         decoded.Root,
		DisableColor: decoded.DisableColor,
	}
	if decoded.Level != "" {
		level, err := ParseSeverity(decoded.Level)
		if err != nil {
			return Options{}, fmt.Errorf("%w: %s", ErrParsing, err.Error())
		}
		opts.Level = &level
	}

	return opts, nil
}
