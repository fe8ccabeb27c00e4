// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mia-platform/loginit"
	"github.com/mia-platform/loginit/internal/info"
)

const (
	logLevelFlagName  = "log-level"
	logLevelFlagShort = "v"
	logLevelFlagUsage = "Severity for the root namespace (trace, debug, info, warn, error, off). Defaults to LOG_LEVEL or info."

	suppressFlagName  = "suppress"
	suppressFlagUsage = "Namespace to silence completely. Can be specified multiple times."

	elevateFlagName  = "elevate"
	elevateFlagUsage = "Namespace that follows the root severity instead of the dependency baseline. Can be specified multiple times."

	logFileFlagName  = "log-file"
	logFileFlagUsage = "Append every record to this file in addition to the console."

	rootFlagName  = "root"
	rootFlagUsage = "Name of the root namespace."

	noColorFlagName  = "no-color"
	noColorFlagUsage = "Disable ANSI colors on the console sink."

	optionsFileFlagName  = "options-file"
	optionsFileFlagShort = "f"
	optionsFileFlagUsage = "Load Setup options from a YAML file instead of the other flags."
)

// flags collects the CLI options shared by the emit and crash commands.
type flags struct {
	logLevel    string
	suppress    []string
	elevate     []string
	logFile     string
	root        string
	noColor     bool
	optionsFile string
}

// addFlags registers the CLI flags on cmd.
func (f *flags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.logLevel, logLevelFlagName, logLevelFlagShort, "", logLevelFlagUsage)
	cmd.Flags().StringArrayVar(&f.suppress, suppressFlagName, nil, suppressFlagUsage)
	cmd.Flags().StringArrayVar(&f.elevate, elevateFlagName, nil, elevateFlagUsage)
	cmd.Flags().StringVar(&f.logFile, logFileFlagName, "", logFileFlagUsage)
	cmd.Flags().StringVar(&f.root, rootFlagName, info.AppName, rootFlagUsage)
	cmd.Flags().BoolVar(&f.noColor, noColorFlagName, false, noColorFlagUsage)
	cmd.Flags().StringVarP(&f.optionsFile, optionsFileFlagName, optionsFileFlagShort, "", optionsFileFlagUsage)
}

// toOptions builds the Setup options from the parsed flags. The options
// file, when given, replaces every other logging flag.
func (f *flags) toOptions() (loginit.Options, error) {
	if f.optionsFile != "" {
		return loginit.OptionsFromFile(f.optionsFile)
	}

	opts := loginit.Options{
		Suppress:     f.suppress,
		HighPriority: f.elevate,
		LogFile:      f.logFile,
		Root:         f.root,
		DisableColor: f.noColor,
	}
	if f.logLevel != "" {
		level, err := loginit.ParseSeverity(f.logLevel)
		if err != nil {
			return loginit.Options{}, err
		}
		opts.Level = &level
	}

	return opts, nil
}
