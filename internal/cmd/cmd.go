// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"errors"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mia-platform/loginit"
)

const (
	emitCmdUsage = "emit"
	emitCmdShort = "configure logging and emit sample records"
	emitCmdLong  = `Configure the process-wide logging facility and emit sample records
	at every severity from the root namespace, a child namespace and a
	simulated dependency, to show how the routing table filters them.`

	emitCmdExample = `# Show everything the root namespace produces, silence a dependency
	loginit emit --log-level trace --suppress noisy.dependency

	# Mirror the console output into a file
	loginit emit --log-file /tmp/loginit.log`

	crashCmdUsage = "crash [message]"
	crashCmdShort = "configure logging and raise a panic"
	crashCmdLong  = `Configure the process-wide logging facility and then panic, to show
	the panic bridge logging the payload at ERROR severity before the
	process exits with status 1. The optional argument becomes the panic
	payload; with --opaque the payload is a non-textual value.`

	crashCmdExample = `# Panic with a textual payload
	loginit crash "something broke"

	# Panic with a payload that is not a string
	loginit crash --opaque`
)

// EmitCmd returns the Cobra command that demonstrates severity routing.
func EmitCmd() *cobra.Command {
	flags := &flags{}
	cmd := &cobra.Command{
		Use:     emitCmdUsage,
		Short:   heredoc.Doc(emitCmdShort),
		Long:    heredoc.Doc(emitCmdLong),
		Example: heredoc.Doc(emitCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		Args:              cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			opts, err := flags.toOptions()
			if err != nil {
				return err
			}

			loginit.Setup(opts)
			emitSamples(opts.Root)
			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// CrashCmd returns the Cobra command that demonstrates the panic bridge.
func CrashCmd() *cobra.Command {
	flags := &flags{}
	opaque := false

	cmd := &cobra.Command{
		Use:     crashCmdUsage,
		Short:   heredoc.Doc(crashCmdShort),
		Long:    heredoc.Doc(crashCmdLong),
		Example: heredoc.Doc(crashCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		Args:              cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			opts, err := flags.toOptions()
			if err != nil {
				return err
			}
			loginit.Setup(opts)
			defer loginit.CatchPanic()

			if opaque {
				panic(struct{ Code int }{Code: 42})
			}

			message := "deliberate crash"
			if len(args) == 1 {
				message = args[0]
			}
			panic(message)
		},
	}

	flags.addFlags(cmd)
	cmd.Flags().BoolVar(&opaque, "opaque", false, "Panic with a non-textual payload.")
	return cmd
}

// emitSamples produces one record per severity from three namespaces so
// the effect of the routing table is visible on the console.
func emitSamples(root string) {
	rootLogger := loginit.New(root)
	childLogger := rootLogger.WithName("worker")
	dependencyLogger := loginit.New("somedependency")

	for _, logger := range []loginit.Logger{rootLogger, childLogger, dependencyLogger} {
		logger.Trace("sample record")
		logger.Debug("sample record")
		logger.Info("sample record", "answer", 42)
		logger.Warn("sample record")
		logger.Error("sample record", "cause", errors.New("sample failure"))
	}
}
