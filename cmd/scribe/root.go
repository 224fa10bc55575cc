package main

import (
	"io"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var presetFlag string
	var debugFlag bool

	ctx := newCommandContext(&configFlag, &presetFlag, &debugFlag)

	rootCmd := &cobra.Command{
		Use:           "scribe",
		Short:         "Scribe transcribes audio and video files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	ctx.errWriter = func() io.Writer { return rootCmd.ErrOrStderr() }

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Project configuration file path")
	rootCmd.PersistentFlags().StringVar(&presetFlag, "preset", "", "Named preset to apply")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log each applied setting while resolving configuration")

	rootCmd.AddCommand(newTranscribeCommand(ctx))
	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newQueueCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newPresetsCommand(ctx))
	rootCmd.AddCommand(newTestNotifyCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
