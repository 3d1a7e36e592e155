package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:   "bindery [flags] -- <audible-util args>",
		Short: "Terminal front-end for audible-util conversions",
		Long: `bindery runs an audible-util conversion with machine-readable output,
renders live per-chapter progress, and exits with the tool's own code.

Trailing arguments are forwarded to audible-util verbatim; bindery appends
the machine-readable flag itself.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runConversion(cmd, configFlag, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newRunCommand(&configFlag))
	rootCmd.AddCommand(newReplayCommand(&configFlag))
	rootCmd.AddCommand(newConfigCommand(&configFlag))

	return rootCmd
}
