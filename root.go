package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "portfolio",
		Short:         "Themed single-page portfolio with a 3D hero scene",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand serves the site
			return runServe(cmd, flags, nil)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "Path to a config file (default ./portfolio.yaml when present)")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newSceneCmd())
	cmd.AddCommand(newPaletteCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
