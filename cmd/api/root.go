package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(version, buildTime, gitCommit string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "artgen",
		Short:        "artgen generates images from text prompts and pins them to IPFS.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newVersionCmd(version, buildTime, gitCommit))
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newInitConfigCmd())
	return cmd
}
