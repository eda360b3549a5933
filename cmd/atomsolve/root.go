package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "atomsolve",
		Short:        "Assign atom types to graph nodes with minimal interaction energy",
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(newSolveCmd(), newCheckCmd(), newGenerateCmd())

	return root
}
