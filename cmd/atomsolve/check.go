package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/atomsolve/assign"
	"github.com/katalvlaran/atomsolve/codec"
)

func newCheckCmd() *cobra.Command {
	var example, solution string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a solution file and print the energy of its last solution",
		RunE: func(cmd *cobra.Command, _ []string) error {
			inst, err := codec.LoadInstance(example)
			if err != nil {
				return err
			}
			f, err := os.Open(solution)
			if err != nil {
				return err
			}
			defer f.Close()

			sols, err := codec.ReadSolutions(f)
			if err != nil {
				return err
			}
			var energy int64
			for i, sol := range sols {
				if energy, err = assign.Check(inst, sol); err != nil {
					return fmt.Errorf("solution %d (0-indexed): %w", i, err)
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "OK: energy of the last (best) solution is %d\n", energy)

			return err
		},
	}
	cmd.Flags().StringVarP(&example, "example", "e", "", "instance file (required)")
	cmd.Flags().StringVarP(&solution, "solution", "s", "", "solution file (required)")
	_ = cmd.MarkFlagRequired("example")
	_ = cmd.MarkFlagRequired("solution")

	return cmd
}
