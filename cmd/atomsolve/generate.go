package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/atomsolve/codec"
	"github.com/katalvlaran/atomsolve/generate"
	"github.com/katalvlaran/atomsolve/problem"
)

func newGenerateCmd() *cobra.Command {
	var (
		t, k, n int
		seed    int64
		density float64
		dir     string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write random connected instances named N{t}_K{k}_{i}",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < n; i++ {
				inst, err := generate.Instance(t, k, generate.WithRand(rng), generate.WithDensity(density))
				if err != nil {
					return err
				}
				path := filepath.Join(dir, fmt.Sprintf("N%d_K%d_%d", t, k, i))
				if err = writeInstanceFile(path, inst); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}

			return nil
		},
	}
	fl := cmd.Flags()
	fl.IntVarP(&t, "nodes", "t", 0, "number of nodes (required)")
	fl.IntVarP(&k, "types", "k", 0, "number of atom types (required)")
	fl.IntVarP(&n, "count", "n", 1, "number of instances")
	fl.Int64Var(&seed, "seed", 0, "random seed (default: time-based)")
	fl.Float64Var(&density, "density", generate.DefaultDensity, "edge probability")
	fl.StringVar(&dir, "dir", ".", "output directory")
	_ = cmd.MarkFlagRequired("nodes")
	_ = cmd.MarkFlagRequired("types")

	return cmd
}

// writeInstanceFile creates path and writes inst in the instance format.
func writeInstanceFile(path string, inst *problem.Instance) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return codec.WriteInstance(f, inst)
}
