package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/atomsolve/assign"
	"github.com/katalvlaran/atomsolve/codec"
)

const cycleText = "4 2 4\n\n2 2\n\n-1 0\n0 -1\n\n0 1\n1 2\n2 3\n3 0\n"

// run executes the CLI with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestSolveCommand(t *testing.T) {
	inst := writeTemp(t, "N4_K2_0", cycleText)

	out, _, err := run(t, "solve", "-e", inst, "--trials", "2", "--seed", "5")
	require.NoError(t, err)
	assert.Equal(t, "0 0 1 1\n", out)
}

func TestSolveCommand_ProgressiveOutputEndsWithBest(t *testing.T) {
	instPath := writeTemp(t, "N4_K2_0", cycleText)
	metrics := filepath.Join(t.TempDir(), "atomsolve.prom")

	out, _, err := run(t, "solve", "-e", instPath, "-p", "--trials", "3", "--metrics-file", metrics)
	require.NoError(t, err)

	sols, err := codec.ReadSolutions(strings.NewReader(out))
	require.NoError(t, err)
	inst, err := codec.LoadInstance(instPath)
	require.NoError(t, err)
	energy, err := assign.Check(inst, sols[len(sols)-1])
	require.NoError(t, err)
	assert.Equal(t, int64(-2), energy)

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "atomsolve_solver_trials_total")
}

func TestSolveCommand_Errors(t *testing.T) {
	_, _, err := run(t, "solve")
	assert.Error(t, err, "missing -e")

	_, _, err = run(t, "solve", "-e", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	inst := writeTemp(t, "bad", "4 2\n")
	_, _, err = run(t, "solve", "-e", inst)
	assert.ErrorIs(t, err, codec.ErrMalformed)

	inst = writeTemp(t, "N4_K2_0", cycleText)
	_, _, err = run(t, "solve", "-e", inst, "--neighborhood", "tabu")
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	inst := writeTemp(t, "N4_K2_0", cycleText)
	sol := writeTemp(t, "sol", "0 1 0 1\n0 0 1 1\n")

	out, _, err := run(t, "check", "-e", inst, "-s", sol)
	require.NoError(t, err)
	assert.Equal(t, "OK: energy of the last (best) solution is -2\n", out)

	bad := writeTemp(t, "bad", "0 0 1 1\n0 0 0 1\n")
	_, _, err = run(t, "check", "-e", inst, "-s", bad)
	assert.ErrorIs(t, err, assign.ErrQuotaViolation)
	assert.Contains(t, err.Error(), "solution 1")
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	out, _, err := run(t, "generate", "-t", "12", "-k", "3", "-n", "2", "--seed", "1", "--dir", dir)
	require.NoError(t, err)

	for i, name := range []string{"N12_K3_0", "N12_K3_1"} {
		path := filepath.Join(dir, name)
		assert.Contains(t, out, path, "instance %d", i)
		inst, err := codec.LoadInstance(path)
		require.NoError(t, err)
		assert.Equal(t, 12, inst.NodeCount())
		assert.Equal(t, 3, inst.AtomCount())
	}

	_, _, err = run(t, "generate", "-t", "12", "-k", "1", "--seed", "1", "--dir", dir)
	assert.Error(t, err)
}
