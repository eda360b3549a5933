package codec_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/atomsolve/codec"
	"github.com/katalvlaran/atomsolve/generate"
	"github.com/katalvlaran/atomsolve/problem"
)

const cycleText = `4 2 4

2 2

0 1
1 0

0 1
1 2
2 3
3 0
`

func TestReadInstance(t *testing.T) {
	inst, err := codec.ReadInstance(strings.NewReader(cycleText))
	require.NoError(t, err)

	assert.Equal(t, 4, inst.NodeCount())
	assert.Equal(t, 2, inst.AtomCount())
	assert.Equal(t, []int{2, 2}, inst.Quotas())
	assert.Equal(t, int64(1), inst.Energy(0, 1))
	assert.Equal(t, []problem.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 0}}, inst.Edges())
}

func TestReadInstance_BlankLinesOptional(t *testing.T) {
	compact := "4 2 4\n2 2\n0 1\n1 0\n0 1\n1 2\n2 3\n3 0"
	inst, err := codec.ReadInstance(strings.NewReader(compact))
	require.NoError(t, err)
	assert.Equal(t, 4, inst.EdgeCount())

	padded := "\n\n  4 2 4  \n\n\n2 2\n\n0 1\n\n1 0\n0 1\n\n1 2\n2 3\n3 0\n\n\n"
	_, err = codec.ReadInstance(strings.NewReader(padded))
	require.NoError(t, err)
}

func TestReadInstance_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"short header":   "4 2\n",
		"bad token":      "4 2 x\n",
		"quota count":    "4 2 0\n\n2 1 1\n",
		"energy width":   "4 2 0\n\n2 2\n\n0 1 2\n1 0\n",
		"missing edges":  "4 2 2\n\n2 2\n\n0 1\n1 0\n\n0 1\n",
		"extra edges":    "4 2 1\n\n2 2\n\n0 1\n1 0\n\n0 1\n1 2\n",
		"edge width":     "4 2 1\n\n2 2\n\n0 1\n1 0\n\n0 1 2\n",
		"negative count": "4 -2 1\n",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := codec.ReadInstance(strings.NewReader(text))
			assert.ErrorIs(t, err, codec.ErrMalformed)
		})
	}
}

func TestReadInstance_InvalidInstancePassesThrough(t *testing.T) {
	text := "4 2 1\n\n2 1\n\n0 1\n1 0\n\n0 1\n"
	_, err := codec.ReadInstance(strings.NewReader(text))
	assert.ErrorIs(t, err, problem.ErrInvalidInstance)
	assert.ErrorIs(t, err, problem.ErrQuotaSum)

	text = "4 2 1\n\n2 2\n\n0 1\n1 0\n\n0 9\n"
	_, err = codec.ReadInstance(strings.NewReader(text))
	assert.ErrorIs(t, err, problem.ErrEdgeOutOfRange)
}

func TestWriteInstance_RoundTrip(t *testing.T) {
	inst, err := generate.Instance(25, 3, generate.WithSeed(4))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, codec.WriteInstance(&buf, inst))
	back, err := codec.ReadInstance(&buf)
	require.NoError(t, err)

	assert.Equal(t, inst.NodeCount(), back.NodeCount())
	assert.Equal(t, inst.Quotas(), back.Quotas())
	assert.Equal(t, inst.Edges(), back.Edges())
	for i := 0; i < inst.AtomCount(); i++ {
		assert.Equal(t, inst.EnergyRow(i), back.EnergyRow(i))
	}
}

func TestWriteInstance_CourseLayout(t *testing.T) {
	inst, err := codec.ReadInstance(strings.NewReader(cycleText))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, codec.WriteInstance(&buf, inst))
	assert.Equal(t, cycleText, buf.String())
}

func TestLoadInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "N4_K2_0")
	require.NoError(t, os.WriteFile(path, []byte(cycleText), 0o644))

	inst, err := codec.LoadInstance(path)
	require.NoError(t, err)
	assert.Equal(t, 4, inst.NodeCount())

	_, err = codec.LoadInstance(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSolutions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, codec.WriteSolution(&buf, []int{0, 1, 0, 1}))
	require.NoError(t, codec.WriteSolution(&buf, []int{0, 0, 1, 1}))
	assert.Equal(t, "0 1 0 1\n0 0 1 1\n", buf.String())

	sols, err := codec.ReadSolutions(strings.NewReader(buf.String() + "\n\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 0, 1}, {0, 0, 1, 1}}, sols)

	_, err = codec.ReadSolutions(strings.NewReader("0 -1\n"))
	assert.ErrorIs(t, err, codec.ErrMalformed)
	_, err = codec.ReadSolutions(strings.NewReader("\n"))
	assert.ErrorIs(t, err, codec.ErrMalformed)
	_, err = codec.ReadSolutions(strings.NewReader("0 a\n"))
	assert.ErrorIs(t, err, codec.ErrMalformed)
}
