package codec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/atomsolve/problem"
)

// lineReader yields the non-blank lines of r as integer fields.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	return &lineReader{sc: sc}
}

// next returns the integer fields of the next non-blank line; io.EOF when
// the input is exhausted.
func (lr *lineReader) next() ([]int64, error) {
	for lr.sc.Scan() {
		lr.line++
		fields := strings.Fields(lr.sc.Text())
		if len(fields) == 0 {
			continue
		}
		nums := make([]int64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: field %q: %w", lr.line, f, ErrMalformed)
			}
			nums[i] = v
		}

		return nums, nil
	}
	if err := lr.sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lr.line, err)
	}

	return nil, io.EOF
}

// expect reads the next non-blank line and requires exactly n fields. An
// empty section (n == 0) consumes nothing.
func (lr *lineReader) expect(n int, what string) ([]int64, error) {
	if n == 0 {
		return nil, nil
	}
	nums, err := lr.next()
	if err == io.EOF {
		return nil, fmt.Errorf("line %d: missing %s: %w", lr.line, what, ErrMalformed)
	}
	if err != nil {
		return nil, err
	}
	if len(nums) != n {
		return nil, fmt.Errorf("line %d: %s has %d fields, want %d: %w", lr.line, what, len(nums), n, ErrMalformed)
	}

	return nums, nil
}

// ReadInstance parses one instance. Structural problems (missing sections,
// wrong field counts, non-integers, trailing data, edge count differing from
// a) fail with ErrMalformed; semantic ones (quota sum, endpoint range) come
// from problem.New and match problem.ErrInvalidInstance.
func ReadInstance(r io.Reader) (*problem.Instance, error) {
	lr := newLineReader(r)

	head, err := lr.expect(3, "header \"t k a\"")
	if err != nil {
		return nil, fmt.Errorf("ReadInstance: %w", err)
	}
	t, k, a := int(head[0]), int(head[1]), int(head[2])
	if k < 0 || a < 0 {
		return nil, fmt.Errorf("ReadInstance: line %d: negative k=%d or a=%d: %w", lr.line, k, a, ErrMalformed)
	}

	row, err := lr.expect(k, "quotas")
	if err != nil {
		return nil, fmt.Errorf("ReadInstance: %w", err)
	}
	quotas := make([]int, k)
	for i, q := range row {
		quotas[i] = int(q)
	}

	energy := make([][]int64, k)
	for i := range energy {
		if energy[i], err = lr.expect(k, fmt.Sprintf("energy row %d", i)); err != nil {
			return nil, fmt.Errorf("ReadInstance: %w", err)
		}
	}

	edges := make([]problem.Edge, a)
	for i := range edges {
		if row, err = lr.expect(2, fmt.Sprintf("edge %d", i)); err != nil {
			return nil, fmt.Errorf("ReadInstance: %w", err)
		}
		edges[i] = problem.Edge{From: int(row[0]), To: int(row[1])}
	}
	if _, err = lr.next(); err != io.EOF {
		if err != nil {
			return nil, fmt.Errorf("ReadInstance: %w", err)
		}

		return nil, fmt.Errorf("ReadInstance: line %d: more than %d edges: %w", lr.line, a, ErrMalformed)
	}

	inst, err := problem.New(t, quotas, energy, edges)
	if err != nil {
		return nil, fmt.Errorf("ReadInstance: %w", err)
	}

	return inst, nil
}

// LoadInstance reads the instance file at path.
func LoadInstance(path string) (*problem.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadInstance: %w", err)
	}
	defer f.Close()

	inst, err := ReadInstance(f)
	if err != nil {
		return nil, fmt.Errorf("LoadInstance: %s: %w", path, err)
	}

	return inst, nil
}

// WriteInstance writes inst in the instance format, sections separated by
// blank lines. ReadInstance(WriteInstance(inst)) reproduces inst exactly.
func WriteInstance(w io.Writer, inst *problem.Instance) error {
	bw := bufio.NewWriter(w)
	k := inst.AtomCount()

	fmt.Fprintf(bw, "%d %d %d\n\n", inst.NodeCount(), k, inst.EdgeCount())
	writeInts(bw, inst.Quotas())
	bw.WriteByte('\n')
	for i := 0; i < k; i++ {
		writeInt64s(bw, inst.EnergyRow(i))
	}
	bw.WriteByte('\n')
	for _, e := range inst.Edges() {
		fmt.Fprintf(bw, "%d %d\n", e.From, e.To)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("WriteInstance: %w", err)
	}

	return nil
}

func writeInts(bw *bufio.Writer, xs []int) {
	for i, x := range xs {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(strconv.Itoa(x))
	}
	bw.WriteByte('\n')
}

func writeInt64s(bw *bufio.Writer, xs []int64) {
	for i, x := range xs {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(strconv.FormatInt(x, 10))
	}
	bw.WriteByte('\n')
}
