package codec

import (
	"bufio"
	"fmt"
	"io"
)

// WriteSolution writes types as one space-separated line.
func WriteSolution(w io.Writer, types []int) error {
	bw := bufio.NewWriter(w)
	writeInts(bw, types)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("WriteSolution: %w", err)
	}

	return nil
}

// ReadSolutions parses a solution stream: one solution per non-blank line,
// each entry a non-negative integer. Validation against an instance is
// assign.Check's job.
func ReadSolutions(r io.Reader) ([][]int, error) {
	lr := newLineReader(r)

	var out [][]int
	for {
		nums, err := lr.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadSolutions: %w", err)
		}
		sol := make([]int, len(nums))
		for i, v := range nums {
			if v < 0 {
				return nil, fmt.Errorf("ReadSolutions: line %d: negative type %d: %w", lr.line, v, ErrMalformed)
			}
			sol[i] = int(v)
		}
		out = append(out, sol)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("ReadSolutions: no solution: %w", ErrMalformed)
	}

	return out, nil
}
