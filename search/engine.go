package search

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/katalvlaran/atomsolve/assign"
)

const (
	// deadlineCheckMask: the wall clock is read every 256 steps.
	deadlineCheckMask = 255
	// calibrationSamples is the number of candidate swaps sampled to
	// calibrate the initial temperature.
	calibrationSamples = 128
)

// Run refines a in place and returns the outcome. On return a holds the best
// assignment observed, including after cancellation.
//
// Errors:
//   - ErrInvalidOptions: opts.Validate failed.
//   - ErrIncomplete: a has unassigned nodes.
//   - assign.ErrBookkeeping (opts.Verify only): incremental state drifted;
//     a is left as is and must not be trusted.
//
// Cancellation is not an error: it yields Status Stopped.
//
// Complexity: O(MaxIterations·(deg + 1)) time for Sample/Adjacent,
// O(t) extra space for the best snapshot.
func Run(ctx context.Context, a *assign.Assignment, opts Options) (Result, error) {
	start := time.Now()
	if err := opts.Validate(); err != nil {
		return Result{}, fmt.Errorf("Run: %w", err)
	}
	if !a.Complete() {
		return Result{}, fmt.Errorf("Run: %d of %d nodes placed: %w",
			a.Placed(), a.Instance().NodeCount(), ErrIncomplete)
	}

	res := Result{Status: Running, Energy: a.Energy()}
	types := a.View()
	if !hasDifferingPair(types) {
		res.Status = Converged
		res.Elapsed = time.Since(start)

		return res, nil
	}

	r := &runner{
		a:     a,
		opts:  opts,
		rng:   rngFromSeed(opts.Seed),
		best:  a.Types(),
		bestE: a.Energy(),
	}
	r.pick = newPicker(opts.Neighborhood, a.Instance(), types, r.rng)
	r.initSchedule()
	res.InitialTemp = r.temp

	err := r.loop(ctx, start, &res)
	if err != nil {
		res.Elapsed = time.Since(start)

		return res, err
	}

	a.Restore(r.best, r.bestE)
	res.Energy = r.bestE
	if opts.Verify {
		if err = a.Verify(); err != nil {
			res.Elapsed = time.Since(start)

			return res, fmt.Errorf("Run: after restore: %w", err)
		}
	}
	res.Elapsed = time.Since(start)

	return res, nil
}

// runner is the state of one Run.
type runner struct {
	a    *assign.Assignment
	opts Options
	rng  *rand.Rand
	pick *picker

	best  []int
	bestE int64

	temp float64
	cool float64 // per-step multiplier
}

// initSchedule fixes T0, T1 and the geometric cooling factor.
func (r *runner) initSchedule() {
	if r.opts.Descent {
		return
	}
	t0 := r.opts.InitialTemp
	if t0 == 0 {
		t0 = r.calibrate()
	}
	if t0 == 0 {
		return
	}
	t1 := r.opts.FinalTemp
	if t1 == 0 {
		t1 = t0 * defaultFinalRatio
	}
	if t1 > t0 {
		// A calibrated T0 may undercut an explicit FinalTemp.
		t1 = t0
	}
	r.temp = t0
	r.cool = 1
	if r.opts.MaxIterations > 1 {
		r.cool = math.Pow(t1/t0, 1/float64(r.opts.MaxIterations-1))
	}
}

// calibrate returns T0 such that the mean sampled uphill delta is accepted
// with probability ½, or 0 when no sampled swap is uphill.
func (r *runner) calibrate() float64 {
	var (
		inst  = r.a.Instance()
		types = r.a.View()
		sum   float64
		count int
		delta int64
		u, v  int
		i     int
	)
	for i = 0; i < calibrationSamples; i++ {
		u, v = r.pick.sample()
		if delta = assign.SwapDelta(inst, types, u, v); delta > 0 {
			sum += float64(delta)
			count++
		}
	}
	if count == 0 {
		return 0
	}

	return (sum / float64(count)) / math.Ln2
}

// loop runs steps until a terminal status is reached.
func (r *runner) loop(ctx context.Context, start time.Time, res *Result) error {
	var (
		done      = ctx.Done()
		inst      = r.a.Instance()
		types     = r.a.View()
		deadline  time.Time
		hasLimit  = r.opts.TimeLimit > 0
		sinceBest int
		step      Step
		u, v      int
		ok        bool
		delta     int64
		it        int
		err       error
	)
	if hasLimit {
		deadline = start.Add(r.opts.TimeLimit)
	}

	for it = 0; it < r.opts.MaxIterations; it++ {
		select {
		case <-done:
			res.Status = Stopped

			return nil
		default:
		}
		if hasLimit && it&deadlineCheckMask == 0 && time.Now().After(deadline) {
			res.Status = Stopped

			return nil
		}

		u, v, ok = r.pick.next()
		if !ok {
			if r.temp == 0 {
				// Full sweep without an improving swap: local optimum.
				res.Status = Converged

				return nil
			}
			u, v, _ = r.pick.next()
		}

		delta = assign.SwapDelta(inst, types, u, v)
		step = Step{Iteration: it, U: u, V: v, Delta: delta, Temperature: r.temp}
		if r.accept(delta) {
			r.a.SwapKnown(u, v, delta)
			r.pick.reset()
			res.Accepted++
			step.Accepted = true
			if r.opts.Verify {
				if err = r.a.Verify(); err != nil {
					res.Iterations = it + 1

					return fmt.Errorf("Run: iteration %d: %w", it, err)
				}
			}
		}
		res.Iterations = it + 1

		step.Energy = r.a.Energy()
		if step.Energy < r.bestE {
			r.bestE = step.Energy
			copy(r.best, types)
			res.Improvements++
			sinceBest = 0
			step.Best = r.bestE
			if r.opts.OnImprove != nil {
				r.opts.OnImprove(step, types)
			}
		} else {
			sinceBest++
			step.Best = r.bestE
		}
		if r.opts.OnStep != nil {
			r.opts.OnStep(step)
		}

		if r.opts.Patience > 0 && sinceBest >= r.opts.Patience {
			res.Status = Converged

			return nil
		}
		r.temp *= r.cool
	}
	res.Status = Stopped

	return nil
}

// accept applies the Metropolis rule at the current temperature.
func (r *runner) accept(delta int64) bool {
	if delta < 0 {
		return true
	}
	if r.temp <= 0 {
		return false
	}

	return r.rng.Float64() < math.Exp(-float64(delta)/r.temp)
}

// hasDifferingPair reports whether at least two distinct types are used.
func hasDifferingPair(types []int) bool {
	for i := 1; i < len(types); i++ {
		if types[i] != types[0] {
			return true
		}
	}

	return false
}
