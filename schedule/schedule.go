// Package schedule provides temperature schedules, a convergence-detecting
// annealing driver, and parallel scheduling of independent annealing runs —
// exactly the collaborators placement.State itself deliberately stays free
// of, each given its own disjoint State per run so callers never share one
// State across goroutines.
package schedule

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/vlsiplace/vlsiplace/placement"
)

// Schedule produces the temperature for annealing iteration i (0-based) out
// of n total iterations.
type Schedule func(i, n int, t0 float64) float64

// Geometric multiplies the temperature by a fixed ratio every iteration:
// T_i = t0 * ratio^i. ratio should be in (0,1) for cooling.
func Geometric(ratio float64) Schedule {
	return func(i, _ int, t0 float64) float64 {
		return t0 * math.Pow(ratio, float64(i))
	}
}

// Linear decreases the temperature linearly from t0 to 0 over n iterations.
func Linear() Schedule {
	return func(i, n int, t0 float64) float64 {
		if n <= 1 {
			return 0
		}
		frac := float64(i) / float64(n-1)
		return t0 * (1 - frac)
	}
}

// Result summarizes one Anneal run.
type Result struct {
	FinalCost    float64
	Iterations   int
	Converged    bool
	BatchHistory []placement.BatchStats
}

// AnnealConfig configures Anneal.
type AnnealConfig struct {
	// InitialTemperature is t0 passed to the Schedule.
	InitialTemperature float64
	// Iterations bounds how many temperature steps Anneal runs at most.
	Iterations int
	// StepsPerIteration is how many placement.Step calls RunSteps performs
	// per temperature value.
	StepsPerIteration int
	// DistanceLimit bounds Step's nearby-chip search radius.
	DistanceLimit int
	// Schedule maps iteration index to temperature; defaults to Geometric(0.95).
	Schedule Schedule
	// ConvergenceWindow is the number of trailing batches whose mean delta
	// must all be within ConvergenceThreshold of zero for Anneal to stop
	// early. Zero disables early stopping.
	ConvergenceWindow int
	// ConvergenceThreshold is the |mean delta| below which a batch counts as
	// converged.
	ConvergenceThreshold float64
	// Metrics receives one ObserveBatch call per iteration; nil uses
	// placement.NoopMetrics.
	Metrics placement.Metrics
}

// Anneal drives s through AnnealConfig.Iterations temperature steps, each
// one s.RunSteps call of StepsPerIteration steps, and returns once either the
// iteration budget is exhausted or ConvergenceWindow consecutive batches all
// have |MeanDelta| <= ConvergenceThreshold (a plateau: the run is no longer
// making progress). Anneal never mutates any State other than s.
func Anneal(s *placement.State, cfg AnnealConfig) (Result, error) {
	sched := cfg.Schedule
	if sched == nil {
		sched = Geometric(0.95)
	}

	var (
		history []placement.BatchStats
		plateau int
	)

	for i := 0; i < cfg.Iterations; i++ {
		temp := sched(i, cfg.Iterations, cfg.InitialTemperature)

		stats, err := s.RunSteps(cfg.StepsPerIteration, cfg.DistanceLimit, temp, cfg.Metrics)
		if err != nil {
			return Result{}, err
		}
		history = append(history, stats)

		if cfg.ConvergenceWindow > 0 && math.Abs(stats.MeanDelta) <= cfg.ConvergenceThreshold {
			plateau++
			if plateau >= cfg.ConvergenceWindow {
				return Result{
					FinalCost:    totalCost(s),
					Iterations:   i + 1,
					Converged:    true,
					BatchHistory: history,
				}, nil
			}
		} else {
			plateau = 0
		}
	}

	return Result{
		FinalCost:    totalCost(s),
		Iterations:   cfg.Iterations,
		Converged:    false,
		BatchHistory: history,
	}, nil
}

// totalCost sums the cost of every net in s.
func totalCost(s *placement.State) float64 {
	var total float64
	for i := 0; i < s.NetCount(); i++ {
		total += s.GetNetCostByIndex(i)
	}
	return total
}

// RunIndependent fans cfg over each of the given disjoint states concurrently,
// one goroutine per state via errgroup.Group, and returns the results in the
// same order as states. Every *placement.State must be distinct; calling
// Anneal on the same State from two goroutines simultaneously is a data race
// the caller, not this function, is responsible for avoiding.
func RunIndependent(ctx context.Context, states []*placement.State, cfg AnnealConfig) ([]Result, error) {
	results := make([]Result, len(states))

	g, ctx := errgroup.WithContext(ctx)
	for i, s := range states {
		i, s := i, s
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			res, err := Anneal(s, cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BestResult returns the index and Result with the lowest FinalCost among
// results. Panics if results is empty; callers only call this on the output
// of RunIndependent, which is never empty when states was non-empty.
func BestResult(results []Result) (int, Result) {
	best := 0
	for i := 1; i < len(results); i++ {
		if results[i].FinalCost < results[best].FinalCost {
			best = i
		}
	}
	return best, results[best]
}
