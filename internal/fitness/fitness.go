// Package fitness runs the simulator over problem instances to score a
// pair of routing/sequencing programs, normalizing against each
// instance's known lower bound.
package fitness

import (
	"context"
	"math"

	"github.com/fjss-ccgp/ccgp/internal/gp"
	"github.com/fjss-ccgp/ccgp/internal/queue"
	"github.com/fjss-ccgp/ccgp/internal/simulate"
	apperrors "github.com/fjss-ccgp/ccgp/pkg/errors"
	"github.com/fjss-ccgp/ccgp/pkg/model"
	"github.com/fjss-ccgp/ccgp/pkg/parallel"
)

// jobView presents a *model.Job as a gp.Job. model.Job keeps
// LastOperationReadyTime as a field, so the method of that name is
// supplied here; the other gp.Job methods are promoted from *model.Job.
type jobView struct{ *model.Job }

// LastOperationReadyTime implements gp.Job.
func (j jobView) LastOperationReadyTime() float64 { return j.Job.LastOperationReadyTime }

// Makespan simulates problem under routing program rr and sequencing
// program sr and returns the resulting completion time. The routing rule
// selects the eligible machine minimizing rr's evaluation; the machine
// queues are dynamic-priority queues keyed by sr's evaluation, recomputed
// at every pop since sr may read live simulator state.
func Makespan(rr, sr *gp.Program, problem *model.Problem) model.Time {
	routingRule := func(sim *simulate.Simulator, job *model.Job, opIndex int) int {
		machines := job.Operations[opIndex].EligibleMachines()
		best := machines[0]
		bestKey := rr.Root.Calc(sim, jobView{job}, opIndex, best)
		for _, m := range machines[1:] {
			if key := rr.Root.Calc(sim, jobView{job}, opIndex, m); key < bestKey {
				best = m
				bestKey = key
			}
		}
		return best
	}

	makeQueue := func(sim *simulate.Simulator, machine int) queue.Queue[simulate.MachineQueueItem] {
		return queue.NewDynamicPriorityQueue[simulate.MachineQueueItem, model.Time](
			func(item simulate.MachineQueueItem) model.Time {
				return sr.Root.Calc(sim, jobView{item.Job}, item.OpIndex, machine)
			},
		)
	}

	sim := simulate.NewSimulator(problem, makeQueue, routingRule, nil)
	return sim.Simulate()
}

// NormalizedMakespan computes makespan/lower_bound for every instance in
// problems and returns the arithmetic mean. Evaluation is dispatched to a
// worker pool since every instance is independent and deterministic given
// (rr, sr). Returns apperrors.ErrMissingLowerBound if any instance lacks a
// known lower bound, per the caller-visible precondition.
func NormalizedMakespan(rr, sr *gp.Program, problems []*model.Problem, config parallel.PoolConfig) (float64, error) {
	if len(problems) == 0 {
		return 0, apperrors.Wrap(apperrors.CodeInvalidInput, "normalized makespan requires at least one problem instance", nil)
	}
	for _, p := range problems {
		if !p.HasLowerBound() {
			return 0, apperrors.Wrap(apperrors.CodeMissingLowerBound, "instance "+p.Name+" has no known lower bound", nil)
		}
	}

	ratios := parallel.MapReduce(
		context.Background(),
		problems,
		config,
		func(_ context.Context, p *model.Problem) float64 {
			makespan := Makespan(rr, sr, p)
			return makespan / *p.LowerBound
		},
		func(mapped []float64) []float64 { return mapped },
	)

	return mean(ratios), nil
}

// mean is kept separate from NormalizedMakespan so diagnostics code that
// already has a per-instance ratio slice can reuse it directly.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
