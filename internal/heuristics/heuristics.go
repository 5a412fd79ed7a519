// Package heuristics provides the fixed, hand-written routing rules and
// the SPT sequencing queue, used as baselines to compare evolved CCGP
// programs against and as seed material for population initialization
// experiments.
package heuristics

import (
	"github.com/fjss-ccgp/ccgp/internal/queue"
	"github.com/fjss-ccgp/ccgp/internal/simulate"
	"github.com/fjss-ccgp/ccgp/pkg/model"
)

// NewSPTQueue builds a machine queue ordered by shortest processing time
// on the given machine. The key is static (processing times never change
// for a given machine), so a push-time binary heap is correct here, unlike
// the dynamic queues sequencing programs require.
func NewSPTQueue(sim *simulate.Simulator, machine int) queue.Queue[simulate.MachineQueueItem] {
	return queue.NewPriorityQueue[simulate.MachineQueueItem, model.Time](
		func(item simulate.MachineQueueItem) model.Time {
			return item.Operation().ProcessingTime(machine)
		},
	)
}

// RoutingLWQ implements Least-Work-in-Queue: route to the eligible machine
// with the smallest queued (not yet dispatched) total processing time,
// ties broken by lowest machine index.
func RoutingLWQ(sim *simulate.Simulator, job *model.Job, opIndex int) int {
	return minByMachine(job.Operations[opIndex].EligibleMachines(), func(m int) model.Time {
		totalWork, _ := sim.MachineQueueState(m)
		return totalWork
	})
}

// RoutingLQS implements Least-Queue-Size: route to the eligible machine
// with the fewest queued items, ties broken by lowest machine index.
func RoutingLQS(sim *simulate.Simulator, job *model.Job, opIndex int) int {
	return minByMachine(job.Operations[opIndex].EligibleMachines(), func(m int) model.Time {
		return model.Time(sim.QueueLen(m))
	})
}

// RoutingERT implements Earliest-Release-Time: route to the eligible
// machine that becomes free soonest, ties broken by lowest machine index.
func RoutingERT(sim *simulate.Simulator, job *model.Job, opIndex int) int {
	return minByMachine(job.Operations[opIndex].EligibleMachines(), func(m int) model.Time {
		return sim.BusyUntil(m)
	})
}

// RoutingSBT implements Smallest-Busy-Time: route to the eligible machine
// with the smallest cumulative dispatched processing time so far, ties
// broken by lowest machine index.
func RoutingSBT(sim *simulate.Simulator, job *model.Job, opIndex int) int {
	return minByMachine(job.Operations[opIndex].EligibleMachines(), func(m int) model.Time {
		_, busyTime := sim.MachineQueueState(m)
		return busyTime
	})
}

// minByMachine returns the machine in machines (assumed non-empty) with
// the smallest key, preferring the first occurrence on ties — matching
// Python's min(), which never replaces the incumbent on equal keys.
func minByMachine(machines []int, key func(int) model.Time) int {
	best := machines[0]
	bestKey := key(best)
	for _, m := range machines[1:] {
		if k := key(m); k < bestKey {
			best = m
			bestKey = k
		}
	}
	return best
}
