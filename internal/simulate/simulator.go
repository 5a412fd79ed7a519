// Package simulate implements the discrete-event FJSS simulator: given a
// routing rule and a per-machine queue factory (which may close over a
// sequencing program), it deterministically produces a makespan.
package simulate

import (
	"github.com/fjss-ccgp/ccgp/internal/queue"
	"github.com/fjss-ccgp/ccgp/pkg/model"
	"github.com/fjss-ccgp/ccgp/pkg/utils"
)

// QueueFactory builds the queue backing one machine. It receives the
// simulator so a dynamic-priority queue can recompute keys from live
// simulator state at pop time.
type QueueFactory func(sim *Simulator, machine int) queue.Queue[MachineQueueItem]

// RoutingRule selects the machine to run job's operation opIndex on. It
// must return a member of job.Operations[opIndex].EligibleMachines().
type RoutingRule func(sim *Simulator, job *model.Job, opIndex int) int

// Simulator is the event-driven engine described by the component design:
// a priority queue of events keyed by time with FIFO tie-break, per-machine
// queues, per-machine busy-until timestamps, and a routing rule closure.
//
// A Simulator is single-use: construct one per call to Simulate.
type Simulator struct {
	problem *model.Problem
	now     model.Time

	events *queue.PriorityQueue[Event, model.Time]

	machineQueues     []*MachineQueue
	machinesBusyUntil []model.Time

	routingRule RoutingRule

	logger utils.Logger
}

// NewSimulator seeds the event queue with one NewJob event per job and
// builds one machine queue per machine via makeQueue.
func NewSimulator(problem *model.Problem, makeQueue QueueFactory, routingRule RoutingRule, logger utils.Logger) *Simulator {
	if logger == nil {
		logger = &utils.NullLogger{}
	}
	sim := &Simulator{
		problem:           problem,
		events:            queue.NewPriorityQueue[Event, model.Time](Event.ArrivalTime),
		machinesBusyUntil: make([]model.Time, problem.NumMachines),
		routingRule:       routingRule,
		logger:            logger,
	}
	sim.machineQueues = make([]*MachineQueue, problem.NumMachines)
	for m := 0; m < problem.NumMachines; m++ {
		sim.machineQueues[m] = NewMachineQueue(makeQueue(sim, m), m)
	}
	for _, job := range problem.Jobs {
		sim.events.Push(NewJobEvent(job))
	}
	return sim
}

// Now implements gp.EvalContext: the current simulation time.
func (s *Simulator) Now() float64 {
	return s.now
}

// QueueLen implements gp.EvalContext: items currently queued at machine m.
func (s *Simulator) QueueLen(m int) int {
	return s.machineQueues[m].Len()
}

// BusyUntil implements gp.EvalContext: the time machine m is busy until.
func (s *Simulator) BusyUntil(m int) float64 {
	return s.machinesBusyUntil[m]
}

// MachineQueueState exposes a machine's running sums to routing rules,
// such as those in the heuristics package, without exposing the queue's
// contents.
func (s *Simulator) MachineQueueState(m int) (totalWork, busyTime model.Time) {
	q := s.machineQueues[m]
	return q.TotalWork, q.BusyTime
}

// Simulate runs the event loop to completion and returns the makespan:
// the time of the last handled event, which is always the latest
// MachineFinish time since no event is ever scheduled strictly after it.
func (s *Simulator) Simulate() model.Time {
	for {
		event, ok := s.events.Pop()
		if !ok {
			return s.now
		}
		s.now = event.ArrivalTime()
		s.handleEvent(event)
	}
}

func (s *Simulator) handleEvent(event Event) {
	switch event.Kind {
	case KindNewJob:
		s.handleNewJob(event)
	case KindMachineFinish:
		s.handleMachineFinish(event)
	}
}

func (s *Simulator) handleNewJob(event Event) {
	s.logger.Debug("job %s started at time %v", event.Job.Name, s.now)
	event.Job.LastOperationReadyTime = s.now
	s.handleNewOperation(event.Job, 0)
}

// handleNewOperation routes operation opIndex of job to a machine and
// attempts to start it immediately. If opIndex is past the job's last
// operation, the job is complete and there is nothing to do.
func (s *Simulator) handleNewOperation(job *model.Job, opIndex int) {
	if opIndex >= len(job.Operations) {
		return
	}
	machine := s.routingRule(s, job, opIndex)
	s.logger.Debug("routing operation %s to machine %d at time %v", job.Operations[opIndex].Name, machine+1, s.now)
	s.machineQueues[machine].Push(MachineQueueItem{Job: job, OpIndex: opIndex})
	s.updateQueue(machine)
}

// updateQueue starts the next queued item on machine m, if the machine is
// currently idle and the queue is non-empty.
func (s *Simulator) updateQueue(m int) {
	if s.now < s.machinesBusyUntil[m] {
		return
	}
	item, ok := s.machineQueues[m].Pop()
	if !ok {
		return
	}
	processingTime := item.Operation().ProcessingTime(m)
	finishTime := s.now + processingTime
	s.machinesBusyUntil[m] = finishTime
	s.logger.Debug("machine %d starts processing operation %s at time %v", m+1, item.Operation().Name, s.now)
	s.events.Push(MachineFinishEvent(finishTime, m, item.Job, item.OpIndex))
}

// handleMachineFinish routes the job's next operation (if any), then lets
// the just-freed machine pick up its next queued item. Routing happens
// first so that routing/sequencing rules observe the updated queue state
// before the machine re-dispatches.
func (s *Simulator) handleMachineFinish(event Event) {
	s.logger.Debug("machine %d finished operation %s at time %v", event.Machine+1, event.Job.Operations[event.OpIndex].Name, s.now)
	nextOpIndex := event.OpIndex + 1
	if nextOpIndex < len(event.Job.Operations) {
		event.Job.LastOperationReadyTime = s.now
		s.handleNewOperation(event.Job, nextOpIndex)
	}
	s.updateQueue(event.Machine)
}
