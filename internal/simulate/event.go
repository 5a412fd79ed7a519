package simulate

import "github.com/fjss-ccgp/ccgp/pkg/model"

// Event is the closed sum type dispatched by the simulator's main loop.
// Exactly one of the NewJob or MachineFinish constructors produces any
// given Event; Kind reports which.
type EventKind int

const (
	// KindNewJob marks the arrival of a job's first operation.
	KindNewJob EventKind = iota
	// KindMachineFinish marks a machine completing one operation.
	KindMachineFinish
)

// Event is a tagged union of NewJob(job) and MachineFinish(time, machine,
// job, op_index). Only the fields relevant to Kind are meaningful.
type Event struct {
	Kind EventKind

	Time    model.Time
	Job     *model.Job
	Machine int
	// OpIndex is the operation this event concerns: for KindNewJob it is
	// always 0 (the job's first operation); for KindMachineFinish it is
	// the operation that just finished.
	OpIndex int
}

// NewJobEvent builds the arrival event for a job's first operation.
func NewJobEvent(job *model.Job) Event {
	return Event{Kind: KindNewJob, Time: job.ArrivalTime, Job: job, OpIndex: 0}
}

// MachineFinishEvent builds the completion event for one operation.
func MachineFinishEvent(t model.Time, machine int, job *model.Job, opIndex int) Event {
	return Event{Kind: KindMachineFinish, Time: t, Job: job, Machine: machine, OpIndex: opIndex}
}

// ArrivalTime is the key the simulator's event queue sorts by.
func (e Event) ArrivalTime() model.Time {
	return e.Time
}
