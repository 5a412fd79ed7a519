package simulate

import (
	"github.com/fjss-ccgp/ccgp/internal/queue"
	"github.com/fjss-ccgp/ccgp/pkg/model"
)

// MachineQueueItem is one operation waiting for dispatch on a machine.
type MachineQueueItem struct {
	Job     *model.Job
	OpIndex int
}

// Operation returns the operation this item refers to.
func (it MachineQueueItem) Operation() *model.Operation {
	return it.Job.Operations[it.OpIndex]
}

// MachineQueue wraps a caller-supplied queue.Queue[MachineQueueItem] with
// the two running sums that routing rules read via MachineQueueState:
// TotalWork (sum of processing times of items still queued) and BusyTime
// (cumulative processing time of items already popped). Push and Pop keep
// both sums consistent with the underlying queue's contents.
type MachineQueue struct {
	base      queue.Queue[MachineQueueItem]
	machine   int
	TotalWork model.Time
	BusyTime  model.Time
}

// NewMachineQueue wraps base, a queue dedicated to the given machine.
func NewMachineQueue(base queue.Queue[MachineQueueItem], machine int) *MachineQueue {
	return &MachineQueue{base: base, machine: machine}
}

// Push enqueues item and adds its processing time to TotalWork.
func (q *MachineQueue) Push(item MachineQueueItem) {
	q.base.Push(item)
	q.TotalWork += item.Operation().ProcessingTime(q.machine)
}

// Pop removes and returns the next item, moving its processing time from
// TotalWork to BusyTime. Returns false if the queue is empty.
func (q *MachineQueue) Pop() (MachineQueueItem, bool) {
	item, ok := q.base.Pop()
	if !ok {
		return MachineQueueItem{}, false
	}
	processingTime := item.Operation().ProcessingTime(q.machine)
	q.TotalWork -= processingTime
	q.BusyTime += processingTime
	return item, true
}

// Len returns the number of items currently queued (not yet popped).
func (q *MachineQueue) Len() int {
	return q.base.Len()
}
