package testutil

import (
	"fmt"
	"math/rand"

	"github.com/fjss-ccgp/ccgp/pkg/model"
)

// SeededRand returns a deterministic *rand.Rand so GP randomness (tree
// generation, breeding, tournament selection) is reproducible in tests.
func SeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// OperationSpec describes one operation to build, keyed by the machines
// eligible to run it and their processing times.
type OperationSpec struct {
	Name            string
	ProcessingTimes map[int]model.Time
}

// NewSyntheticOperation builds an *model.Operation from a spec, naming it
// automatically if Name is empty.
func NewSyntheticOperation(index int, spec OperationSpec) *model.Operation {
	name := spec.Name
	if name == "" {
		name = fmt.Sprintf("op-%d", index)
	}
	return model.NewOperation(name, spec.ProcessingTimes)
}

// NewSyntheticJob builds a *model.Job from a name, arrival time, and a
// list of per-operation machine->time maps. Each map becomes one
// operation, named sequentially.
func NewSyntheticJob(name string, arrival model.Time, opTimes []map[int]model.Time) *model.Job {
	ops := make([]*model.Operation, len(opTimes))
	for i, times := range opTimes {
		ops[i] = NewSyntheticOperation(i, OperationSpec{
			Name:            fmt.Sprintf("%s-op%d", name, i),
			ProcessingTimes: times,
		})
	}
	return model.NewJob(name, arrival, ops)
}

// UniformJobSpec describes a job with a fixed number of operations, each
// eligible on every machine in [0, numMachines) with the same processing
// time.
type UniformJobSpec struct {
	Name           string
	Arrival        model.Time
	NumOperations  int
	NumMachines    int
	ProcessingTime model.Time
}

// NewUniformJob builds a job where every operation can run on every
// machine at the same processing time — a minimal fixture for exercising
// routing/sequencing without caring which machine wins.
func NewUniformJob(spec UniformJobSpec) *model.Job {
	opTimes := make([]map[int]model.Time, spec.NumOperations)
	for i := range opTimes {
		times := make(map[int]model.Time, spec.NumMachines)
		for m := 0; m < spec.NumMachines; m++ {
			times[m] = spec.ProcessingTime
		}
		opTimes[i] = times
	}
	return NewSyntheticJob(spec.Name, spec.Arrival, opTimes)
}

// NewSyntheticProblem builds a *model.Problem from jobs and an optional
// lower bound (nil leaves LowerBound unset).
func NewSyntheticProblem(name string, numMachines int, jobs []*model.Job, lowerBound *model.Time) *model.Problem {
	return &model.Problem{
		Name:        name,
		NumMachines: numMachines,
		Jobs:        jobs,
		LowerBound:  lowerBound,
	}
}
