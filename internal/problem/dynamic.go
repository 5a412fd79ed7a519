package problem

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/fjss-ccgp/ccgp/pkg/model"
)

// DynamicGenerator produces synthetic FJSS instances with randomized
// operation counts, eligible-machine sets, and processing times, and
// inter-arrival times drawn from an exponential distribution. It mirrors
// the source's DynamicFJSS, used for stress-testing the simulator and
// CCGP driver beyond the fixed Brandimarte catalogue.
type DynamicGenerator struct {
	NumMachines     int
	NumJobs         int
	UtilizationRate float64
}

// Generate produces NumJobs jobs with increasing arrival times. Arrival
// times accumulate exponential(UtilizationRate) inter-arrival gaps,
// matching the source's random_job/generate_jobs.
func (g *DynamicGenerator) Generate(r *rand.Rand) []*model.Job {
	jobs := make([]*model.Job, 0, g.NumJobs)
	arrival := model.Time(0)
	for i := 0; i < g.NumJobs; i++ {
		arrival += model.Time(r.ExpFloat64() / g.UtilizationRate)
		jobs = append(jobs, g.randomJob(r, fmt.Sprintf("%d", i+1), arrival))
	}
	return jobs
}

// randomJob builds one job with 1..10 operations, each eligible on a
// random non-empty subset of machines (sampled with replacement, so a
// machine may end up both eligible and duplicated-then-deduped) with
// processing times in [1, 99].
func (g *DynamicGenerator) randomJob(r *rand.Rand, name string, arrivalTime model.Time) *model.Job {
	numOps := 1 + r.Intn(10)
	operations := make([]*model.Operation, numOps)
	for i := 0; i < numOps; i++ {
		numEligible := 1 + r.Intn(g.NumMachines)
		processingTimes := make(map[int]model.Time, numEligible)
		for k := 0; k < numEligible; k++ {
			machine := r.Intn(g.NumMachines)
			processingTimes[machine] = model.Time(1 + r.Intn(99))
		}
		operations[i] = model.NewOperation(fmt.Sprintf("%s:%d", name, i+1), processingTimes)
	}
	return model.NewJob(name, arrivalTime, operations)
}

// NewBoundedGenerator is a convenience constructor that clamps
// utilizationRate away from zero, since a zero rate makes the exponential
// distribution's mean arrival gap infinite.
func NewBoundedGenerator(numMachines, numJobs int, utilizationRate float64) *DynamicGenerator {
	if utilizationRate <= 0 || math.IsNaN(utilizationRate) {
		utilizationRate = 0.01
	}
	return &DynamicGenerator{NumMachines: numMachines, NumJobs: numJobs, UtilizationRate: utilizationRate}
}
