package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjss-ccgp/ccgp/pkg/model"
)

func TestSeededRand_Deterministic(t *testing.T) {
	r1 := SeededRand(42)
	r2 := SeededRand(42)

	for i := 0; i < 10; i++ {
		assert.Equal(t, r1.Intn(1000), r2.Intn(1000))
	}
}

func TestNewUniformJob_EveryOperationEligibleOnEveryMachine(t *testing.T) {
	job := NewUniformJob(UniformJobSpec{
		Name:           "job-1",
		Arrival:        0,
		NumOperations:  3,
		NumMachines:    4,
		ProcessingTime: 5,
	})

	require.Equal(t, 3, job.NumOperations())
	for i := 0; i < 3; i++ {
		for m := 0; m < 4; m++ {
			assert.Equal(t, model.Time(5), job.ProcessingTime(i, m))
		}
	}
}

func TestNewSyntheticProblem_CarriesLowerBound(t *testing.T) {
	job := NewUniformJob(UniformJobSpec{Name: "j", NumOperations: 1, NumMachines: 2, ProcessingTime: 1})
	lb := model.Time(10)

	problem := NewSyntheticProblem("p", 2, []*model.Job{job}, &lb)

	require.True(t, problem.HasLowerBound())
	assert.Equal(t, model.Time(10), *problem.LowerBound)
}
