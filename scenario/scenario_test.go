package scenario_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/pulsenet/scenario"
	"github.com/katalvlaran/pulsenet/schedule"
)

func jobWithBW(id int64, bw float64) schedule.Job {
	return schedule.Job{ID: id, Cycle: 1000, Workloads: []schedule.Workload{
		{Src: 1, Dst: 2, StartTime: 0, EndTime: 100, Bandwidth: bw},
	}}
}

func TestOrder_FCFS_PreservesArrivalOrder(t *testing.T) {
	jobs := []schedule.Job{jobWithBW(1, 50), jobWithBW(2, 10), jobWithBW(3, 30)}
	ordered := scenario.Order(jobs, scenario.FCFS)
	assert.Equal(t, jobs, ordered)
}

func TestOrder_SJF_SortsAscendingByTotalBandwidth(t *testing.T) {
	jobs := []schedule.Job{jobWithBW(1, 50), jobWithBW(2, 10), jobWithBW(3, 30)}
	ordered := scenario.Order(jobs, scenario.SJF)

	assert.Equal(t, []int64{2, 3, 1}, []int64{ordered[0].ID, ordered[1].ID, ordered[2].ID})
}

func TestOrder_DoesNotMutateInput(t *testing.T) {
	jobs := []schedule.Job{jobWithBW(1, 50), jobWithBW(2, 10)}
	_ = scenario.Order(jobs, scenario.SJF)
	assert.Equal(t, int64(1), jobs[0].ID)
}
