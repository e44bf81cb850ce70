package trafficeng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pulsenet/config"
	"github.com/katalvlaran/pulsenet/schedule"
	"github.com/katalvlaran/pulsenet/topology"
	"github.com/katalvlaran/pulsenet/trafficeng"
)

func abGraph() (*topology.Graph, *topology.Link) {
	g := topology.NewGraph()
	link := g.AddEdge(1, 2, 100)
	return g, link
}

func admittedJob(link *topology.Link, w1End int64, w2Start, w2End int64) (schedule.Job, *schedule.JobSchedule) {
	job := schedule.Job{ID: 1, Cycle: 1000, Workloads: []schedule.Workload{
		{Src: 1, Dst: 2, StartTime: 0, EndTime: w1End, Bandwidth: 40},
		{Src: 1, Dst: 2, StartTime: w2Start, EndTime: w2End, Bandwidth: 80},
	}}
	tunnel := schedule.TunnelRecord{{LinkID: link.ID, Src: link.Src, Dst: link.Dst, Capacity: link.Capacity}}
	sched := &schedule.JobSchedule{
		JobID: 1, Admit: 1, StartTime: 0,
		Tunnels: []schedule.TunnelRecord{tunnel, tunnel},
		BWAlloc: []float64{0, 0},
	}
	return job, sched
}

// S4, overlapping windows: second workload is capped to the residual
// capacity left by the first (100-40=60).
func TestGreedy_S4_OverlappingWindowsCapsResidual(t *testing.T) {
	g, link := abGraph()
	job, sched := admittedJob(link, 100, 0, 100)
	schedules := map[int64]*schedule.JobSchedule{1: sched}

	e := trafficeng.NewGreedy(config.New())
	flow, demand := e.Allocate([]schedule.Job{job}, schedules, g)

	assert.InDelta(t, 40, sched.BWAlloc[0], 1e-9)
	assert.InDelta(t, 60, sched.BWAlloc[1], 1e-9)
	assert.InDelta(t, 100, flow, 1e-9)
	assert.InDelta(t, 120, demand, 1e-9)
}

// S4, disjoint windows: the second workload never overlaps the first on the
// wire, so it gets its full demand.
func TestGreedy_S4_NonOverlappingWindowsGetsFullDemand(t *testing.T) {
	g, link := abGraph()
	job, sched := admittedJob(link, 100, 200, 300)
	schedules := map[int64]*schedule.JobSchedule{1: sched}

	e := trafficeng.NewGreedy(config.New())
	e.Allocate([]schedule.Job{job}, schedules, g)

	assert.InDelta(t, 40, sched.BWAlloc[0], 1e-9)
	assert.InDelta(t, 80, sched.BWAlloc[1], 1e-9)
}

func TestOurs_OverlappingWindowsCapsResidual(t *testing.T) {
	g, link := abGraph()
	job, sched := admittedJob(link, 100, 0, 100)
	schedules := map[int64]*schedule.JobSchedule{1: sched}

	e := trafficeng.NewOurs(config.New())
	e.Allocate([]schedule.Job{job}, schedules, g)

	assert.InDelta(t, 60, sched.BWAlloc[1], 1e-9)
}

func TestOurs_NeverOversubscribesASharedLink(t *testing.T) {
	g := topology.NewGraph()
	link := g.AddEdge(1, 2, 100)
	tunnel := schedule.TunnelRecord{{LinkID: link.ID, Src: link.Src, Dst: link.Dst, Capacity: link.Capacity}}

	job1 := schedule.Job{ID: 1, Cycle: 1000, Workloads: []schedule.Workload{
		{Src: 1, Dst: 2, StartTime: 0, EndTime: 100, Bandwidth: 80},
	}}
	job2 := schedule.Job{ID: 2, Cycle: 1000, Workloads: []schedule.Workload{
		{Src: 1, Dst: 2, StartTime: 0, EndTime: 100, Bandwidth: 80},
	}}
	sched1 := &schedule.JobSchedule{JobID: 1, Admit: 1, Tunnels: []schedule.TunnelRecord{tunnel}, BWAlloc: []float64{0}}
	sched2 := &schedule.JobSchedule{JobID: 2, Admit: 1, Tunnels: []schedule.TunnelRecord{tunnel}, BWAlloc: []float64{0}}
	schedules := map[int64]*schedule.JobSchedule{1: sched1, 2: sched2}

	e := trafficeng.NewOurs(config.New())
	flow, _ := e.Allocate([]schedule.Job{job1, job2}, schedules, g)

	assert.LessOrEqual(t, sched1.BWAlloc[0]+sched2.BWAlloc[0], 100.0+1e-9)
	assert.InDelta(t, 100, flow, 1e-9)
}

func TestNCFlow_SingleWorkloadFitsTrivially(t *testing.T) {
	g, link := abGraph()
	job := schedule.Job{ID: 1, Cycle: 1000, Workloads: []schedule.Workload{
		{Src: 1, Dst: 2, StartTime: 0, EndTime: 100, Bandwidth: 40},
	}}
	tunnel := schedule.TunnelRecord{{LinkID: link.ID, Src: link.Src, Dst: link.Dst, Capacity: link.Capacity}}
	sched := &schedule.JobSchedule{JobID: 1, Admit: 1, Tunnels: []schedule.TunnelRecord{tunnel}, BWAlloc: []float64{0}}
	schedules := map[int64]*schedule.JobSchedule{1: sched}

	e := trafficeng.NewNCFlow(config.New())
	flow, demand := e.Allocate([]schedule.Job{job}, schedules, g)

	assert.InDelta(t, 40, sched.BWAlloc[0], 1e-9)
	assert.InDelta(t, 40, flow, 1e-9)
	assert.InDelta(t, 40, demand, 1e-9)
}

func TestIGR_SingleWorkloadConvergesToDemand(t *testing.T) {
	g, link := abGraph()
	job := schedule.Job{ID: 1, Cycle: 1000, Workloads: []schedule.Workload{
		{Src: 1, Dst: 2, StartTime: 0, EndTime: 100, Bandwidth: 40},
	}}
	tunnel := schedule.TunnelRecord{{LinkID: link.ID, Src: link.Src, Dst: link.Dst, Capacity: link.Capacity}}
	sched := &schedule.JobSchedule{JobID: 1, Admit: 1, Tunnels: []schedule.TunnelRecord{tunnel}, BWAlloc: []float64{0}}
	schedules := map[int64]*schedule.JobSchedule{1: sched}

	e := trafficeng.NewIGR(config.New())
	flow, _ := e.Allocate([]schedule.Job{job}, schedules, g)

	require.InDelta(t, 40, sched.BWAlloc[0], 1e-6)
	assert.InDelta(t, 40, flow, 1e-6)
}

func TestIGR_NeverOversubscribesASharedLink(t *testing.T) {
	g := topology.NewGraph()
	link := g.AddEdge(1, 2, 100)
	tunnel := schedule.TunnelRecord{{LinkID: link.ID, Src: link.Src, Dst: link.Dst, Capacity: link.Capacity}}

	job1 := schedule.Job{ID: 1, Cycle: 1000, Workloads: []schedule.Workload{
		{Src: 1, Dst: 2, StartTime: 0, EndTime: 100, Bandwidth: 70},
	}}
	job2 := schedule.Job{ID: 2, Cycle: 1000, Workloads: []schedule.Workload{
		{Src: 1, Dst: 2, StartTime: 0, EndTime: 100, Bandwidth: 70},
	}}
	sched1 := &schedule.JobSchedule{JobID: 1, Admit: 1, Tunnels: []schedule.TunnelRecord{tunnel}, BWAlloc: []float64{0}}
	sched2 := &schedule.JobSchedule{JobID: 2, Admit: 1, Tunnels: []schedule.TunnelRecord{tunnel}, BWAlloc: []float64{0}}
	schedules := map[int64]*schedule.JobSchedule{1: sched1, 2: sched2}

	e := trafficeng.NewIGR(config.New())
	e.Allocate([]schedule.Job{job1, job2}, schedules, g)

	assert.LessOrEqual(t, sched1.BWAlloc[0]+sched2.BWAlloc[0], 100.0+1e-6)
}

// Same job, two workloads sharing one link with disjoint windows: growing
// one workload in stage B retracts and recommits only its own sample, so the
// sibling's committed contribution on that link must survive untouched.
func TestIGR_RetractDoesNotEvictSiblingWorkloadOnSharedLink(t *testing.T) {
	g, link := abGraph()
	job, sched := admittedJob(link, 100, 200, 300)
	schedules := map[int64]*schedule.JobSchedule{1: sched}

	e := trafficeng.NewIGR(config.New())
	flow, _ := e.Allocate([]schedule.Job{job}, schedules, g)

	require.InDelta(t, 40, sched.BWAlloc[0], 1e-6)
	require.InDelta(t, 80, sched.BWAlloc[1], 1e-6)
	assert.InDelta(t, 120, flow, 1e-6)
}

func TestCheckFeasible_PassesForGreedyOutput(t *testing.T) {
	g, link := abGraph()
	job, sched := admittedJob(link, 100, 0, 100)
	schedules := map[int64]*schedule.JobSchedule{1: sched}
	cfg := config.New()

	e := trafficeng.NewGreedy(cfg)
	e.Allocate([]schedule.Job{job}, schedules, g)

	require.NoError(t, trafficeng.CheckFeasible([]schedule.Job{job}, schedules, g, cfg))
}

func TestCheckFeasible_CatchesAnOversubscribedManualAllocation(t *testing.T) {
	g, link := abGraph()
	job := schedule.Job{ID: 1, Cycle: 1000, Workloads: []schedule.Workload{
		{Src: 1, Dst: 2, StartTime: 0, EndTime: 100, Bandwidth: 200},
	}}
	tunnel := schedule.TunnelRecord{{LinkID: link.ID, Src: link.Src, Dst: link.Dst, Capacity: link.Capacity}}
	sched := &schedule.JobSchedule{JobID: 1, Admit: 1, Tunnels: []schedule.TunnelRecord{tunnel}, BWAlloc: []float64{200}}
	schedules := map[int64]*schedule.JobSchedule{1: sched}

	err := trafficeng.CheckFeasible([]schedule.Job{job}, schedules, g, config.New())
	assert.ErrorIs(t, err, trafficeng.ErrInfeasible)
}

func TestNCFlow_CleanupTrimsLowerPriorityOnOverload(t *testing.T) {
	g := topology.NewGraph()
	link := g.AddEdge(1, 2, 100)
	tunnel := schedule.TunnelRecord{{LinkID: link.ID, Src: link.Src, Dst: link.Dst, Capacity: link.Capacity}}

	// A large, long-cycle, many-workload job gets low priority; a small,
	// short-cycle, single-workload job gets high priority and is processed
	// (and thus guaranteed) first.
	bigJob := schedule.Job{ID: 1, Cycle: 5000, Workloads: []schedule.Workload{
		{Src: 1, Dst: 2, StartTime: 0, EndTime: 100, Bandwidth: 90},
		{Src: 1, Dst: 2, StartTime: 200, EndTime: 300, Bandwidth: 10},
	}}
	smallJob := schedule.Job{ID: 2, Cycle: 100, Workloads: []schedule.Workload{
		{Src: 1, Dst: 2, StartTime: 0, EndTime: 100, Bandwidth: 50},
	}}
	bigSched := &schedule.JobSchedule{JobID: 1, Admit: 1, Tunnels: []schedule.TunnelRecord{tunnel, tunnel}, BWAlloc: []float64{0, 0}}
	smallSched := &schedule.JobSchedule{JobID: 2, Admit: 1, Tunnels: []schedule.TunnelRecord{tunnel}, BWAlloc: []float64{0}}
	schedules := map[int64]*schedule.JobSchedule{1: bigSched, 2: smallSched}

	e := trafficeng.NewNCFlow(config.New(config.WithNCFlowUtilThreshold(0.5)))
	e.Allocate([]schedule.Job{bigJob, smallJob}, schedules, g)

	// The link never exceeds capacity once cleanup has run.
	assert.LessOrEqual(t, bigSched.BWAlloc[0]+smallSched.BWAlloc[0], 100.0+1e-6)
	// The peak of 100 is over the 0.5 threshold, so cleanup trims the
	// low-priority big job's overlapping workload (50 -> 45) and leaves the
	// high-priority small job's 50 intact.
	assert.InDelta(t, 45, bigSched.BWAlloc[0], 1e-6)
	assert.InDelta(t, 50, smallSched.BWAlloc[0], 1e-6)
}
