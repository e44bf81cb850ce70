package trafficeng

import (
	"github.com/katalvlaran/pulsenet/config"
	"github.com/katalvlaran/pulsenet/schedule"
	"github.com/katalvlaran/pulsenet/topology"
)

// Greedy skips the LP entirely: each workload, taken in order, is allocated
// min(demand, residual capacity on its tightest link) restricted to the
// workload's own active window, and its allocation is folded into the
// running peak immediately so later workloads see it. Grounded on
// original_source/src/phase2/greedy.py:greedy_alloc (the source itself
// tracks residual capacity as a time-unaware running scalar; the
// window-aware "update peaks incrementally in workload order" approach is
// followed here instead, since every other phase-2 variant is window-aware
// and an occupied-but-non-overlapping workload must not be charged against
// it).
type Greedy struct {
	cfg *config.Config
}

// NewGreedy returns a Greedy traffic engineer.
func NewGreedy(cfg *config.Config) *Greedy {
	return &Greedy{cfg: cfg}
}

// Allocate implements Engineer.
func (e *Greedy) Allocate(jobs []schedule.Job, schedules map[int64]*schedule.JobSchedule, g *topology.Graph) (totalFlow, totalDemand float64) {
	t := newTracker(e.cfg.ScheduleInterval)

	for _, job := range jobs {
		sched, ok := schedules[job.ID]
		if !ok || !sched.Admitted() {
			continue
		}
		for wi, w := range job.Workloads {
			totalDemand += w.Bandwidth
			if wi >= len(sched.Tunnels) {
				continue
			}
			bottleneck := posInf
			for _, lr := range sched.Tunnels[wi] {
				if b := t.bottleneck(lr.LinkID, lr.Capacity, job.Cycle, w.StartTime, w.EndTime, sched.StartTime); b < bottleneck {
					bottleneck = b
				}
			}
			alloc := w.Bandwidth
			if bottleneck < alloc {
				alloc = bottleneck
			}
			if alloc < 0 {
				alloc = 0
			}
			for _, lr := range sched.Tunnels[wi] {
				t.add(lr.LinkID, trafficSample{
					jobID: job.ID, cycle: job.Cycle,
					start: w.StartTime, end: w.EndTime,
					bandwidth: alloc, startTime: sched.StartTime,
				})
			}
			if wi < len(sched.BWAlloc) {
				sched.BWAlloc[wi] = alloc
			}
			totalFlow += alloc
		}
	}
	return totalFlow, totalDemand
}
