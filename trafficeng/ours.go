package trafficeng

import (
	"github.com/katalvlaran/pulsenet/config"
	"github.com/katalvlaran/pulsenet/schedule"
	"github.com/katalvlaran/pulsenet/topology"
)

// Ours allocates each admitted workload to the minimum of its own demand and
// the residual capacity on its tunnel's tightest link over the workload's
// own active window, computed against every workload already committed in
// this call. Grounded on original_source/src/phase2/traffic_schedule.py:
// update_schedule, whose Gurobi model has exactly one decision variable per
// constraint (no inter-workload coupling), so the LP's optimum is this
// closed form — with one correction: the source computes every workload's
// bottleneck against a single static baseline and solves them all at once,
// which its own comment admits can oversubscribe a link two reallocated
// workloads share ("简化，不考虑更新流之间的重叠"); here each workload's
// commit is folded into the baseline before the next is evaluated, so the
// result never exceeds any link's capacity.
type Ours struct {
	cfg *config.Config
}

// NewOurs returns an Ours traffic engineer.
func NewOurs(cfg *config.Config) *Ours {
	return &Ours{cfg: cfg}
}

// Allocate implements Engineer.
func (e *Ours) Allocate(jobs []schedule.Job, schedules map[int64]*schedule.JobSchedule, g *topology.Graph) (totalFlow, totalDemand float64) {
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

const posInf = 1e308
