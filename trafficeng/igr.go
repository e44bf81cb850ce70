package trafficeng

import (
	"github.com/katalvlaran/pulsenet/config"
	"github.com/katalvlaran/pulsenet/schedule"
	"github.com/katalvlaran/pulsenet/topology"
)

// igrWorkload is one admitted workload carried through IGR's three stages.
type igrWorkload struct {
	jobID        int64
	workload     int
	cycle        int64
	start, end   int64
	startTime    int64
	demand       float64
	linkIDs      []int64
	capacities   []float64
	entryBudget  float64
	alloc        float64
	schedBWAlloc []float64
}

// IGR runs table-carving (a demand-proportional path-weight budget per
// workload), then bounded iterative growth of each workload's allocation
// toward its own bottleneck, and finally falls back to Greedy's result for
// any workload IGR leaves under cfg.IGRFallbackFraction of its demand.
// Grounded on original_source/src/phase2/igr.py:table_carving/igr_alloc
// (weight-refinement itself governs switch ECMP table entries, not
// bandwidth directly, so it is represented here as a bounded growth budget
// rather than ported literally).
type IGR struct {
	cfg *config.Config
}

// NewIGR returns an IGR traffic engineer.
func NewIGR(cfg *config.Config) *IGR {
	return &IGR{cfg: cfg}
}

// Allocate implements Engineer.
func (e *IGR) Allocate(jobs []schedule.Job, schedules map[int64]*schedule.JobSchedule, g *topology.Graph) (totalFlow, totalDemand float64) {
	t := newTracker(e.cfg.ScheduleInterval)

	var workloads []*igrWorkload
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
			linkIDs := make([]int64, len(sched.Tunnels[wi]))
			capacities := make([]float64, len(sched.Tunnels[wi]))
			for li, lr := range sched.Tunnels[wi] {
				linkIDs[li] = lr.LinkID
				capacities[li] = lr.Capacity
			}
			workloads = append(workloads, &igrWorkload{
				jobID: job.ID, workload: wi, cycle: job.Cycle,
				start: w.StartTime, end: w.EndTime, startTime: sched.StartTime,
				demand: w.Bandwidth, linkIDs: linkIDs, capacities: capacities,
				schedBWAlloc: sched.BWAlloc,
			})
		}
	}
	if totalDemand <= 0 || len(workloads) == 0 {
		return 0, totalDemand
	}

	e.tableCarving(workloads, totalDemand)

	// Stage A: minimum guarantee of demand * IGRMinGuaranteeFraction, capped
	// at each workload's own window bottleneck given the guarantees already
	// committed.
	for _, wl := range workloads {
		wl.alloc = wl.demand * e.cfg.IGRMinGuaranteeFraction
		if b := e.windowBottleneck(t, wl); wl.alloc > b {
			wl.alloc = b
		}
		e.commit(t, wl, wl.alloc)
	}

	// Stage B: bounded iterative growth toward each workload's own
	// bottleneck; each round's increment is demand * step scaled up by the
	// workload's share of the table-entry budget.
	step := e.cfg.IGRMinGuaranteeFraction
	if step <= 0 {
		step = 0.1
	}
	for iter := 0; iter < e.cfg.MaxIGRIterations; iter++ {
		grew := false
		for _, wl := range workloads {
			if wl.alloc >= wl.demand {
				continue
			}
			// windowBottleneck still includes wl's own current sample (not
			// yet retracted), so it reports the extra headroom available
			// beyond what wl already carries, not an absolute ceiling.
			headroom := e.windowBottleneck(t, wl)
			if headroom <= 0 {
				continue
			}
			share := wl.entryBudget / float64(e.cfg.IGRTableEntryBudget)
			increment := wl.demand * step * (1 + share)
			if increment > headroom {
				increment = headroom
			}
			target := wl.alloc + increment
			if target > wl.demand {
				target = wl.demand
			}
			if target <= wl.alloc {
				continue
			}
			e.retract(t, wl)
			wl.alloc = target
			e.commit(t, wl, wl.alloc)
			grew = true
		}
		if !grew {
			break
		}
	}

	// Stage C: fall back to Greedy's bottleneck-capped allocation for any
	// workload IGR left under the fallback threshold.
	for _, wl := range workloads {
		if wl.demand <= 0 || wl.alloc/wl.demand >= e.cfg.IGRFallbackFraction {
			continue
		}
		e.retract(t, wl)
		bottleneck := e.windowBottleneck(t, wl)
		fallback := wl.demand
		if bottleneck < fallback {
			fallback = bottleneck
		}
		if fallback < 0 {
			fallback = 0
		}
		if fallback > wl.alloc {
			wl.alloc = fallback
		}
		e.commit(t, wl, wl.alloc)
	}

	for _, wl := range workloads {
		if wl.workload < len(wl.schedBWAlloc) {
			wl.schedBWAlloc[wl.workload] = wl.alloc
		}
		totalFlow += wl.alloc
	}
	return totalFlow, totalDemand
}

// tableCarving assigns each workload a demand-proportional share of
// cfg.IGRTableEntryBudget, floored at cfg.IGRMinPathDiversity/len(workloads)
// of the budget and then capped at cfg.IGRMaxWeight entries per path (its
// single tunnel, here), mirroring igr.py's per-path weight ceiling.
func (e *IGR) tableCarving(workloads []*igrWorkload, totalDemand float64) {
	floor := float64(e.cfg.IGRMinPathDiversity) / float64(len(workloads)) * float64(e.cfg.IGRTableEntryBudget)
	ceiling := float64(e.cfg.IGRMaxWeight)
	for _, wl := range workloads {
		share := float64(e.cfg.IGRTableEntryBudget) * (wl.demand / totalDemand)
		if share < floor {
			share = floor
		}
		if share > ceiling {
			share = ceiling
		}
		wl.entryBudget = share
	}
}

func (e *IGR) commit(t *tracker, wl *igrWorkload, bw float64) {
	for _, id := range wl.linkIDs {
		t.add(id, trafficSample{
			jobID: wl.jobID, workload: wl.workload, cycle: wl.cycle, start: wl.start, end: wl.end,
			bandwidth: bw, startTime: wl.startTime,
		})
	}
}

// retract removes only this workload's own sample from each of its links, so
// stage B/C can recompute its allocation against a clean bottleneck view
// before re-committing. Keyed by (jobID, workload), not jobID alone: two
// workloads of the same job can share a link, and jobID alone would also
// evict the sibling's freshly-committed sample. tracker has no delete, so
// retract rebuilds the affected links' sample lists directly.
func (e *IGR) retract(t *tracker, wl *igrWorkload) {
	for _, id := range wl.linkIDs {
		kept := t.traffic[id][:0]
		for _, s := range t.traffic[id] {
			if s.jobID != wl.jobID || s.workload != wl.workload {
				kept = append(kept, s)
			}
		}
		t.traffic[id] = kept
	}
}

func (e *IGR) windowBottleneck(t *tracker, wl *igrWorkload) float64 {
	bottleneck := posInf
	for i, id := range wl.linkIDs {
		if b := t.bottleneck(id, wl.capacities[i], wl.cycle, wl.start, wl.end, wl.startTime); b < bottleneck {
			bottleneck = b
		}
	}
	if bottleneck < 0 {
		bottleneck = 0
	}
	return bottleneck
}
