package trafficeng

import (
	"sort"

	"github.com/katalvlaran/pulsenet/config"
	"github.com/katalvlaran/pulsenet/schedule"
	"github.com/katalvlaran/pulsenet/topology"
)

// ncflowEntry tracks one allocated workload for NCFlow's cleanup pass.
type ncflowEntry struct {
	jobID      int64
	workload   int
	priority   float64
	linkIDs    []int64
	samples    map[int64]*trafficSample
	schedSlice []float64
}

// NCFlow allocates jobs in priority order (smaller, earlier-starting jobs
// first), guaranteeing each workload at least 20% of its demand when the
// tunnel's headroom allows (the guarantee is the same for every priority),
// then runs a cleanup pass
// that trims the lowest-priority contributors on any link whose peak
// utilisation exceeds cfg.NCFlowUtilThreshold. Grounded on
// original_source/src/phase2/ncflow.py:update_schedule/get_bottleneck_links.
type NCFlow struct {
	cfg *config.Config
}

// NewNCFlow returns an NCFlow traffic engineer.
func NewNCFlow(cfg *config.Config) *NCFlow {
	return &NCFlow{cfg: cfg}
}

func jobPriority(job schedule.Job, startTime int64) float64 {
	base := 1.0 / (float64(len(job.Workloads))*float64(job.Cycle) + 1)
	startFactor := 1.0 / (float64(startTime) + 1)
	return base * startFactor
}

// Allocate implements Engineer.
func (e *NCFlow) Allocate(jobs []schedule.Job, schedules map[int64]*schedule.JobSchedule, g *topology.Graph) (totalFlow, totalDemand float64) {
	t := newTracker(e.cfg.ScheduleInterval)

	type admitted struct {
		job      schedule.Job
		sched    *schedule.JobSchedule
		priority float64
	}
	var ordered []admitted
	for _, job := range jobs {
		sched, ok := schedules[job.ID]
		if !ok || !sched.Admitted() {
			continue
		}
		ordered = append(ordered, admitted{job, sched, jobPriority(job, sched.StartTime)})
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].priority > ordered[j].priority })

	var entries []*ncflowEntry
	for _, a := range ordered {
		for wi, w := range a.job.Workloads {
			totalDemand += w.Bandwidth
			if wi >= len(a.sched.Tunnels) {
				continue
			}
			bottleneck := posInf
			linkIDs := make([]int64, len(a.sched.Tunnels[wi]))
			for li, lr := range a.sched.Tunnels[wi] {
				linkIDs[li] = lr.LinkID
				if b := t.bottleneck(lr.LinkID, lr.Capacity, a.job.Cycle, w.StartTime, w.EndTime, a.sched.StartTime); b < bottleneck {
					bottleneck = b
				}
			}
			if bottleneck < 0 {
				bottleneck = 0
			}

			alloc := w.Bandwidth
			if bottleneck < alloc {
				alloc = bottleneck
			}
			guarantee := w.Bandwidth * 0.5 * (1 + a.priority)
			if ceiling := w.Bandwidth * 0.2; guarantee > ceiling {
				guarantee = ceiling
			}
			if alloc < guarantee && bottleneck >= guarantee {
				alloc = guarantee
			}

			samples := make(map[int64]*trafficSample, len(linkIDs))
			for _, id := range linkIDs {
				samples[id] = t.add(id, trafficSample{
					jobID: a.job.ID, cycle: a.job.Cycle,
					start: w.StartTime, end: w.EndTime,
					bandwidth: alloc, startTime: a.sched.StartTime,
				})
			}

			if wi < len(a.sched.BWAlloc) {
				a.sched.BWAlloc[wi] = alloc
			}
			totalFlow += alloc
			entries = append(entries, &ncflowEntry{
				jobID: a.job.ID, workload: wi, priority: a.priority,
				linkIDs: linkIDs, samples: samples, schedSlice: a.sched.BWAlloc,
			})
		}
	}

	totalFlow += e.cleanup(g, t, entries)
	return totalFlow, totalDemand
}

// cleanup trims the lowest-priority half of contributors on any link whose
// peak utilisation exceeds cfg.NCFlowUtilThreshold, reducing each by 10%.
// Returns the (negative) adjustment to totalFlow. Grounded on
// ncflow.py:update_schedule's second phase + get_bottleneck_links(0.95).
func (e *NCFlow) cleanup(g *topology.Graph, t *tracker, entries []*ncflowEntry) float64 {
	var delta float64
	trimmed := make(map[*ncflowEntry]bool)
	for _, link := range g.Links() {
		capacity := link.Capacity
		if capacity <= 0 {
			continue
		}
		if t.peak(link.ID)/capacity <= e.cfg.NCFlowUtilThreshold {
			continue
		}
		var affected []*ncflowEntry
		for _, entry := range entries {
			for _, id := range entry.linkIDs {
				if id == link.ID {
					affected = append(affected, entry)
					break
				}
			}
		}
		sort.SliceStable(affected, func(i, j int) bool { return affected[i].priority < affected[j].priority })

		trimCount := len(affected) / 2
		if trimCount < 1 {
			trimCount = 1
		}
		if trimCount > len(affected) {
			trimCount = len(affected)
		}
		for _, entry := range affected[:trimCount] {
			if trimmed[entry] {
				// Already reduced (on an earlier overflowing link in this
				// pass) once for every hop of its tunnel; a second trim here
				// would desync totalFlow from the single BWAlloc value.
				continue
			}
			trimmed[entry] = true

			current := entry.samples[link.ID].bandwidth
			reduced := current * 0.9
			if reduced < 0 {
				reduced = 0
			}
			delta -= current - reduced
			// Every hop of this workload's tunnel carries the same
			// bandwidth; reduce the tunnel once, not per overflowing link,
			// so totalFlow and the reported BWAlloc stay in agreement.
			for _, id := range entry.linkIDs {
				entry.samples[id].bandwidth = reduced
			}
			if entry.workload < len(entry.schedSlice) {
				entry.schedSlice[entry.workload] = reduced
			}
		}
	}
	return delta
}
