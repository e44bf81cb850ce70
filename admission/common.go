package admission

import (
	"github.com/katalvlaran/pulsenet/pathfinder"
	"github.com/katalvlaran/pulsenet/peakengine"
	"github.com/katalvlaran/pulsenet/schedule"
)

func toPattern(job schedule.Job, w schedule.Workload) peakengine.LinkTrafficPattern {
	return peakengine.LinkTrafficPattern{
		JobID:     job.ID,
		Cycle:     job.Cycle,
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
		Bandwidth: w.Bandwidth,
	}
}

func toTunnelRecords(tunnels []pathfinder.Tunnel) []schedule.TunnelRecord {
	out := make([]schedule.TunnelRecord, len(tunnels))
	for i, t := range tunnels {
		out[i] = schedule.ToTunnelRecord(t)
	}
	return out
}

func bandwidths(job schedule.Job) []float64 {
	out := make([]float64, len(job.Workloads))
	for i, w := range job.Workloads {
		out[i] = w.Bandwidth
	}
	return out
}

// evictViaEngine removes every pattern jobID contributed across sched's
// committed tunnels and recomputes each touched link, resetting sched to
// not-admitted. Shared by every variant's Rollback.
func evictViaEngine(engine *peakengine.Engine, jobID int64, sched *schedule.JobSchedule) {
	seen := make(map[int64]struct{})
	for _, tr := range sched.Tunnels {
		for _, lr := range tr {
			if _, done := seen[lr.LinkID]; done {
				continue
			}
			seen[lr.LinkID] = struct{}{}
			engine.RemoveJobPatterns(lr.LinkID, jobID)
			engine.Recompute(lr.LinkID, nil)
		}
	}
	sched.Admit = 0
	sched.StartTime = 0
	sched.Tunnels = nil
	sched.BWAlloc = nil
}
