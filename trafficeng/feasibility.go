package trafficeng

import (
	"github.com/katalvlaran/pulsenet/config"
	"github.com/katalvlaran/pulsenet/schedule"
	"github.com/katalvlaran/pulsenet/topology"
)

// LinkPeaks rebuilds a tracker from each admitted schedule's committed
// BWAlloc and returns the resulting peak aggregate bandwidth per link id,
// for every link carrying at least one sample. Exported so resultemit can
// format per-link utilisation without re-deriving Phase 2's bookkeeping.
func LinkPeaks(jobs []schedule.Job, schedules map[int64]*schedule.JobSchedule, cfg *config.Config) map[int64]float64 {
	t := newTracker(cfg.ScheduleInterval)
	for _, job := range jobs {
		sched, ok := schedules[job.ID]
		if !ok || !sched.Admitted() {
			continue
		}
		for wi, w := range job.Workloads {
			if wi >= len(sched.Tunnels) || wi >= len(sched.BWAlloc) {
				continue
			}
			bw := sched.BWAlloc[wi]
			if bw <= 0 {
				continue
			}
			for _, lr := range sched.Tunnels[wi] {
				t.add(lr.LinkID, trafficSample{
					jobID: job.ID, cycle: job.Cycle,
					start: w.StartTime, end: w.EndTime,
					bandwidth: bw, startTime: sched.StartTime,
				})
			}
		}
	}
	peaks := make(map[int64]float64, len(t.traffic))
	for linkID := range t.traffic {
		peaks[linkID] = t.peak(linkID)
	}
	return peaks
}

// CheckFeasible reports ErrInfeasible if any link's peak (per LinkPeaks)
// exceeds its capacity. Callers run this once after Allocate, as the
// boundary check before persisting or emitting a traffic-engineering
// result.
func CheckFeasible(jobs []schedule.Job, schedules map[int64]*schedule.JobSchedule, g *topology.Graph, cfg *config.Config) error {
	peaks := LinkPeaks(jobs, schedules, cfg)
	for _, link := range g.Links() {
		if peaks[link.ID] > link.Capacity {
			return ErrInfeasible
		}
	}
	return nil
}
