package trafficeng

import (
	"github.com/katalvlaran/pulsenet/schedule"
	"github.com/katalvlaran/pulsenet/topology"
)

// Engineer re-allocates bandwidth across already-admitted job schedules for
// one scheduling cycle. Implementations never change Admit, StartTime, or
// Tunnels on any schedule — only BWAlloc.
type Engineer interface {
	// Allocate computes bandwidth allocations for every admitted workload in
	// jobs, mutating each schedule's BWAlloc in place, and returns the total
	// flow allocated and the total flow demanded.
	Allocate(jobs []schedule.Job, schedules map[int64]*schedule.JobSchedule, g *topology.Graph) (totalFlow, totalDemand float64)
}

// Result summarises one Allocate call for logging/reporting.
type Result struct {
	TotalFlow   float64
	TotalDemand float64
}

// Utilization returns the fraction of demand actually carried, or 0 if no
// demand was present.
func (r Result) Utilization() float64 {
	if r.TotalDemand <= 0 {
		return 0
	}
	return r.TotalFlow / r.TotalDemand
}

func linkCapacity(g *topology.Graph, linkID int64) float64 {
	if link, ok := g.LinkByID(linkID); ok {
		return link.Capacity
	}
	return 0
}
