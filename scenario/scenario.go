package scenario

import (
	"sort"

	"github.com/katalvlaran/pulsenet/schedule"
)

// Scenario selects a job ordering policy applied before Phase-1 admission.
type Scenario int

const (
	// FCFS preserves arrival order.
	FCFS Scenario = iota
	// SJF orders jobs ascending by total workload bandwidth, smallest
	// demand first, ties broken by stable original order.
	SJF
)

// Order returns a new slice containing jobs ordered per scenario. The
// input slice is never mutated.
func Order(jobs []schedule.Job, s Scenario) []schedule.Job {
	out := make([]schedule.Job, len(jobs))
	copy(out, jobs)

	switch s {
	case SJF:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].TotalBandwidth() < out[j].TotalBandwidth()
		})
	case FCFS:
		// identity
	}
	return out
}
