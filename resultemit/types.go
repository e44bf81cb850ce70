package resultemit

import "github.com/katalvlaran/pulsenet/schedule"

// PathResult is one demand's carried path and the bandwidth routed over it.
type PathResult struct {
	Path      schedule.TunnelRecord `json:"path"`
	Bandwidth float64               `json:"bandwidth"`
}

// DemandResult is one workload's outcome within a job, identified by its
// position in the job's Workloads slice (DemandID is that index, not a
// separately tracked id — a Job's workloads carry no id of their own).
type DemandResult struct {
	DemandID int          `json:"demand_id"`
	Paths    []PathResult `json:"paths"`
}

// JobResult is the external-consumption record for one job's admission and
// placement outcome.
type JobResult struct {
	JobID     int64          `json:"job_id"`
	Status    string         `json:"status"`
	StartTime int64          `json:"start_time"`
	Demands   []DemandResult `json:"demands"`
}

// Status values reported in JobResult.Status.
const (
	StatusAdmitted = "admitted"
	StatusRejected = "rejected"
)

// LinkUtilization is one link's peak-to-capacity ratio.
type LinkUtilization struct {
	LinkID      int64
	Utilization float64 // peak(link) / capacity(link), in [0, 1] for a feasible result
}
