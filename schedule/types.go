package schedule

import (
	"github.com/katalvlaran/pulsenet/pathfinder"
	"github.com/katalvlaran/pulsenet/topology"
)

// Workload is a periodic source-to-destination flow within one job, active
// during the half-open interval [StartTime, EndTime) modulo the owning
// job's cycle, requesting Bandwidth Gbps. All times
// are in epochs.
type Workload struct {
	Src int64
	Dst int64
	StartTime int64
	EndTime int64
	Bandwidth float64
}

// Job is an identified, periodic set of workloads sharing one cycle.
type Job struct {
	ID int64
	Cycle int64
	Workloads []Workload
}

// TotalBandwidth sums every workload's demand, used by SJF ordering.
func (j Job) TotalBandwidth() float64 {
	var total float64
	for _, w := range j.Workloads {
		total += w.Bandwidth
	}
	return total
}

// LinkRecord is the persisted shape of one tunnel hop.
type LinkRecord struct {
	LinkID int64 `json:"link_id"`
	Src int64 `json:"src"`
	Dst int64 `json:"dst"`
	Capacity float64 `json:"capacity"`
}

// TunnelRecord is one workload's persisted path.
type TunnelRecord []LinkRecord

// JobSchedule is the persisted decision for one job: whether it was
// admitted, its start-time offset, one tunnel per workload, and one
// allocated bandwidth per workload. Created with
// Admit=0 when a job enters admission; mutated only by Phase 1 on
// admission and by Phase 2 during re-allocation; never deleted.
type JobSchedule struct {
	JobID int64 `json:"job_id"`
	Admit int `json:"admit"`
	StartTime int64 `json:"start_time"`
	Tunnels []TunnelRecord `json:"tunnels"`
	BWAlloc []float64 `json:"bw_alloc"`
}

// NewJobSchedule returns a not-yet-admitted schedule for jobID, per
// lifecycle note.
func NewJobSchedule(jobID int64) *JobSchedule {
	return &JobSchedule{JobID: jobID, Admit: 0}
}

// Admitted reports whether the schedule currently carries the job.
func (s *JobSchedule) Admitted() bool {
	return s.Admit == 1
}

// ToTunnelRecord converts a pathfinder.Tunnel into its persisted form.
func ToTunnelRecord(t pathfinder.Tunnel) TunnelRecord {
	rec := make(TunnelRecord, len(t))
	for i, link := range t {
		rec[i] = LinkRecord{LinkID: link.ID, Src: link.Src, Dst: link.Dst, Capacity: link.Capacity}
	}
	return rec
}

// ToTunnel resolves a persisted TunnelRecord back into live *topology.Link
// pointers by id, against g. Returns false if any link id is unknown to g,
// in which case the caller should treat the schedule as unresolvable
// against that graph.
func ToTunnel(rec TunnelRecord, g *topology.Graph) (pathfinder.Tunnel, bool) {
	t := make(pathfinder.Tunnel, len(rec))
	for i, lr := range rec {
		link, ok := g.LinkByID(lr.LinkID)
		if !ok {
			return nil, false
		}
		t[i] = link
	}
	return t, true
}
