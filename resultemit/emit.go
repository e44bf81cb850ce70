package resultemit

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/pulsenet/config"
	"github.com/katalvlaran/pulsenet/schedule"
	"github.com/katalvlaran/pulsenet/topology"
	"github.com/katalvlaran/pulsenet/trafficeng"
)

// BuildJobResult converts one job's admission/placement outcome into its
// external-consumption shape. sched may be nil or not-admitted, in which
// case the result carries Status=StatusRejected and no demands.
func BuildJobResult(job schedule.Job, sched *schedule.JobSchedule) JobResult {
	result := JobResult{JobID: job.ID, Status: StatusRejected}
	if sched == nil || !sched.Admitted() {
		return result
	}

	result.Status = StatusAdmitted
	result.StartTime = sched.StartTime
	result.Demands = make([]DemandResult, len(job.Workloads))
	for i := range job.Workloads {
		dr := DemandResult{DemandID: i}
		if i < len(sched.Tunnels) && i < len(sched.BWAlloc) {
			dr.Paths = []PathResult{{Path: sched.Tunnels[i], Bandwidth: sched.BWAlloc[i]}}
		}
		result.Demands[i] = dr
	}
	return result
}

// BuildJobResults converts every job's outcome, preserving jobs' order.
func BuildJobResults(jobs []schedule.Job, schedules map[int64]*schedule.JobSchedule) []JobResult {
	out := make([]JobResult, len(jobs))
	for i, job := range jobs {
		out[i] = BuildJobResult(job, schedules[job.ID])
	}
	return out
}

// MarshalJobResults serialises a full set of job results for external
// consumption.
func MarshalJobResults(results []JobResult) ([]byte, error) {
	return json.Marshal(results)
}

// FormatAdmissionSummary renders one test case's Phase-1 outcome as a single
// line: admitted count, total count, and their ratio.
func FormatAdmissionSummary(admitted, total int) string {
	var ratio float64
	if total > 0 {
		ratio = float64(admitted) / float64(total)
	}
	return fmt.Sprintf("%d/%d %.4f", admitted, total, ratio)
}

// BuildLinkUtilizations computes peak(link)/capacity(link) for every link in
// g carrying at least one admitted sample, ordered by link id ascending.
func BuildLinkUtilizations(jobs []schedule.Job, schedules map[int64]*schedule.JobSchedule, g *topology.Graph, cfg *config.Config) []LinkUtilization {
	peaks := trafficeng.LinkPeaks(jobs, schedules, cfg)

	var out []LinkUtilization
	for _, link := range g.Links() {
		peak, ok := peaks[link.ID]
		if !ok {
			continue
		}
		var util float64
		if link.Capacity > 0 {
			util = peak / link.Capacity
		}
		out = append(out, LinkUtilization{LinkID: link.ID, Utilization: util})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LinkID < out[j].LinkID })
	return out
}

// FormatLinkUtilizationStream renders utils as a newline-separated stream of
// values, one per line, for downstream plotting.
func FormatLinkUtilizationStream(utils []LinkUtilization) string {
	lines := make([]string, len(utils))
	for i, u := range utils {
		lines[i] = fmt.Sprintf("%.6f", u.Utilization)
	}
	return strings.Join(lines, "\n")
}
