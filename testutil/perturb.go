package testutil

import (
	"math/rand"

	"github.com/katalvlaran/pulsenet/schedule"
)

// skipProbability mirrors random_fluctuate's 0.7 "leave unchanged" draw:
// only a minority of workloads are perturbed on any given call.
const skipProbability = 0.7

// Perturb returns a copy of jobs in which each workload is, independently,
// left unchanged with probability skipProbability or otherwise jittered: its
// window shifted as a whole by one offset of up to ±pct of the job's cycle
// (both bounds clamped into [0, cycle], end never before start), and its
// bandwidth by up to ±pct of its current value (clamped to non-negative). rng must be
// caller-supplied — the core packages never call math/rand directly, so
// all non-determinism is confined to this helper.
func Perturb(jobs []schedule.Job, pct float64, rng *rand.Rand) []schedule.Job {
	out := make([]schedule.Job, len(jobs))
	for i, job := range jobs {
		newJob := schedule.Job{ID: job.ID, Cycle: job.Cycle, Workloads: make([]schedule.Workload, len(job.Workloads))}
		for wi, w := range job.Workloads {
			if rng.Float64() < skipProbability {
				newJob.Workloads[wi] = w
				continue
			}

			span := pct * float64(job.Cycle)
			offset := int64(rng.Float64()*2*span - span)

			ts := clamp(w.StartTime+offset, 0, job.Cycle)
			te := clamp(w.EndTime+offset, ts, job.Cycle)

			bwJitter := w.Bandwidth * (rng.Float64()*2*pct - pct)
			bw := w.Bandwidth + bwJitter
			if bw < 0 {
				bw = 0
			}

			newJob.Workloads[wi] = schedule.Workload{
				Src: w.Src, Dst: w.Dst,
				StartTime: ts, EndTime: te,
				Bandwidth: bw,
			}
		}
		out[i] = newJob
	}
	return out
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
