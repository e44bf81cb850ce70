package admission

import (
	"github.com/katalvlaran/pulsenet/config"
	"github.com/katalvlaran/pulsenet/pathfinder"
	"github.com/katalvlaran/pulsenet/peakengine"
	"github.com/katalvlaran/pulsenet/schedule"
	"github.com/katalvlaran/pulsenet/topology"
)

// multiPathCandidates is the number of distinct tunnels Aequitas and
// Seawall consider per workload before scoring — the default
// find_all_paths budget in original_source/src/network/path_finder.py.
const multiPathCandidates = 5

// Aequitas admits every workload onto the tunnel with the highest
// admission probability (the minimum, over the tunnel's links, of each
// link's running admit-probability score), then checks the tunnel's
// capacity over the workload's own active window. Accepting a workload
// multiplies every link's admit-probability by (1 - bw/capacity);
// rejecting any workload in a job fully rolls back that job. Grounded on
// original_source/src/phase1/aequitas.py:deploy.
type Aequitas struct {
	cfg *config.Config
	g *topology.Graph
	finder *pathfinder.Finder
	engine *peakengine.Engine
	ledger *ledger
	admitProb map[int64]float64 // link id -> admission probability, default 1.0
}

// NewAequitas returns an Aequitas controller over g.
func NewAequitas(cfg *config.Config, g *topology.Graph) *Aequitas {
	return &Aequitas{
		cfg: cfg,
		g: g,
		finder: pathfinder.New(g),
		engine: peakengine.NewEngine(cfg),
		ledger: newLedger(),
		admitProb: make(map[int64]float64),
	}
}

func (c *Aequitas) prob(linkID int64) float64 {
	if p, ok := c.admitProb[linkID]; ok {
		return p
	}
	return 1.0
}

// ScheduleJob implements Controller.
func (c *Aequitas) ScheduleJob(job schedule.Job) *schedule.JobSchedule {
	sched := schedule.NewJobSchedule(job.ID)
	tunnels := make([]pathfinder.Tunnel, len(job.Workloads))

	j := c.engine.NewJournal()

	for i, w := range job.Workloads {
		candidates := c.finder.FindMultiPath(w.Src, w.Dst, multiPathCandidates)
		var best pathfinder.Tunnel
		bestProb := 0.0
		for _, t := range candidates {
			p := 1.0
			for _, link := range t {
				if lp := c.prob(link.ID); lp < p {
					p = lp
				}
			}
			if p > bestProb {
				bestProb = p
				best = t
			}
		}
		if len(best) == 0 {
			c.rollbackProb(job, tunnels[:i])
			j.Rollback()
			c.ledger.put(sched)
			return sched
		}
		tunnels[i] = best

		remaining := posInf
		for _, link := range best {
			windowed := c.engine.PeakAtWindow(link.ID, job.ID, job.Cycle, w.StartTime, w.EndTime)
			if avail := link.Capacity - windowed.Peak; avail < remaining {
				remaining = avail
			}
		}
		if remaining < w.Bandwidth {
			c.rollbackProb(job, tunnels[:i])
			j.Rollback()
			c.ledger.put(sched)
			return sched
		}

		for _, link := range best {
			c.admitProb[link.ID] = c.prob(link.ID) * (1.0 - w.Bandwidth/link.Capacity)
			c.engine.AppendPattern(link.ID, toPattern(job, w), j)
		}
	}

	j.Discard()
	sched.Admit = 1
	sched.Tunnels = toTunnelRecords(tunnels)
	sched.BWAlloc = bandwidths(job)

	c.ledger.put(sched)
	return sched
}

// rollbackProb reverses the admit-probability updates applied for the
// workloads already committed before a later workload in the same job
// fails.
func (c *Aequitas) rollbackProb(job schedule.Job, committed []pathfinder.Tunnel) {
	for i, t := range committed {
		w := job.Workloads[i]
		for _, link := range t {
			c.admitProb[link.ID] = c.prob(link.ID) / (1.0 - w.Bandwidth/link.Capacity)
		}
	}
}

// Rollback implements Controller. Admission-probability effects are left
// in place: they are a policy-level score, not per-job state requiring
// byte-identical restoration (only the pattern list, change-point set,
// and peak table carry that guarantee).
func (c *Aequitas) Rollback(jobID int64) bool {
	sched, ok := c.ledger.get(jobID)
	if !ok || !sched.Admitted() {
		return false
	}
	evictViaEngine(c.engine, jobID, sched)
	return true
}

// Emit implements Controller.
func (c *Aequitas) Emit() []*schedule.JobSchedule {
	return c.ledger.emit()
}

const posInf = 1e308
