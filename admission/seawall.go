package admission

import (
	"github.com/katalvlaran/pulsenet/config"
	"github.com/katalvlaran/pulsenet/pathfinder"
	"github.com/katalvlaran/pulsenet/peakengine"
	"github.com/katalvlaran/pulsenet/schedule"
	"github.com/katalvlaran/pulsenet/topology"
)

// Seawall admits every workload onto the tunnel with the highest summed
// bandwidth quota share (each link's capacity split among the jobs
// currently contributing to it, proportional to each job's total declared
// quota), then checks the tunnel's capacity over the workload's own active
// window exactly as Aequitas does. Grounded on
// original_source/src/phase1/seawall.py:deploy.
type Seawall struct {
	cfg    *config.Config
	g      *topology.Graph
	finder *pathfinder.Finder
	engine *peakengine.Engine
	ledger *ledger

	quota       map[int64]int64            // job id -> bandwidth quota (floor of total demand)
	linkTenants map[int64]map[int64]bool    // link id -> set of job ids currently contributing
}

// NewSeawall returns a Seawall controller over g.
func NewSeawall(cfg *config.Config, g *topology.Graph) *Seawall {
	return &Seawall{
		cfg:         cfg,
		g:           g,
		finder:      pathfinder.New(g),
		engine:      peakengine.NewEngine(cfg),
		ledger:      newLedger(),
		quota:       make(map[int64]int64),
		linkTenants: make(map[int64]map[int64]bool),
	}
}

// ScheduleJob implements Controller.
func (c *Seawall) ScheduleJob(job schedule.Job) *schedule.JobSchedule {
	sched := schedule.NewJobSchedule(job.ID)
	c.quota[job.ID] = int64(job.TotalBandwidth())

	tunnels := make([]pathfinder.Tunnel, len(job.Workloads))
	j := c.engine.NewJournal()

	for i, w := range job.Workloads {
		candidates := c.finder.FindMultiPath(w.Src, w.Dst, multiPathCandidates)
		var best pathfinder.Tunnel
		bestScore := 0.0
		for _, t := range candidates {
			score := 0.0
			for _, link := range t {
				tenantQuota := int64(0)
				for tenant := range c.linkTenants[link.ID] {
					tenantQuota += c.quota[tenant]
				}
				score += link.Capacity * float64(c.quota[job.ID]) / float64(tenantQuota+c.quota[job.ID])
			}
			if score > bestScore {
				bestScore = score
				best = t
			}
		}
		if len(best) == 0 {
			j.Rollback()
			c.untenant(job.ID, tunnels[:i])
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
			j.Rollback()
			c.untenant(job.ID, tunnels[:i])
			c.ledger.put(sched)
			return sched
		}

		for _, link := range best {
			c.engine.AppendPattern(link.ID, toPattern(job, w), j)
			if c.linkTenants[link.ID] == nil {
				c.linkTenants[link.ID] = make(map[int64]bool)
			}
			c.linkTenants[link.ID][job.ID] = true
		}
	}

	j.Discard()
	sched.Admit = 1
	sched.Tunnels = toTunnelRecords(tunnels)
	sched.BWAlloc = bandwidths(job)

	c.ledger.put(sched)
	return sched
}

func (c *Seawall) untenant(jobID int64, committed []pathfinder.Tunnel) {
	for _, t := range committed {
		for _, link := range t {
			delete(c.linkTenants[link.ID], jobID)
		}
	}
}

// Rollback implements Controller.
func (c *Seawall) Rollback(jobID int64) bool {
	sched, ok := c.ledger.get(jobID)
	if !ok || !sched.Admitted() {
		return false
	}
	tunnels := sched.Tunnels
	evictViaEngine(c.engine, jobID, sched)
	for _, tr := range tunnels {
		for _, lr := range tr {
			delete(c.linkTenants[lr.LinkID], jobID)
		}
	}
	return true
}

// Emit implements Controller.
func (c *Seawall) Emit() []*schedule.JobSchedule {
	return c.ledger.emit()
}
