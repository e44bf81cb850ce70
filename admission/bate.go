package admission

import (
	"github.com/katalvlaran/pulsenet/config"
	"github.com/katalvlaran/pulsenet/pathfinder"
	"github.com/katalvlaran/pulsenet/peakengine"
	"github.com/katalvlaran/pulsenet/schedule"
	"github.com/katalvlaran/pulsenet/topology"
)

// BATE is direct-deployment-only admission: find one best-first path per
// workload, check every touched link's residual capacity against the
// workload's demand, and either commit all of them or reject the whole
// job. Grounded on original_source/src/phase1/bate.py:direct_deploy
// (step 1 only — no local adjustment).
type BATE struct {
	cfg    *config.Config
	g      *topology.Graph
	finder *pathfinder.Finder
	engine *peakengine.Engine
	ledger *ledger
}

// NewBATE returns a BATE controller over g, sharing no state with any
// other controller instance.
func NewBATE(cfg *config.Config, g *topology.Graph) *BATE {
	return &BATE{
		cfg:    cfg,
		g:      g,
		finder: pathfinder.New(g),
		engine: peakengine.NewEngine(cfg),
		ledger: newLedger(),
	}
}

// ScheduleJob implements Controller.
func (c *BATE) ScheduleJob(job schedule.Job) *schedule.JobSchedule {
	sched := schedule.NewJobSchedule(job.ID)

	tunnels := make([]pathfinder.Tunnel, len(job.Workloads))
	for i, w := range job.Workloads {
		t := c.finder.FindPath(w.Src, w.Dst)
		if len(t) == 0 {
			c.ledger.put(sched)
			return sched
		}
		tunnels[i] = t
	}

	for i, w := range job.Workloads {
		for _, link := range tunnels[i] {
			if link.Capacity-c.engine.Peak(link.ID).Peak < w.Bandwidth {
				c.ledger.put(sched)
				return sched
			}
		}
	}

	j := c.engine.NewJournal()
	for i, w := range job.Workloads {
		for _, link := range tunnels[i] {
			c.engine.AppendPattern(link.ID, toPattern(job, w), j)
			c.engine.Recompute(link.ID, j)
		}
	}
	j.Discard()

	sched.Admit = 1
	sched.StartTime = 0
	sched.Tunnels = toTunnelRecords(tunnels)
	sched.BWAlloc = bandwidths(job)

	c.ledger.put(sched)
	return sched
}

// Rollback implements Controller.
func (c *BATE) Rollback(jobID int64) bool {
	sched, ok := c.ledger.get(jobID)
	if !ok || !sched.Admitted() {
		return false
	}
	evictViaEngine(c.engine, jobID, sched)
	return true
}

// Emit implements Controller.
func (c *BATE) Emit() []*schedule.JobSchedule {
	return c.ledger.emit()
}
