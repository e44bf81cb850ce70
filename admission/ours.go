package admission

import (
	"sort"

	"github.com/katalvlaran/pulsenet/config"
	"github.com/katalvlaran/pulsenet/pathfinder"
	"github.com/katalvlaran/pulsenet/peakengine"
	"github.com/katalvlaran/pulsenet/schedule"
	"github.com/katalvlaran/pulsenet/topology"
)

// Ours is direct deployment with a bounded local phase-offset adjustment
// fallback: when direct deployment overflows some link, the heaviest
// contributing job at that link's peak instant is shifted to the first
// candidate start offset that brings the link back under capacity without
// overflowing any of that job's other links. Grounded on
// original_source/src/phase1/bate.py's direct_deploy/local_adjust/
// link_adjust.
type Ours struct {
	cfg *config.Config
	g *topology.Graph
	finder *pathfinder.Finder
	engine *peakengine.Engine
	ledger *ledger

	// jobCycles and jobLinks accumulate across every ScheduleJob call so a
	// later job's local adjustment can re-examine an earlier job's full
	// footprint.
	jobCycles map[int64]int64
	jobLinks map[int64]map[int64]struct{}
}

// NewOurs returns an Ours controller over g.
func NewOurs(cfg *config.Config, g *topology.Graph) *Ours {
	return &Ours{
		cfg: cfg,
		g: g,
		finder: pathfinder.New(g),
		engine: peakengine.NewEngine(cfg),
		ledger: newLedger(),
		jobCycles: make(map[int64]int64),
		jobLinks: make(map[int64]map[int64]struct{}),
	}
}

// ScheduleJob implements Controller.
func (c *Ours) ScheduleJob(job schedule.Job) *schedule.JobSchedule {
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

	j := c.engine.NewJournal()
	ok := c.tryDirect(job, tunnels, j)
	if !ok {
		j.Rollback()
		j = c.engine.NewJournal()
		ok = c.tryLocalAdjust(job, tunnels, j)
	}

	if !ok {
		j.Rollback()
		c.ledger.put(sched)
		return sched
	}

	j.Discard()
	sched.Admit = 1
	sched.StartTime = c.engine.Offset(job.ID)
	sched.Tunnels = toTunnelRecords(tunnels)
	sched.BWAlloc = bandwidths(job)

	c.ledger.put(sched)
	return sched
}

func (c *Ours) tryDirect(job schedule.Job, tunnels []pathfinder.Tunnel, j *peakengine.Journal) bool {
	for i, w := range job.Workloads {
		for _, link := range tunnels[i] {
			if link.Capacity-c.engine.Peak(link.ID).Peak < w.Bandwidth {
				return false
			}
		}
	}
	for i, w := range job.Workloads {
		for _, link := range tunnels[i] {
			c.commitPattern(job, link.ID, w, j)
			c.engine.Recompute(link.ID, j)
		}
	}
	return true
}

// tryLocalAdjust appends each workload's pattern and, whenever a link
// overflows, invokes linkAdjust to shift the heaviest contributing job's
// offset until the link fits — bounded by cfg.MaxAdjustCallsPerJob total
// linkAdjust invocations.
func (c *Ours) tryLocalAdjust(job schedule.Job, tunnels []pathfinder.Tunnel, j *peakengine.Journal) bool {
	adjustCalls := 0
	trials := 0

	for i, w := range job.Workloads {
		for _, link := range tunnels[i] {
			c.commitPattern(job, link.ID, w, j)
			peak := c.engine.Recompute(link.ID, j)
			if peak.Peak <= link.Capacity {
				continue
			}
			if adjustCalls >= c.cfg.MaxAdjustCallsPerJob {
				return false
			}
			adjustCalls++
			if !c.linkAdjust(link, j, &trials) {
				return false
			}
		}
	}
	return true
}

type contribution struct {
	jobID int64
	bw float64
}

// linkAdjust identifies the jobs contributing to link's current peak
// instant, heaviest first, and tries shifting each to the first candidate
// offset (step cfg.TimePrecision) that brings link back under capacity
// without overflowing that job's other touched links. trials counts the
// offsets evaluated so far across every linkAdjust call of the same job and
// is capped at cfg.MaxOffsetTrialsPerJob.
func (c *Ours) linkAdjust(link *topology.Link, j *peakengine.Journal, trials *int) bool {
	peakAt := c.engine.Peak(link.ID).At
	patterns := c.engine.Patterns(link.ID)

	// order preserves each job's first appearance in the link's pattern
	// list (commit order) so ties in the sort below break deterministically
	// instead of following Go's randomized map iteration.
	var order []int64
	sums := make(map[int64]float64)
	for _, p := range patterns {
		off := c.engine.Offset(p.JobID)
		local := floorMod(peakAt-off, p.Cycle)
		if local < p.StartTime || local >= p.EndTime {
			continue
		}
		if _, seen := sums[p.JobID]; !seen {
			order = append(order, p.JobID)
		}
		sums[p.JobID] += p.Bandwidth
	}

	contribs := make([]contribution, len(order))
	for i, id := range order {
		contribs[i] = contribution{jobID: id, bw: sums[id]}
	}
	sort.SliceStable(contribs, func(a, b int) bool { return contribs[a].bw > contribs[b].bw })

	for _, contrib := range contribs {
		cycle, known := c.jobCycles[contrib.jobID]
		if !known || cycle <= 0 {
			continue
		}
		step := c.cfg.TimePrecision
		for s := int64(0); s < cycle && *trials < c.cfg.MaxOffsetTrialsPerJob; s += step {
			*trials++
			c.engine.SetOffset(contrib.jobID, s, j)
			peak := c.engine.Recompute(link.ID, j)
			if peak.Peak <= link.Capacity && c.otherLinksOK(contrib.jobID, link.ID, j) {
				// A shifted job may be one already admitted in an earlier
				// call; its previously reported schedule must reflect the
				// new offset too.
				if existing, ok := c.ledger.get(contrib.jobID); ok && existing.Admitted() {
					existing.StartTime = s
				}
				return true
			}
		}
	}
	return false
}

// otherLinksOK recomputes every other link jobID has ever touched and
// reports whether all remain at or under capacity.
func (c *Ours) otherLinksOK(jobID, excludeLinkID int64, j *peakengine.Journal) bool {
	for linkID := range c.jobLinks[jobID] {
		if linkID == excludeLinkID {
			continue
		}
		link, ok := c.g.LinkByID(linkID)
		if !ok {
			continue
		}
		peak := c.engine.Recompute(linkID, j)
		if peak.Peak > link.Capacity {
			return false
		}
	}
	return true
}

func (c *Ours) commitPattern(job schedule.Job, linkID int64, w schedule.Workload, j *peakengine.Journal) {
	c.engine.AppendPattern(linkID, toPattern(job, w), j)
	c.jobCycles[job.ID] = job.Cycle
	if c.jobLinks[job.ID] == nil {
		c.jobLinks[job.ID] = make(map[int64]struct{})
	}
	c.jobLinks[job.ID][linkID] = struct{}{}
}

func floorMod(a, m int64) int64 {
	if m <= 0 {
		return 0
	}
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// Rollback implements Controller.
func (c *Ours) Rollback(jobID int64) bool {
	sched, ok := c.ledger.get(jobID)
	if !ok || !sched.Admitted() {
		return false
	}
	evictViaEngine(c.engine, jobID, sched)
	c.engine.SetOffset(jobID, 0, nil)
	return true
}

// Emit implements Controller.
func (c *Ours) Emit() []*schedule.JobSchedule {
	return c.ledger.emit()
}
