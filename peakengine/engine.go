package peakengine

import (
	"sort"
	"sync"

	"github.com/katalvlaran/pulsenet/config"
)

// Engine owns, per link, the append-only traffic-pattern list and the last
// computed peak, plus the per-job start-offset table shared across every
// link. Not safe for concurrent
// mutation of the same link; RecomputeLinksParallel only parallelises
// across distinct links, matching stated opportunity.
type Engine struct {
	cfg *config.Config
	mu sync.Mutex // guards structural changes to links (new-link creation)
	links map[int64]*linkState
	offsets map[int64]int64
}

// NewEngine returns an empty Engine bound to cfg.
func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		cfg: cfg,
		links: make(map[int64]*linkState),
		offsets: make(map[int64]int64),
	}
}

func (e *Engine) stateFor(linkID int64) *linkState {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.links[linkID]
	if !ok {
		st = &linkState{}
		e.links[linkID] = st
	}
	return st
}

// AppendPattern adds p to linkID's pattern list. If j is non-nil, the append is
// recorded so Journal.Rollback can undo it — callers must roll back in LIFO
// order matching commit order.
func (e *Engine) AppendPattern(linkID int64, p LinkTrafficPattern, j *Journal) {
	st := e.stateFor(linkID)
	st.patterns = append(st.patterns, p)
	if j != nil {
		j.record(func() {
			st.patterns = st.patterns[:len(st.patterns)-1]
		})
	}
}

// SetOffset sets jobID's current start offset, used by every pattern
// already or later contributed by that job across every link. If j is
// non-nil the prior value (or absence) is journalled for rollback.
func (e *Engine) SetOffset(jobID, offset int64, j *Journal) {
	old, existed := e.offsets[jobID]
	e.offsets[jobID] = offset
	if j != nil {
		j.record(func() {
			if existed {
				e.offsets[jobID] = old
			} else {
				delete(e.offsets, jobID)
			}
		})
	}
}

// Offset returns jobID's current start offset (0 if never set).
func (e *Engine) Offset(jobID int64) int64 {
	return e.offsets[jobID]
}

// Patterns returns a defensive copy of linkID's current pattern list.
func (e *Engine) Patterns(linkID int64) []LinkTrafficPattern {
	st := e.stateFor(linkID)
	out := make([]LinkTrafficPattern, len(st.patterns))
	copy(out, st.patterns)
	return out
}

// Peak returns linkID's last-computed PeakInfo without recomputing it.
func (e *Engine) Peak(linkID int64) PeakInfo {
	return e.stateFor(linkID).peak
}

// RemoveJobPatterns deletes every pattern contributed by jobID on linkID,
// preserving the relative order of the rest. Unlike AppendPattern/
// SetOffset/Recompute, this is not journalled — it is the primitive behind
// an admission controller's post-hoc "rollback" capability, which evicts an
// already-committed job outside of any in-flight attempt's journal.
func (e *Engine) RemoveJobPatterns(linkID, jobID int64) {
	st := e.stateFor(linkID)
	kept := st.patterns[:0]
	for _, p := range st.patterns {
		if p.JobID != jobID {
			kept = append(kept, p)
		}
	}
	st.patterns = kept
}

// Recompute runs the peak-bandwidth algorithm over linkID's
// current patterns and offsets, stores the result, and returns it. If j is
// non-nil the prior peak is journalled for rollback.
// Complexity: O(P log P + P·K) where P is the change-point count and K the
// pattern count.
func (e *Engine) Recompute(linkID int64, j *Journal) PeakInfo {
	st := e.stateFor(linkID)
	old := st.peak
	newPeak := e.computePeak(st.patterns, nil)
	st.peak = newPeak
	if j != nil {
		j.record(func() { st.peak = old })
	}
	return newPeak
}

// PeakAtWindow computes the peak restricted to change-points whose
// job-local time (relative to jobID's own cycle and offset) falls inside
// [windowStart, windowEnd) — the "peak_bw_at_window" restriction used to
// bound a workload's bottleneck to its own active interval. Each window
// start is evaluated as a change-point too, so traffic already active when
// the window opens is counted even if none of its own change-points fall
// inside the window.
// Read-only: never mutates linkID's stored peak.
func (e *Engine) PeakAtWindow(linkID, jobID, jobCycle, windowStart, windowEnd int64) PeakInfo {
	st := e.stateFor(linkID)
	off := e.offsets[jobID]
	filter := func(t int64) bool {
		local := floorMod(t-off, jobCycle)
		return local >= windowStart && local < windowEnd
	}
	patterns := st.patterns
	if jobCycle > 0 {
		// A zero-bandwidth probe of the window contributes its start and end
		// as change-points without adding any traffic.
		patterns = make([]LinkTrafficPattern, len(st.patterns), len(st.patterns)+1)
		copy(patterns, st.patterns)
		patterns = append(patterns, LinkTrafficPattern{JobID: jobID, Cycle: jobCycle, StartTime: windowStart, EndTime: windowEnd})
	}
	return e.computePeak(patterns, filter)
}

// RecomputeLinksParallel recomputes every link in linkIDs concurrently,
// bounded by workers simultaneous goroutines — per-link peak recomputation
// is safe to parallelise once all pattern mutations for a batch are
// committed. A workers value <= 0 is treated as 1. Callers must ensure
// linkIDs are distinct; recomputing the same link from two goroutines is a
// data race.
func (e *Engine) RecomputeLinksParallel(linkIDs []int64, workers int) map[int64]PeakInfo {
	if workers <= 0 {
		workers = 1
	}
	results := make(map[int64]PeakInfo, len(linkIDs))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for _, id := range linkIDs {
		wg.Add(1)
		sem <- struct{}{}
		go func(linkID int64) {
			defer wg.Done()
			defer func() { <-sem }()
			peak := e.Recompute(linkID, nil)
			mu.Lock()
			results[linkID] = peak
			mu.Unlock()
		}(id)
	}
	wg.Wait()
	return results
}

// computePeak runs steps 1-3 over patterns using e's current
// offsets, optionally restricting the evaluated change-points to those
// passing filter.
func (e *Engine) computePeak(patterns []LinkTrafficPattern, filter func(t int64) bool) PeakInfo {
	if len(patterns) == 0 {
		return PeakInfo{}
	}

	cycles := make([]int64, len(patterns))
	for i, p := range patterns {
		cycles[i] = roundCycle(p.Cycle, e.cfg.CyclePrecision)
	}
	overlapCycle := lcmCapped(cycles, e.cfg.MaxOverlapCycle)

	points := changePointSet(patterns, e.offsets, overlapCycle)

	var peak PeakInfo
	for _, t := range points {
		if filter != nil && !filter(t) {
			continue
		}
		var sum float64
		for _, p := range patterns {
			off := e.offsets[p.JobID]
			local := floorMod(t-off, p.Cycle)
			if local >= p.StartTime && local < p.EndTime {
				sum += p.Bandwidth
			}
		}
		if sum >= peak.Peak {
			peak = PeakInfo{Peak: sum, At: t}
		}
	}
	return peak
}

func changePointSet(patterns []LinkTrafficPattern, offsets map[int64]int64, overlapCycle int64) []int64 {
	seen := make(map[int64]struct{})
	for _, p := range patterns {
		off := offsets[p.JobID]
		for m := int64(0); m*p.Cycle < overlapCycle; m++ {
			start := floorMod(p.StartTime+m*p.Cycle+off, overlapCycle)
			end := floorMod(p.EndTime+m*p.Cycle+off, overlapCycle)
			seen[start] = struct{}{}
			seen[end] = struct{}{}
		}
	}
	points := make([]int64, 0, len(seen))
	for t := range seen {
		points = append(points, t)
	}
	sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })
	return points
}

// roundCycle rounds cycle to the nearest multiple of precision, matching scheduler_base.py's rounding formula.
func roundCycle(cycle, precision int64) int64 {
	if precision <= 0 {
		return cycle
	}
	return ((cycle + precision/2) / precision) * precision
}

// lcmCapped reduces cycles to their least common multiple, clamping to cap
// at every step rather than only at the end — this avoids int64 overflow
// when many coprime cycles are present while preserving "min(lcm, cap)"
// semantics (once clamped, further lcm-ing against the cap is a no-op
// beyond the cap itself).
func lcmCapped(cycles []int64, cap int64) int64 {
	if len(cycles) == 0 {
		return cap
	}
	result := cycles[0]
	if result <= 0 {
		result = 1
	}
	for _, c := range cycles[1:] {
		if c <= 0 {
			c = 1
		}
		result = result / gcd(result, c) * c
		if result > cap || result <= 0 {
			result = cap
			break
		}
	}
	if result > cap {
		result = cap
	}
	return result
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
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
