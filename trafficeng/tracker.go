package trafficeng

import "sort"

// trafficSample is one workload's contribution to a link, as recorded by a
// tracker. Grounded on phase2's repeated Traffic dataclass (identical across
// greedy.py, traffic_schedule.py, ncflow.py and igr.py).
type trafficSample struct {
	jobID     int64
	workload  int // index into the owning job's Workloads, for callers that must retract one workload's sample without touching a sibling sharing the same link
	cycle     int64
	start     int64
	end       int64
	bandwidth float64
	startTime int64 // the job's admitted phase offset
}

// tracker accumulates per-link traffic samples and their change points
// within a fixed window, the way every phase2 variant's calculate_peak_bw /
// calculate_bottleneck_bw does. Unlike peakengine.Engine, the window is a
// fixed horizon (interval) rather than the superposition LCM — phase2's own
// sources deliberately simplify this for performance ("为了方便直接设置成
// SCHEDULE_INTERVAL，因为算出来的最小公倍数可能远远大于这个数").
type tracker struct {
	interval int64
	traffic  map[int64][]*trafficSample
	points   map[int64]map[int64]struct{}
}

func newTracker(interval int64) *tracker {
	if interval <= 0 {
		interval = 1
	}
	return &tracker{
		interval: interval,
		traffic:  make(map[int64][]*trafficSample),
		points:   make(map[int64]map[int64]struct{}),
	}
}

// add records a sample on linkID and registers its change points across
// every repetition of the sample's cycle inside the tracker's interval. The
// returned pointer lets callers (NCFlow's cleanup pass) adjust the sample's
// bandwidth after the fact without re-deriving its identity.
func (t *tracker) add(linkID int64, s trafficSample) *trafficSample {
	entry := &s
	t.traffic[linkID] = append(t.traffic[linkID], entry)
	if t.points[linkID] == nil {
		t.points[linkID] = make(map[int64]struct{})
	}
	cycle := s.cycle
	if cycle <= 0 {
		cycle = t.interval
	}
	for m := int64(0); m*cycle < t.interval; m++ {
		start := floorMod(s.start+m*cycle+s.startTime, t.interval)
		end := floorMod(s.end+m*cycle+s.startTime, t.interval)
		t.points[linkID][start] = struct{}{}
		t.points[linkID][end] = struct{}{}
	}
	return entry
}

func (t *tracker) sortedPoints(linkID int64) []int64 {
	pts := make([]int64, 0, len(t.points[linkID]))
	for p := range t.points[linkID] {
		pts = append(pts, p)
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i] < pts[j] })
	return pts
}

// sumAt returns the combined bandwidth every sample on linkID contributes at
// absolute time tm.
func (t *tracker) sumAt(linkID, tm int64) float64 {
	var sum float64
	for _, s := range t.traffic[linkID] {
		cycle := s.cycle
		if cycle <= 0 {
			cycle = t.interval
		}
		local := floorMod(tm-s.startTime, cycle)
		if local >= s.start && local < s.end {
			sum += s.bandwidth
		}
	}
	return sum
}

// peak returns the highest combined bandwidth linkID carries at any
// recorded change point.
func (t *tracker) peak(linkID int64) float64 {
	var peak float64
	for _, tm := range t.sortedPoints(linkID) {
		if sum := t.sumAt(linkID, tm); sum >= peak {
			peak = sum
		}
	}
	return peak
}

// bottleneck returns capacity minus the highest combined bandwidth linkID
// carries inside [jobStart, jobEnd) local to jobStartTime and jobCycle — the
// same "restrict to this job's own active window" rule every phase2
// calculate_bottleneck_bw applies. It is evaluated at every recorded change
// point inside the window and at the start of each window repetition, so
// traffic already active when the window opens is counted as well.
func (t *tracker) bottleneck(linkID int64, capacity float64, jobCycle, jobStart, jobEnd, jobStartTime int64) float64 {
	var alloc float64
	pts := t.sortedPoints(linkID)
	if jobCycle > 0 {
		for m := int64(0); m*jobCycle < t.interval; m++ {
			pts = append(pts, floorMod(jobStart+m*jobCycle+jobStartTime, t.interval))
		}
	}
	for _, tm := range pts {
		local := floorMod(tm-jobStartTime, jobCycle)
		if local < jobStart || local >= jobEnd {
			continue
		}
		if sum := t.sumAt(linkID, tm); sum >= alloc {
			alloc = sum
		}
	}
	return capacity - alloc
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
