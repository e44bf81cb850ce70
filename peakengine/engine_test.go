package peakengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pulsenet/config"
	"github.com/katalvlaran/pulsenet/peakengine"
)

func newEngine() *peakengine.Engine {
	return peakengine.NewEngine(config.New())
}

func TestRecompute_EmptyLinkHasZeroPeak(t *testing.T) {
	e := newEngine()
	peak := e.Recompute(1, nil)
	assert.Equal(t, 0.0, peak.Peak)
}

func TestRecompute_SingleNonOverlappingPattern(t *testing.T) {
	e := newEngine()
	e.AppendPattern(1, peakengine.LinkTrafficPattern{JobID: 10, Cycle: 1000, StartTime: 0, EndTime: 500, Bandwidth: 40}, nil)

	peak := e.Recompute(1, nil)
	assert.InDelta(t, 40, peak.Peak, 1e-9)
	assert.True(t, peak.At >= 0 && peak.At < 500)
}

func TestRecompute_TwoOverlappingPatternsSum(t *testing.T) {
	e := newEngine()
	e.AppendPattern(1, peakengine.LinkTrafficPattern{JobID: 10, Cycle: 1000, StartTime: 0, EndTime: 500, Bandwidth: 40}, nil)
	e.AppendPattern(1, peakengine.LinkTrafficPattern{JobID: 11, Cycle: 1000, StartTime: 200, EndTime: 700, Bandwidth: 30}, nil)

	peak := e.Recompute(1, nil)
	// Overlap window [200,500) carries both: 70.
	assert.InDelta(t, 70, peak.Peak, 1e-9)
}

func TestRecompute_OffsetShiftsWindowOutOfOverlap(t *testing.T) {
	e := newEngine()
	e.AppendPattern(1, peakengine.LinkTrafficPattern{JobID: 10, Cycle: 1000, StartTime: 0, EndTime: 500, Bandwidth: 60}, nil)
	e.AppendPattern(1, peakengine.LinkTrafficPattern{JobID: 11, Cycle: 1000, StartTime: 0, EndTime: 500, Bandwidth: 60}, nil)

	// Both jobs start at offset 0: fully overlapping, peak 120.
	peak := e.Recompute(1, nil)
	assert.InDelta(t, 120, peak.Peak, 1e-9)

	// Shift job 11 by half the cycle so the windows no longer overlap.
	e.SetOffset(11, 500, nil)
	peak = e.Recompute(1, nil)
	assert.InDelta(t, 60, peak.Peak, 1e-9)
}

func TestRollback_AppendPatternIsUndone(t *testing.T) {
	e := newEngine()
	e.AppendPattern(1, peakengine.LinkTrafficPattern{JobID: 10, Cycle: 1000, StartTime: 0, EndTime: 500, Bandwidth: 40}, nil)
	e.Recompute(1, nil)

	before := e.Patterns(1)
	beforePeak := e.Peak(1)

	j := e.NewJournal()
	e.AppendPattern(1, peakengine.LinkTrafficPattern{JobID: 11, Cycle: 1000, StartTime: 0, EndTime: 500, Bandwidth: 999}, j)
	e.Recompute(1, j)
	require.InDelta(t, 1039, e.Peak(1).Peak, 1e-9)

	j.Rollback()

	assert.Equal(t, before, e.Patterns(1))
	assert.Equal(t, beforePeak, e.Peak(1))
}

func TestRollback_IsLIFOAcrossMultipleMutations(t *testing.T) {
	e := newEngine()
	j := e.NewJournal()

	e.SetOffset(10, 100, j)
	e.AppendPattern(1, peakengine.LinkTrafficPattern{JobID: 10, Cycle: 1000, StartTime: 0, EndTime: 500, Bandwidth: 40}, j)
	e.Recompute(1, j)

	require.Equal(t, 3, j.Len())
	j.Rollback()

	assert.Empty(t, e.Patterns(1))
	assert.Equal(t, int64(0), e.Offset(10))
	assert.Equal(t, 0.0, e.Peak(1).Peak)
}

func TestRecomputeFromScratchMatchesIncremental(t *testing.T) {
	e := newEngine()
	patterns := []peakengine.LinkTrafficPattern{
		{JobID: 1, Cycle: 300, StartTime: 0, EndTime: 100, Bandwidth: 10},
		{JobID: 2, Cycle: 200, StartTime: 50, EndTime: 150, Bandwidth: 20},
		{JobID: 3, Cycle: 500, StartTime: 0, EndTime: 500, Bandwidth: 5},
	}

	var incrementalPeak peakengine.PeakInfo
	for _, p := range patterns {
		e.AppendPattern(42, p, nil)
		incrementalPeak = e.Recompute(42, nil)
	}

	fresh := newEngine()
	for _, p := range patterns {
		fresh.AppendPattern(42, p, nil)
	}
	fromScratch := fresh.Recompute(42, nil)

	assert.Equal(t, fromScratch, incrementalPeak)
}

func TestPeakAtWindow_RestrictsToJobLocalInterval(t *testing.T) {
	e := newEngine()
	// Background traffic peaks at 100 globally, but only inside [0,50).
	e.AppendPattern(1, peakengine.LinkTrafficPattern{JobID: 1, Cycle: 1000, StartTime: 0, EndTime: 50, Bandwidth: 100}, nil)
	// A second, unrelated job's workload is active during job-local [500,600).
	e.AppendPattern(1, peakengine.LinkTrafficPattern{JobID: 2, Cycle: 1000, StartTime: 500, EndTime: 600, Bandwidth: 10}, nil)

	windowed := e.PeakAtWindow(1, 2, 1000, 500, 600)
	assert.InDelta(t, 10, windowed.Peak, 1e-9)
}

func TestRecomputeLinksParallel_MatchesSequential(t *testing.T) {
	e := newEngine()
	links := []int64{1, 2, 3, 4, 5}
	for _, id := range links {
		e.AppendPattern(id, peakengine.LinkTrafficPattern{JobID: id, Cycle: 1000, StartTime: 0, EndTime: 500, Bandwidth: float64(id) * 10}, nil)
	}

	results := e.RecomputeLinksParallel(links, 3)
	require.Len(t, results, len(links))
	for _, id := range links {
		assert.InDelta(t, float64(id)*10, results[id].Peak, 1e-9)
		assert.Equal(t, results[id], e.Peak(id))
	}
}
