// File: config.go
// Role: immutable configuration for the admission/traffic-engineering
// pipeline, built once via functional options and threaded explicitly
// through every component constructor.
//
// Contract (mirrors the functional-options builder convention used
// elsewhere in this module):
// - Options are functional (type Option func(*Config)).
// - Option constructors validate and panic on meaningless input; the
// algorithms that consume a *Config must never panic themselves.
// - No hidden globals: every tunable named in lives here.
package config

import "time"

// Config collects every tunable constant referenced by the peak-bandwidth
// engine, the admission controller, and the traffic engineer. Zero value is
// not valid; always construct via New.
type Config struct {
	// EpochMillis is the discretisation unit for all times. Workload/job times in milliseconds are converted
	// to epochs by dividing by EpochMillis.
	EpochMillis int64

	// CyclePrecision rounds a job's cycle before computing the
	// superposition LCM.
	CyclePrecision int64

	// MaxOverlapCycle caps the superposition cycle C.
	MaxOverlapCycle int64

	// TimePrecision is the step used when enumerating candidate start
	// offsets during local adjustment.
	TimePrecision int64

	// ScheduleInterval is the periodic re-optimisation horizon named in
	// ("SCHEDULE_INTERVAL" as a module global in the source).
	// Phase-2 traffic engineers use it as the fixed horizon of their
	// per-link traffic trackers; it does not cap the superposition cycle —
	// MaxOverlapCycle is authoritative there.
	ScheduleInterval int64

	// MaxAdjustCallsPerJob bounds the number of link_adjust invocations a
	// single job's local adjustment may spend. Exceeding it aborts the attempt.
	MaxAdjustCallsPerJob int

	// MaxOffsetTrialsPerJob is the total number of candidate start offsets
	// (across all overflowing links) a single job's local adjustment may
	// evaluate before giving up — the "max_search_states" knob // attributes to the A*-style variant, repurposed here as a global
	// search-richness cap on the offset sweep.
	MaxOffsetTrialsPerJob int

	// MaxIGRIterations bounds the number of IGR growth rounds (stage B). IGR
	// does no binary search on weights.
	MaxIGRIterations int

	// IGRTableEntryBudget is the total number of path-weight table entries
	// IGR's table-carving step distributes across workloads.
	IGRTableEntryBudget int

	// IGRMaxWeight caps each workload's table-carving entry budget.
	IGRMaxWeight int

	// IGRMinPathDiversity scales the floor of each workload's table-carving
	// share (IGRMinPathDiversity/len(workloads) of the budget). IGR keeps a
	// single tunnel per workload and does not check path diversity.
	IGRMinPathDiversity int

	// IGRMinGuaranteeFraction is the fraction of demand IGR allocates in
	// its first ("minimum guarantee") sweep before proportional refinement.
	IGRMinGuaranteeFraction float64

	// IGRFallbackFraction is the per-workload fraction of demand below which
	// IGR recomputes that workload's allocation greedily (capped at its
	// bottleneck) and keeps the larger of the two.
	IGRFallbackFraction float64

	// NCFlowUtilThreshold is the per-link utilisation above which NCFlow's
	// cleanup pass reduces low-priority carried bandwidth.
	NCFlowUtilThreshold float64
}

// Option mutates a Config during construction.
type Option func(*Config)

// New builds a Config with defaults, then applies opts in order.
// Complexity: O(len(opts)).
func New(opts ...Option) *Config {
	c := &Config{
		EpochMillis: 10,
		CyclePrecision: 100,
		MaxOverlapCycle: 10000,
		TimePrecision: 100,
		ScheduleInterval: 10000,
		MaxAdjustCallsPerJob: 10,
		MaxOffsetTrialsPerJob: 1000,
		MaxIGRIterations: 100,
		IGRTableEntryBudget: 4096,
		IGRMaxWeight: 100,
		IGRMinPathDiversity: 2,
		IGRMinGuaranteeFraction: 0.30,
		IGRFallbackFraction: 0.50,
		NCFlowUtilThreshold: 0.95,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithEpochMillis overrides the epoch discretisation unit (default 10ms).
// Panics on non-positive input.
func WithEpochMillis(ms int64) Option {
	if ms <= 0 {
		panic("config: WithEpochMillis requires ms > 0")
	}
	return func(c *Config) { c.EpochMillis = ms }
}

// WithCyclePrecision overrides the cycle-rounding precision used before
// computing the superposition LCM. Panics on non-positive input.
func WithCyclePrecision(p int64) Option {
	if p <= 0 {
		panic("config: WithCyclePrecision requires p > 0")
	}
	return func(c *Config) { c.CyclePrecision = p }
}

// WithMaxOverlapCycle overrides the superposition-cycle cap. Panics on
// non-positive input.
func WithMaxOverlapCycle(c2 int64) Option {
	if c2 <= 0 {
		panic("config: WithMaxOverlapCycle requires c2 > 0")
	}
	return func(c *Config) { c.MaxOverlapCycle = c2 }
}

// WithTimePrecision overrides the offset-sweep step size. Panics on
// non-positive input.
func WithTimePrecision(step int64) Option {
	if step <= 0 {
		panic("config: WithTimePrecision requires step > 0")
	}
	return func(c *Config) { c.TimePrecision = step }
}

// WithScheduleInterval overrides the periodic re-optimisation horizon.
func WithScheduleInterval(interval int64) Option {
	if interval <= 0 {
		panic("config: WithScheduleInterval requires interval > 0")
	}
	return func(c *Config) { c.ScheduleInterval = interval }
}

// WithMaxAdjustCallsPerJob overrides the local-adjustment call budget.
func WithMaxAdjustCallsPerJob(n int) Option {
	if n < 0 {
		panic("config: WithMaxAdjustCallsPerJob requires n >= 0")
	}
	return func(c *Config) { c.MaxAdjustCallsPerJob = n }
}

// WithMaxOffsetTrialsPerJob overrides the total offset-sweep trial cap.
func WithMaxOffsetTrialsPerJob(n int) Option {
	if n < 0 {
		panic("config: WithMaxOffsetTrialsPerJob requires n >= 0")
	}
	return func(c *Config) { c.MaxOffsetTrialsPerJob = n }
}

// WithMaxIGRIterations overrides IGR's growth-round cap.
func WithMaxIGRIterations(n int) Option {
	if n <= 0 {
		panic("config: WithMaxIGRIterations requires n > 0")
	}
	return func(c *Config) { c.MaxIGRIterations = n }
}

// WithNCFlowUtilThreshold overrides NCFlow's cleanup-pass trigger. Panics
// unless the threshold is in (0, 1].
func WithNCFlowUtilThreshold(t float64) Option {
	if t <= 0 || t > 1 {
		panic("config: WithNCFlowUtilThreshold requires t in (0, 1]")
	}
	return func(c *Config) { c.NCFlowUtilThreshold = t }
}

// EpochsFromMillis converts a millisecond duration to epochs, flooring.
func (c *Config) EpochsFromMillis(ms int64) int64 {
	return ms / c.EpochMillis
}

// EpochsFromMillisCeil converts a millisecond duration to epochs, ceiling —
// used for workload end times and job cycles .
func (c *Config) EpochsFromMillisCeil(ms int64) int64 {
	return (ms + c.EpochMillis - 1) / c.EpochMillis
}

// EpochDuration returns one epoch as a time.Duration, for logging/metrics.
func (c *Config) EpochDuration() time.Duration {
	return time.Duration(c.EpochMillis) * time.Millisecond
}
